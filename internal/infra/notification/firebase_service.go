// Package notification contains the push delivery implementations backing
// the dispatcher's best-effort device channel.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"gymgate/config"
	"gymgate/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a Firebase-backed push sender. Each user's
// devices subscribe to a per-user topic; sending to the topic reaches all
// of them.
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushSender, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendToUser pushes a message to every device subscribed to the user's topic.
func (s *firebaseService) SendToUser(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: "user-" + userID.String(),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// noopPushSender is used when Firebase is not configured.
type noopPushSender struct {
	logger *slog.Logger
}

func (s *noopPushSender) SendToUser(_ context.Context, userID uuid.UUID, title, _ string, _ map[string]string) error {
	s.logger.Debug("[NoopPush] Push delivery disabled, skipping",
		slog.String("user_id", userID.String()),
		slog.String("title", title),
	)

	return nil
}

// Params holds dependencies for the push sender, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPushSender creates a push sender based on configuration. Without
// Firebase credentials, pushes are silently skipped.
func NewPushSender(params Params) (service.PushSender, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, using no-op push sender")

		return &noopPushSender{logger: params.Logger}, nil
	}

	return NewFirebaseService(params.Ctx, cfg.CredentialsPath)
}
