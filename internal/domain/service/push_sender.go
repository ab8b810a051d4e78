// Package service defines interfaces for infrastructure services consumed
// by the use cases.
package service

import (
	"context"

	"github.com/google/uuid"
)

// PushSender delivers a push notification to a user's devices. Implementations
// are best-effort; the dispatcher logs and swallows their failures.
type PushSender interface {
	// SendToUser pushes a message to every device subscribed to the user.
	SendToUser(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error
}
