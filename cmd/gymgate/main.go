package main

import (
	"context"
	"log/slog"
	"os"

	"gymgate/config"
	"gymgate/internal/delivery"
	"gymgate/internal/delivery/http"
	"gymgate/internal/delivery/http/middleware"
	"gymgate/internal/delivery/http/router/handler"
	"gymgate/internal/domain/repository"
	"gymgate/internal/domain/service"
	"gymgate/internal/infra/auth"
	logs "gymgate/internal/infra/log"
	"gymgate/internal/infra/notification"
	"gymgate/internal/infra/persistence/fallback"
	"gymgate/internal/infra/persistence/memory"
	"gymgate/internal/infra/persistence/postgres"
	"gymgate/internal/infra/pubsub"
	"gymgate/internal/infra/qrcode"
	"gymgate/internal/infra/redis"
	"gymgate/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		memory.New,
		redis.New,
	)
}

// Every repository is served through the fallback layer: the durable
// PostgreSQL store first, the volatile in-process store when it is down.
func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newMemberRepository,
			newAttendanceRepository,
			newNotificationRepository,
			newDirectoryUserRepository,
		),
	)
}

func newMemberRepository(client *postgres.Client, store *memory.Store, logger *slog.Logger) repository.MemberRepository {
	return fallback.NewMemberRepository(logger,
		postgres.NewMemberRepository(client),
		memory.NewMemberRepository(store),
	)
}

func newAttendanceRepository(client *postgres.Client, store *memory.Store, logger *slog.Logger) repository.AttendanceRepository {
	return fallback.NewAttendanceRepository(logger,
		postgres.NewAttendanceRepository(client),
		memory.NewAttendanceRepository(store),
	)
}

func newNotificationRepository(client *postgres.Client, store *memory.Store, logger *slog.Logger) repository.NotificationRepository {
	return fallback.NewNotificationRepository(logger,
		postgres.NewNotificationRepository(client),
		memory.NewNotificationRepository(store),
	)
}

func newDirectoryUserRepository(client *postgres.Client, store *memory.Store, logger *slog.Logger) repository.DirectoryUserRepository {
	return fallback.NewDirectoryUserRepository(logger,
		postgres.NewDirectoryUserRepository(client),
		memory.NewDirectoryUserRepository(store),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			notification.NewPushSender,
			pubsub.NewEventPublisher,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMemberService,
			impl.NewNotificationService,
			impl.NewAttendanceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAttendanceHandler,
			handler.NewMemberHandler,
			handler.NewNotificationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
