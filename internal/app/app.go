package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/VideoApp/internal/config"
	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/database/client"
	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// App собирает зависимости приложения. Запускается в одном из двух режимов:
// server (HTTP-фронт) или worker (потребитель событий просмотра).
type App struct {
	Config *config.Config

	logger             *slog.Logger
	dbClient           *client.Client
	videoUseCase       usecase.VideoUseCase
	interactionUseCase usecase.InteractionUseCase
	userUseCase        usecase.UserUseCase
	watchedPublisher   ports.VideoWatchedPublisher
	watchedConsumer    ports.VideoWatchedConsumer
	uploadLimiter      chan struct{}
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	videoUseCase usecase.VideoUseCase,
	interactionUseCase usecase.InteractionUseCase,
	userUseCase usecase.UserUseCase,
	watchedPublisher ports.VideoWatchedPublisher,
	watchedConsumer ports.VideoWatchedConsumer,
	uploadLimiter chan struct{},
) *App {
	return &App{
		Config:             cfg,
		logger:             logger,
		dbClient:           dbClient,
		videoUseCase:       videoUseCase,
		interactionUseCase: interactionUseCase,
		userUseCase:        userUseCase,
		watchedPublisher:   watchedPublisher,
		watchedConsumer:    watchedConsumer,
		uploadLimiter:      uploadLimiter,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется
// до сигнала завершения.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.videoUseCase, a.interactionUseCase, a.userUseCase, a.watchedPublisher, a.uploadLimiter)
	case "worker":
		err = runWorker(ctx, a.logger, a.videoUseCase, a.watchedConsumer)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}
	if err != nil {
		return err
	}

	a.logger.Info("shutting down application")

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения.
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	// publisher и consumer — один клиент RabbitMQ, закрываем один раз
	if closer, ok := a.watchedPublisher.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
