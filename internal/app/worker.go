package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/messaging/payloads"
	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// runWorker запускает потребителя RabbitMQ: каждое событие просмотра
// превращается в запись истории просмотров в БД.
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	videoUseCase usecase.VideoUseCase,
	watchedConsumer ports.VideoWatchedConsumer,
) error {
	logger.Info("worker started, waiting for watch events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.VideoWatchedPayload) error {
		logger.Info("processing watch event", "username", payload.Username, "video_id", payload.VideoID)

		if err := videoUseCase.RecordWatch(ctx, payload.Username, payload.VideoID); err != nil {
			logger.Error("failed to record watch", "username", payload.Username, "video_id", payload.VideoID, "error", err)
			return err
		}
		return nil
	}

	if err := watchedConsumer.StartConsumingVideoWatched(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()

	logger.Info("worker stopping")
	cancelWorker()
	return nil
}
