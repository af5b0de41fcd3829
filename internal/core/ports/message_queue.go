package ports

import (
	"context"

	"github.com/GoArmGo/VideoApp/internal/messaging/payloads"
)

// VideoWatchedPublisher определяет методы для публикации событий просмотра.
// Используется обработчиком скачивания видео.
type VideoWatchedPublisher interface {
	PublishVideoWatched(ctx context.Context, payload payloads.VideoWatchedPayload) error
}

// VideoWatchedConsumer определяет методы для потребления событий просмотра.
// Используется воркером, который пишет историю просмотров в БД.
type VideoWatchedConsumer interface {
	// StartConsumingVideoWatched начинает прослушивание очереди событий просмотра.
	// handler вызывается для каждого полученного сообщения.
	StartConsumingVideoWatched(ctx context.Context, handler func(context.Context, payloads.VideoWatchedPayload) error) error
}
