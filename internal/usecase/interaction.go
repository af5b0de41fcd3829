package usecase

import (
	"context"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// InteractionUseCase определяет бизнес-логику счетчиков, лайков и комментариев.
type InteractionUseCase interface {
	// InitInteraction создает строку счетчиков для видео и возвращает ее id.
	InitInteraction(ctx context.Context, videoID string) (int64, error)

	// AddComment добавляет комментарий к видео.
	// Возвращает domain.ErrInteractionNotFound, если у видео нет строки счетчиков.
	AddComment(ctx context.Context, videoID string, userID int64, comment string) (int64, error)

	// RateVideo ставит или перезаписывает оценку пользователя (-1, 0 или 1).
	// Возвращает domain.ErrInteractionNotFound, если у видео нет строки счетчиков.
	RateVideo(ctx context.Context, videoID string, userID int64, likeDislike int) error

	// VideoInteractions возвращает агрегированные счетчики и комментарии видео.
	// Для видео без строки счетчиков — нулевая сводка и пустой список.
	VideoInteractions(ctx context.Context, videoID string) (*domain.VideoInteractionsView, error)

	// LikeComment добавляет лайк комментария.
	LikeComment(ctx context.Context, commentID int64) error

	// ShareVideo увеличивает счетчик репостов видео.
	ShareVideo(ctx context.Context, videoID string) error
}

// UserUseCase определяет бизнес-логику работы с пользователями.
type UserUseCase interface {
	// AddUser создает пользователя. Возвращает domain.ErrUsernameTaken,
	// если имя уже занято.
	AddUser(ctx context.Context, username, description, profilePic string) (int64, error)
}
