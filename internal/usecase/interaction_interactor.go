package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/domain"
)

// interactionUseCase implements InteractionUseCase
type interactionUseCase struct {
	interactionStorage ports.InteractionStorage
	logger             *slog.Logger
}

// NewInteractionUseCase создает новый экземпляр InteractionUseCase
func NewInteractionUseCase(interactionStorage ports.InteractionStorage, logger *slog.Logger) InteractionUseCase {
	return &interactionUseCase{
		interactionStorage: interactionStorage,
		logger:             logger,
	}
}

// InitInteraction создает строку счетчиков для видео.
// Проверки на существование строки для того же видео нет: повторный вызов
// создаст дубликат (поведение исходного контракта).
func (uc *interactionUseCase) InitInteraction(ctx context.Context, videoID string) (int64, error) {
	id, err := uc.interactionStorage.CreateInteraction(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("usecase: init interaction: %w", err)
	}
	uc.logger.Info("interaction created", "video_id", videoID, "interaction_id", id)
	return id, nil
}

// AddComment находит строку счетчиков видео и добавляет комментарий.
func (uc *interactionUseCase) AddComment(ctx context.Context, videoID string, userID int64, comment string) (int64, error) {
	interactionID, err := uc.interactionStorage.InteractionIDByVideo(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("usecase: add comment: %w", err)
	}

	commentID, err := uc.interactionStorage.AddComment(ctx, interactionID, userID, comment)
	if err != nil {
		return 0, fmt.Errorf("usecase: add comment: %w", err)
	}

	uc.logger.Info("comment added", "video_id", videoID, "comment_id", commentID)
	return commentID, nil
}

// RateVideo ставит или перезаписывает оценку пользователя.
func (uc *interactionUseCase) RateVideo(ctx context.Context, videoID string, userID int64, likeDislike int) error {
	interactionID, err := uc.interactionStorage.InteractionIDByVideo(ctx, videoID)
	if err != nil {
		return fmt.Errorf("usecase: rate video: %w", err)
	}

	if err := uc.interactionStorage.UpsertLikeDislike(ctx, interactionID, userID, likeDislike); err != nil {
		return fmt.Errorf("usecase: rate video: %w", err)
	}

	uc.logger.Info("video rated", "video_id", videoID, "user_id", userID, "like_dislike", likeDislike)
	return nil
}

// VideoInteractions возвращает агрегированные счетчики и комментарии.
// Для видео без строки счетчиков возвращается нулевая сводка и пустой список,
// а не ошибка.
func (uc *interactionUseCase) VideoInteractions(ctx context.Context, videoID string) (*domain.VideoInteractionsView, error) {
	summary, err := uc.interactionStorage.InteractionSummary(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: video interactions: %w", err)
	}

	comments, err := uc.interactionStorage.CommentsWithLikes(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: video interactions: %w", err)
	}

	return &domain.VideoInteractionsView{
		Interactions: summary,
		Comments:     comments,
	}, nil
}

// LikeComment добавляет лайк комментария.
func (uc *interactionUseCase) LikeComment(ctx context.Context, commentID int64) error {
	if err := uc.interactionStorage.LikeComment(ctx, commentID); err != nil {
		return fmt.Errorf("usecase: like comment: %w", err)
	}
	return nil
}

// ShareVideo увеличивает счетчик репостов.
func (uc *interactionUseCase) ShareVideo(ctx context.Context, videoID string) error {
	if err := uc.interactionStorage.IncrementShares(ctx, videoID); err != nil {
		return fmt.Errorf("usecase: share video: %w", err)
	}
	return nil
}
