package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// InteractionStorage реализует ports.InteractionStorage поверх sqlx.
type InteractionStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewInteractionStorage создает новый экземпляр InteractionStorage
func NewInteractionStorage(db *sqlx.DB, logger *slog.Logger) *InteractionStorage {
	return &InteractionStorage{db: db, logger: logger}
}

// CreateInteraction вставляет строку счетчиков для видео и возвращает ее id.
// Уникальность по video_id не проверяется: повторный вызов создает дубликат.
func (s *InteractionStorage) CreateInteraction(ctx context.Context, videoID string) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
        INSERT INTO video_interactions (video_id) VALUES ($1) RETURNING id
    `, videoID)
	if err != nil {
		s.logger.Error("failed to insert video interaction", "video_id", videoID, "error", err)
		return 0, fmt.Errorf("insert video interaction: %w", err)
	}
	return id, nil
}

// InteractionIDByVideo возвращает id строки счетчиков для видео.
// При дубликатах берется строка с наименьшим id.
func (s *InteractionStorage) InteractionIDByVideo(ctx context.Context, videoID string) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
        SELECT id FROM video_interactions WHERE video_id = $1 ORDER BY id LIMIT 1
    `, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("select video interaction: %w", err)
	}
	return id, nil
}

// AddComment вставляет комментарий и возвращает его id.
func (s *InteractionStorage) AddComment(ctx context.Context, interactionID, userID int64, comment string) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
        INSERT INTO comments (video_interaction_id, user_id, comment)
        VALUES ($1, $2, $3)
        RETURNING id
    `, interactionID, userID, comment)
	if err != nil {
		s.logger.Error("failed to insert comment", "interaction_id", interactionID, "error", err)
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return id, nil
}

// UpsertLikeDislike вставляет оценку пользователя или перезаписывает прежнюю
// по уникальной паре (video_interaction_id, user_id).
func (s *InteractionStorage) UpsertLikeDislike(ctx context.Context, interactionID, userID int64, likeDislike int) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO user_interactions (video_interaction_id, user_id, like_dislike)
        VALUES ($1, $2, $3)
        ON CONFLICT (video_interaction_id, user_id)
        DO UPDATE SET like_dislike = EXCLUDED.like_dislike
    `, interactionID, userID, likeDislike)
	if err != nil {
		s.logger.Error("failed to upsert like/dislike", "interaction_id", interactionID, "user_id", userID, "error", err)
		return fmt.Errorf("upsert like/dislike: %w", err)
	}
	return nil
}

// InteractionSummary возвращает агрегированные счетчики по видео.
// Для видео без строки счетчиков возвращается нулевая сводка без ошибки.
func (s *InteractionStorage) InteractionSummary(ctx context.Context, videoID string) (domain.InteractionSummary, error) {
	var summary domain.InteractionSummary
	err := s.db.GetContext(ctx, &summary, `
        SELECT vi.views, vi.shares,
               COALESCE(SUM(CASE WHEN ui.like_dislike = 1 THEN 1 ELSE 0 END), 0) AS likes,
               COALESCE(SUM(CASE WHEN ui.like_dislike = -1 THEN 1 ELSE 0 END), 0) AS dislikes
        FROM video_interactions vi
        LEFT JOIN user_interactions ui ON vi.id = ui.video_interaction_id
        WHERE vi.video_id = $1
        GROUP BY vi.id
        ORDER BY vi.id
        LIMIT 1
    `, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InteractionSummary{}, nil
	}
	if err != nil {
		return domain.InteractionSummary{}, fmt.Errorf("select interaction summary: %w", err)
	}
	return summary, nil
}

// CommentsWithLikes возвращает комментарии видео с количеством лайков,
// от новых к старым.
func (s *InteractionStorage) CommentsWithLikes(ctx context.Context, videoID string) ([]domain.CommentView, error) {
	comments := []domain.CommentView{}
	err := s.db.SelectContext(ctx, &comments, `
        SELECT c.id, c.comment, c.user_id, c."timestamp",
               COALESCE(COUNT(cl.id), 0) AS likes
        FROM comments c
        LEFT JOIN comment_likes cl ON c.id = cl.comment_id
        WHERE c.video_interaction_id = (SELECT MIN(id) FROM video_interactions WHERE video_id = $1)
        GROUP BY c.id
        ORDER BY c."timestamp" DESC
    `, videoID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	return comments, nil
}

// LikeComment добавляет лайк комментария (append-only).
func (s *InteractionStorage) LikeComment(ctx context.Context, commentID int64) error {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO comment_likes (comment_id)
        SELECT id FROM comments WHERE id = $1
    `, commentID)
	if err != nil {
		s.logger.Error("failed to insert comment like", "comment_id", commentID, "error", err)
		return fmt.Errorf("insert comment like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert comment like: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("comment %d: %w", commentID, domain.ErrCommentNotFound)
	}
	return nil
}

// IncrementViews увеличивает счетчик просмотров строки счетчиков видео.
func (s *InteractionStorage) IncrementViews(ctx context.Context, videoID string) error {
	return s.incrementCounter(ctx, "views", videoID)
}

// IncrementShares увеличивает счетчик репостов строки счетчиков видео.
func (s *InteractionStorage) IncrementShares(ctx context.Context, videoID string) error {
	return s.incrementCounter(ctx, "shares", videoID)
}

func (s *InteractionStorage) incrementCounter(ctx context.Context, column, videoID string) error {
	// column подставляется только из IncrementViews/IncrementShares.
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`
        UPDATE video_interactions SET %s = %s + 1 WHERE video_id = $1
    `, column, column), videoID)
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	if affected == 0 {
		return fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	return nil
}
