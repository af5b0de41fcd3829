package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// VideoStorage реализует ports.VideoStorage поверх sqlx.
type VideoStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewVideoStorage создает новый экземпляр VideoStorage
func NewVideoStorage(db *sqlx.DB, logger *slog.Logger) *VideoStorage {
	return &VideoStorage{db: db, logger: logger}
}

// CreateVideoRecord в одной транзакции вставляет метаданные видео и дописывает
// id объекта в jsonb-список videos пользователя. Сам блоб к этому моменту уже
// записан; при любой ошибке транзакция откатывается, компенсацию блоба делает
// вызывающий слой.
func (s *VideoStorage) CreateVideoRecord(ctx context.Context, meta *domain.VideoMetadata, username string) error {
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upload tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO video_metadata (id, title, description, tags, categories, duration, genre)
        VALUES (:id, :title, :description, :tags, :categories, :duration, :genre)
    `, meta)
	if err != nil {
		s.logger.Error("failed to insert video metadata", "video_id", meta.ID, "error", err)
		return fmt.Errorf("insert video metadata: %w", err)
	}

	// to_jsonb дает строку в кавычках, как того требует формат списка videos.
	res, err := tx.ExecContext(ctx, `
        UPDATE users SET videos = videos || to_jsonb($1::text) WHERE username = $2
    `, meta.ID, username)
	if err != nil {
		s.logger.Error("failed to append video to user list", "username", username, "error", err)
		return fmt.Errorf("append video to user list: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append video to user list: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %q: %w", username, domain.ErrUserNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upload tx: %w", err)
	}

	s.logger.Info("video record created",
		"video_id", meta.ID,
		"username", username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
