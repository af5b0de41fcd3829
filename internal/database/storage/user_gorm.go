package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// UserStorage реализует ports.UserStorage с использованием GORM.
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser вставляет нового пользователя и возвращает его id.
// Нарушение уникальности имени возвращается как domain.ErrUsernameTaken
// (GORM-сессия открыта с TranslateError).
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("username %q: %w", user.Username, domain.ErrUsernameTaken)
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", result.Error)
		return 0, fmt.Errorf("insert user: %w", result.Error)
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return user.ID, nil
}

// userIDByUsername возвращает внутренний id пользователя по имени.
func (s *UserStorage) userIDByUsername(ctx context.Context, username string) (int64, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("user %q: %w", username, domain.ErrUserNotFound)
		}
		return 0, fmt.Errorf("select user: %w", result.Error)
	}
	return user.ID, nil
}

// WatchedVideoIDs возвращает id всех видео из истории просмотров пользователя.
// Без пагинации: выдается весь список.
func (s *UserStorage) WatchedVideoIDs(ctx context.Context, username string) ([]string, error) {
	userID, err := s.userIDByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	videoIDs := []string{}
	result := s.db.WithContext(ctx).
		Model(&domain.WatchRecord{}).
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Pluck("video_id", &videoIDs)
	if result.Error != nil {
		return nil, fmt.Errorf("select watch history: %w", result.Error)
	}
	return videoIDs, nil
}

// RecordWatch добавляет запись истории просмотров.
func (s *UserStorage) RecordWatch(ctx context.Context, username, videoID string) error {
	userID, err := s.userIDByUsername(ctx, username)
	if err != nil {
		return err
	}

	record := domain.WatchRecord{
		UserID:  userID,
		VideoID: videoID,
	}
	if result := s.db.WithContext(ctx).Create(&record); result.Error != nil {
		s.logger.Error("failed to insert watch record", "username", username, "video_id", videoID, "error", result.Error)
		return fmt.Errorf("insert watch record: %w", result.Error)
	}

	s.logger.Info("watch recorded", "username", username, "video_id", videoID)
	return nil
}
