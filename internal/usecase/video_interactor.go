package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/domain"
)

// videoUseCase implements VideoUseCase
type videoUseCase struct {
	videoStorage       ports.VideoStorage
	interactionStorage ports.InteractionStorage
	userStorage        ports.UserStorage
	fileStorage        ports.FileStorage
	logger             *slog.Logger
}

// NewVideoUseCase создает новый экземпляр VideoUseCase
func NewVideoUseCase(
	videoStorage ports.VideoStorage,
	interactionStorage ports.InteractionStorage,
	userStorage ports.UserStorage,
	fileStorage ports.FileStorage,
	logger *slog.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoStorage:       videoStorage,
		interactionStorage: interactionStorage,
		userStorage:        userStorage,
		fileStorage:        fileStorage,
		logger:             logger,
	}
}

// UploadVideo записывает содержимое в блоб-хранилище под сгенерированным ключом,
// затем в одной транзакции сохраняет метаданные и дописывает ключ в список
// видео пользователя. Блоб и реляционная запись не связаны общей транзакцией,
// поэтому при ошибке реляционной части блоб удаляется компенсирующим вызовом.
func (uc *videoUseCase) UploadVideo(ctx context.Context, in UploadVideoInput) (string, error) {
	key := uuid.New().String()

	contentType := in.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}

	if err := uc.fileStorage.UploadFile(ctx, key, in.Reader, contentType, in.Filename); err != nil {
		return "", fmt.Errorf("usecase: upload video content: %w", err)
	}

	meta := &domain.VideoMetadata{
		ID:          key,
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		Categories:  in.Categories,
		Duration:    in.Duration,
		Genre:       in.Genre,
	}

	if err := uc.videoStorage.CreateVideoRecord(ctx, meta, in.Username); err != nil {
		// Компенсация: блоб уже записан, метаданных к нему не будет.
		if delErr := uc.fileStorage.DeleteFile(ctx, key); delErr != nil {
			uc.logger.Error("failed to delete orphaned blob after metadata failure",
				"video_id", key, "error", delErr)
		}
		return "", fmt.Errorf("usecase: create video record: %w", err)
	}

	uc.logger.Info("video uploaded", "video_id", key, "username", in.Username, "title", in.Title)
	return key, nil
}

// DownloadVideo возвращает поток содержимого объекта и исходное имя файла.
// Счетчик просмотров увеличивается по возможности: его отсутствие не мешает
// скачиванию.
func (uc *videoUseCase) DownloadVideo(ctx context.Context, videoID string) (io.ReadCloser, string, error) {
	body, filename, err := uc.fileStorage.GetFile(ctx, videoID)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: get video content: %w", err)
	}

	if err := uc.interactionStorage.IncrementViews(ctx, videoID); err != nil {
		if !errors.Is(err, domain.ErrInteractionNotFound) {
			uc.logger.Warn("failed to increment views", "video_id", videoID, "error", err)
		}
	}

	return body, filename, nil
}

// WatchedVideos возвращает id всех просмотренных пользователем видео.
func (uc *videoUseCase) WatchedVideos(ctx context.Context, username string) ([]string, error) {
	videoIDs, err := uc.userStorage.WatchedVideoIDs(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("usecase: watched videos: %w", err)
	}
	return videoIDs, nil
}

// RecordWatch добавляет запись истории просмотров.
func (uc *videoUseCase) RecordWatch(ctx context.Context, username, videoID string) error {
	if err := uc.userStorage.RecordWatch(ctx, username, videoID); err != nil {
		return fmt.Errorf("usecase: record watch: %w", err)
	}
	return nil
}
