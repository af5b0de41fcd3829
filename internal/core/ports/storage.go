package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// VideoStorage определяет методы для работы с метаданными видео в реляционной БД.
type VideoStorage interface {
	// CreateVideoRecord в одной транзакции вставляет строку video_metadata
	// и дописывает id объекта (как строку в кавычках) в список videos пользователя.
	// Возвращает domain.ErrUserNotFound, если пользователь с таким именем отсутствует.
	CreateVideoRecord(ctx context.Context, meta *domain.VideoMetadata, username string) error
}

// InteractionStorage определяет методы для счетчиков, лайков и комментариев.
type InteractionStorage interface {
	// CreateInteraction вставляет новую строку video_interactions и возвращает ее id.
	// Уникальность по video_id не проверяется: повторные вызовы дают дубликаты.
	CreateInteraction(ctx context.Context, videoID string) (int64, error)

	// InteractionIDByVideo возвращает id строки интеракций для видео.
	// Возвращает domain.ErrInteractionNotFound, если строки нет.
	InteractionIDByVideo(ctx context.Context, videoID string) (int64, error)

	// AddComment вставляет комментарий и возвращает его id.
	AddComment(ctx context.Context, interactionID, userID int64, comment string) (int64, error)

	// UpsertLikeDislike вставляет или перезаписывает оценку пользователя
	// по паре (video_interaction_id, user_id).
	UpsertLikeDislike(ctx context.Context, interactionID, userID int64, likeDislike int) error

	// InteractionSummary возвращает агрегированные счетчики по видео.
	// Для видео без строки интеракций возвращает нулевую сводку без ошибки.
	InteractionSummary(ctx context.Context, videoID string) (domain.InteractionSummary, error)

	// CommentsWithLikes возвращает комментарии видео с количеством лайков,
	// отсортированные от новых к старым.
	CommentsWithLikes(ctx context.Context, videoID string) ([]domain.CommentView, error)

	// LikeComment добавляет лайк комментария.
	// Возвращает domain.ErrCommentNotFound, если комментария нет.
	LikeComment(ctx context.Context, commentID int64) error

	// IncrementViews/IncrementShares увеличивают сырые счетчики строки интеракций.
	IncrementViews(ctx context.Context, videoID string) error
	IncrementShares(ctx context.Context, videoID string) error
}

// UserStorage определяет методы для работы с пользователями и историей просмотров.
type UserStorage interface {
	// CreateUser вставляет нового пользователя и возвращает его id.
	// Возвращает domain.ErrUsernameTaken при нарушении уникальности имени.
	CreateUser(ctx context.Context, user *domain.User) (int64, error)

	// WatchedVideoIDs возвращает id всех просмотренных пользователем видео.
	// Возвращает domain.ErrUserNotFound, если пользователя нет.
	WatchedVideoIDs(ctx context.Context, username string) ([]string, error)

	// RecordWatch добавляет запись истории просмотров для пользователя.
	RecordWatch(ctx context.Context, username, videoID string) error
}

// FileStorage определяет интерфейс файлового хранилища (AWS S3, MinIO)
// для бинарного содержимого видео.
type FileStorage interface {
	// UploadFile загружает объект под ключом key.
	// filename сохраняется в метаданных объекта и возвращается при скачивании.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType, filename string) error

	// GetFile возвращает поток содержимого объекта и исходное имя файла.
	// Возвращает domain.ErrVideoNotFound, если объекта нет.
	GetFile(ctx context.Context, key string) (io.ReadCloser, string, error)

	// DeleteFile удаляет объект по ключу.
	DeleteFile(ctx context.Context, key string) error
}
