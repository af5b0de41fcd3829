package usecase

import (
	"context"
	"io"
)

// UploadVideoInput — данные multipart-загрузки видео.
// Reader отдает содержимое файла потоком, без полной буферизации.
type UploadVideoInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Title       string
	Description string
	Tags        string
	Categories  string
	Duration    int
	Genre       string
	Username    string
}

// VideoUseCase определяет бизнес-логику загрузки, скачивания и истории просмотров.
type VideoUseCase interface {
	// UploadVideo записывает блоб в файловое хранилище, затем в одной транзакции
	// сохраняет метаданные и дописывает видео в список пользователя.
	// Если транзакция не прошла, только что записанный блоб удаляется.
	// Возвращает id нового объекта.
	UploadVideo(ctx context.Context, in UploadVideoInput) (string, error)

	// DownloadVideo возвращает поток содержимого видео и исходное имя файла.
	// Счетчик просмотров увеличивается по возможности.
	// Возвращает domain.ErrVideoNotFound, если объекта нет.
	DownloadVideo(ctx context.Context, videoID string) (io.ReadCloser, string, error)

	// WatchedVideos возвращает id всех просмотренных пользователем видео.
	WatchedVideos(ctx context.Context, username string) ([]string, error)

	// RecordWatch добавляет запись истории просмотров. Вызывается воркером
	// при обработке события просмотра.
	RecordWatch(ctx context.Context, username, videoID string) error
}
