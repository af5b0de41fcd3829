package domain

import "time"

// VideoMetadata представляет метаданные загруженного видео,
// соответствует таблице video_metadata в бд.
// ID совпадает с ключом объекта в блоб-хранилище и хранится как текст.
// Строка создается один раз при загрузке и далее не изменяется.
type VideoMetadata struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Tags        string    `json:"tags" db:"tags"`
	Categories  string    `json:"categories" db:"categories"`
	Duration    int       `json:"duration" db:"duration"`
	Genre       string    `json:"genre" db:"genre"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

func (VideoMetadata) TableName() string {
	return "video_metadata"
}
