// internal/domain/user.go
package domain

import "time"

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Поле Videos хранит список идентификаторов загруженных видео (jsonb в БД);
// его заполняет видеохранилище, поэтому для GORM оно игнорируется.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Description string    `json:"description" db:"description"`
	ProfilePic  string    `json:"profile_pic" db:"profile_pic"`
	Videos      []string  `json:"videos,omitempty" db:"-" gorm:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// WatchRecord представляет запись истории просмотров,
// соответствует таблице watch_history в бд.
type WatchRecord struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	VideoID   string    `json:"video_id" db:"video_id"`
	WatchedAt time.Time `json:"watched_at" db:"watched_at" gorm:"autoCreateTime"`
}

func (WatchRecord) TableName() string {
	return "watch_history"
}
