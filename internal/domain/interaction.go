package domain

import "time"

// VideoInteraction представляет агрегатные счетчики по видео,
// соответствует таблице video_interactions в бд.
// Отдельная строка от пользовательских лайков/дизлайков.
type VideoInteraction struct {
	ID      int64  `json:"id" db:"id"`
	VideoID string `json:"video_id" db:"video_id"`
	Views   int64  `json:"views" db:"views"`
	Shares  int64  `json:"shares" db:"shares"`
}

// UserInteraction представляет лайк/дизлайк пользователя,
// уникальна по паре (video_interaction_id, user_id).
// LikeDislike принимает значения -1, 0 или 1.
type UserInteraction struct {
	ID                 int64 `json:"id" db:"id"`
	VideoInteractionID int64 `json:"video_interaction_id" db:"video_interaction_id"`
	UserID             int64 `json:"user_id" db:"user_id"`
	LikeDislike        int   `json:"like_dislike" db:"like_dislike"`
}

// Comment представляет комментарий к видео (append-only).
type Comment struct {
	ID                 int64     `json:"id" db:"id"`
	VideoInteractionID int64     `json:"video_interaction_id" db:"video_interaction_id"`
	UserID             int64     `json:"user_id" db:"user_id"`
	Comment            string    `json:"comment" db:"comment"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
}

// InteractionSummary — агрегированные счетчики по видео:
// сырые views/shares плюс производные количества лайков и дизлайков.
type InteractionSummary struct {
	Views    int64 `json:"views" db:"views"`
	Shares   int64 `json:"shares" db:"shares"`
	Likes    int64 `json:"likes" db:"likes"`
	Dislikes int64 `json:"dislikes" db:"dislikes"`
}

// CommentView — комментарий с количеством лайков для выдачи наружу.
type CommentView struct {
	ID        int64     `json:"id" db:"id"`
	Comment   string    `json:"comment" db:"comment"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Likes     int64     `json:"likes" db:"likes"`
}

// VideoInteractionsView — полный ответ на запрос интеракций по видео.
type VideoInteractionsView struct {
	Interactions InteractionSummary `json:"interactions"`
	Comments     []CommentView      `json:"comments"`
}
