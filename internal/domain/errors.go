package domain

import "errors"

// Сигнальные ошибки доменного уровня. Хранилища возвращают их (обернутыми),
// HTTP-слой превращает в коды ответа.
var (
	// ErrVideoNotFound — объект с таким ключом отсутствует в блоб-хранилище.
	ErrVideoNotFound = errors.New("video not found")

	// ErrInteractionNotFound — для видео нет строки video_interactions.
	ErrInteractionNotFound = errors.New("video interaction not found")

	// ErrCommentNotFound — комментарий с таким id отсутствует.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrUserNotFound — пользователь с таким именем отсутствует.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken — имя пользователя уже занято (unique constraint).
	ErrUsernameTaken = errors.New("username already exists")
)
