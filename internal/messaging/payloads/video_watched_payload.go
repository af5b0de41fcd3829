package payloads

// VideoWatchedPayload представляет событие «пользователь посмотрел видео»,
// публикуемое сервером в RabbitMQ и обрабатываемое воркером.
type VideoWatchedPayload struct {
	Username string `json:"username"`
	VideoID  string `json:"video_id"`
}
