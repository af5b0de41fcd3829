package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/messaging/payloads"
	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// Размер куска при потоковой отдаче видео.
const downloadChunkSize = 1 << 20 // 1 MiB

// VideoHandler — обработчик HTTP-запросов загрузки и скачивания видео.
type VideoHandler struct {
	videoUseCase     usecase.VideoUseCase
	watchedPublisher ports.VideoWatchedPublisher
	uploadLimiter    chan struct{}
	logger           *slog.Logger
}

// NewVideoHandler создаёт новый экземпляр VideoHandler.
func NewVideoHandler(
	uc usecase.VideoUseCase,
	publisher ports.VideoWatchedPublisher,
	limiter chan struct{},
	logger *slog.Logger,
) *VideoHandler {
	return &VideoHandler{
		videoUseCase:     uc,
		watchedPublisher: publisher,
		uploadLimiter:    limiter,
		logger:           logger,
	}
}

// UploadVideo — принимает multipart-загрузку видео.
// Все поля формы обязательны; отсутствие любого из них — 400.
func (h *VideoHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	// Ограничиваем число одновременных загрузок.
	select {
	case h.uploadLimiter <- struct{}{}:
		defer func() { <-h.uploadLimiter }()
	case <-r.Context().Done():
		respondWithError(w, http.StatusServiceUnavailable, "upload cancelled", h.logger)
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Не передан файл video", h.logger)
		return
	}
	defer file.Close()

	required := map[string]string{
		"title":       r.FormValue("title"),
		"description": r.FormValue("description"),
		"tags":        r.FormValue("tags"),
		"categories":  r.FormValue("categories"),
		"duration":    r.FormValue("duration"),
		"genre":       r.FormValue("genre"),
		"username":    r.FormValue("username"),
	}
	for field, value := range required {
		if value == "" {
			h.logger.Warn("missing required parameter", "param", field)
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Не указан %s", field), h.logger)
			return
		}
	}

	duration, err := strconv.Atoi(required["duration"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный duration", h.logger)
		return
	}

	videoID, err := h.videoUseCase.UploadVideo(r.Context(), usecase.UploadVideoInput{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Title:       required["title"],
		Description: required["description"],
		Tags:        required["tags"],
		Categories:  required["categories"],
		Duration:    duration,
		Genre:       required["genre"],
		Username:    required["username"],
	})
	if err != nil {
		h.logger.Error("failed to upload video", "username", required["username"], "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message":  "Video uploaded successfully",
		"video_id": videoID,
	}, h.logger)
}

// DownloadVideo — отдает содержимое видео потоком кусками по 1 MiB.
// Необязательный параметр username публикует событие просмотра для воркера.
func (h *VideoHandler) DownloadVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video_id")
	if videoID == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан video_id", h.logger)
		return
	}

	body, filename, err := h.videoUseCase.DownloadVideo(r.Context(), videoID)
	if err != nil {
		h.logger.Error("failed to download video", "video_id", videoID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}
	defer body.Close()

	if username := r.URL.Query().Get("username"); username != "" && h.watchedPublisher != nil {
		event := payloads.VideoWatchedPayload{Username: username, VideoID: videoID}
		if err := h.watchedPublisher.PublishVideoWatched(r.Context(), event); err != nil {
			h.logger.Warn("failed to publish watch event", "video_id", videoID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)

	// Поток не буферизуется целиком: читаем и пишем кусками,
	// сбрасывая буфер транспорта после каждого куска.
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				h.logger.Warn("client aborted download", "video_id", videoID, "error", writeErr)
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr == io.EOF {
			return
		}
		if readErr != nil {
			h.logger.Error("failed to stream video content", "video_id", videoID, "error", readErr)
			return
		}
	}
}

// WatchedVideos — возвращает список просмотренных пользователем видео.
func (h *VideoHandler) WatchedVideos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан username", h.logger)
		return
	}

	videoIDs, err := h.videoUseCase.WatchedVideos(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to fetch watched videos", "username", username, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"username":       username,
		"watched_videos": videoIDs,
	}, h.logger)
}
