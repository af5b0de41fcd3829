package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// InteractionHandler — обработчик HTTP-запросов для счетчиков, лайков и комментариев.
type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *slog.Logger
}

// NewInteractionHandler создаёт новый экземпляр InteractionHandler.
func NewInteractionHandler(uc usecase.InteractionUseCase, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{interactionUseCase: uc, logger: logger}
}

// InitInteraction — создает строку счетчиков для видео.
func (h *InteractionHandler) InitInteraction(w http.ResponseWriter, r *http.Request) {
	videoID := r.FormValue("video_id")
	if videoID == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан video_id", h.logger)
		return
	}

	interactionID, err := h.interactionUseCase.InitInteraction(r.Context(), videoID)
	if err != nil {
		h.logger.Error("failed to create interaction", "video_id", videoID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Interaction created",
		"interaction_id": interactionID,
	}, h.logger)
}

// AddComment — добавляет комментарий к видео.
func (h *InteractionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	videoID := r.FormValue("video_id")
	comment := r.FormValue("comment")
	userIDStr := r.FormValue("user_id")
	if videoID == "" || comment == "" || userIDStr == "" {
		respondWithError(w, http.StatusBadRequest, "Обязательны video_id, user_id и comment", h.logger)
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный user_id", h.logger)
		return
	}

	commentID, err := h.interactionUseCase.AddComment(r.Context(), videoID, userID, comment)
	if err != nil {
		h.logger.Error("failed to add comment", "video_id", videoID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Comment added",
		"comment_id": commentID,
	}, h.logger)
}

// LikeDislikeVideo — ставит или перезаписывает оценку пользователя.
func (h *InteractionHandler) LikeDislikeVideo(w http.ResponseWriter, r *http.Request) {
	videoID := r.FormValue("video_id")
	userIDStr := r.FormValue("user_id")
	valueStr := r.FormValue("like_dislike")
	if videoID == "" || userIDStr == "" || valueStr == "" {
		respondWithError(w, http.StatusBadRequest, "Обязательны video_id, user_id и like_dislike", h.logger)
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный user_id", h.logger)
		return
	}

	likeDislike, err := strconv.Atoi(valueStr)
	if err != nil || likeDislike < -1 || likeDislike > 1 {
		respondWithError(w, http.StatusBadRequest, "like_dislike должен быть -1, 0 или 1", h.logger)
		return
	}

	if err := h.interactionUseCase.RateVideo(r.Context(), videoID, userID, likeDislike); err != nil {
		h.logger.Error("failed to rate video", "video_id", videoID, "user_id", userID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Interaction updated"}, h.logger)
}

// VideoInteractions — возвращает агрегированные счетчики и комментарии видео.
// Для видео без строки счетчиков возвращается нулевая сводка, а не 404.
func (h *InteractionHandler) VideoInteractions(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video_id")
	if videoID == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан video_id", h.logger)
		return
	}

	view, err := h.interactionUseCase.VideoInteractions(r.Context(), videoID)
	if err != nil {
		h.logger.Error("failed to fetch interactions", "video_id", videoID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, view, h.logger)
}

// LikeComment — добавляет лайк комментария.
func (h *InteractionHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	commentIDStr := r.FormValue("comment_id")
	if commentIDStr == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан comment_id", h.logger)
		return
	}

	commentID, err := strconv.ParseInt(commentIDStr, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный comment_id", h.logger)
		return
	}

	if err := h.interactionUseCase.LikeComment(r.Context(), commentID); err != nil {
		h.logger.Error("failed to like comment", "comment_id", commentID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Comment liked"}, h.logger)
}

// ShareVideo — увеличивает счетчик репостов видео.
func (h *InteractionHandler) ShareVideo(w http.ResponseWriter, r *http.Request) {
	videoID := r.FormValue("video_id")
	if videoID == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан video_id", h.logger)
		return
	}

	if err := h.interactionUseCase.ShareVideo(r.Context(), videoID); err != nil {
		h.logger.Error("failed to share video", "video_id", videoID, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Share counted"}, h.logger)
}
