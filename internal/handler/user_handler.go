package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// UserHandler — обработчик HTTP-запросов для работы с пользователями.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: uc, logger: logger}
}

// AddUser — создает нового пользователя.
// username обязателен; description и profile_pic — нет.
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	if username == "" {
		h.logger.Warn("missing required parameter", "param", "username")
		respondWithError(w, http.StatusBadRequest, "Не указан username", h.logger)
		return
	}

	userID, err := h.userUseCase.AddUser(
		r.Context(),
		username,
		r.FormValue("description"),
		r.FormValue("profile_pic"),
	)
	if err != nil {
		h.logger.Error("failed to add user", "username", username, "error", err)
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User added successfully",
		"user_id": userID,
	}, h.logger)
}
