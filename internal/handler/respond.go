package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой в конверте {"detail": ...}.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"detail": message}, logger)
}

// respondWithDomainError переводит доменные ошибки в HTTP-статусы:
// отсутствующие сущности — 404, занятое имя пользователя — 400,
// все остальное — 500 с текстом ошибки.
func respondWithDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, domain.ErrVideoNotFound),
		errors.Is(err, domain.ErrInteractionNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, domain.ErrUsernameTaken):
		respondWithError(w, http.StatusBadRequest, "Username already exists.", logger)
	default:
		respondWithError(w, http.StatusInternalServerError, "An error occurred: "+err.Error(), logger)
	}
}
