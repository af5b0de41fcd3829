package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/VideoApp/internal/config"
	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/handler"
	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// runServer запускает HTTP-сервер и блокируется до отмены контекста.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	videoUseCase usecase.VideoUseCase,
	interactionUseCase usecase.InteractionUseCase,
	userUseCase usecase.UserUseCase,
	watchedPublisher ports.VideoWatchedPublisher,
	uploadLimiter chan struct{},
) error {
	videoHandler := handler.NewVideoHandler(videoUseCase, watchedPublisher, uploadLimiter, logger)
	interactionHandler := handler.NewInteractionHandler(interactionUseCase, logger)
	userHandler := handler.NewUserHandler(userUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Post("/upload_video/", videoHandler.UploadVideo)
	r.Get("/download_video/{video_id}", videoHandler.DownloadVideo)
	r.Get("/watched_videos/{username}", videoHandler.WatchedVideos)
	r.Post("/video_interaction/", interactionHandler.InitInteraction)
	r.Post("/add_comment/", interactionHandler.AddComment)
	r.Post("/like_dislike_video/", interactionHandler.LikeDislikeVideo)
	r.Get("/video_interactions/{video_id}", interactionHandler.VideoInteractions)
	r.Post("/share_video/", interactionHandler.ShareVideo)
	r.Post("/like_comment/", interactionHandler.LikeComment)
	r.Post("/add_user/", userHandler.AddUser)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка HTTP-сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
