package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/VideoApp/internal/core/ports"
	"github.com/GoArmGo/VideoApp/internal/domain"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(userStorage ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{userStorage: userStorage, logger: logger}
}

// AddUser создает нового пользователя с пустым списком видео.
func (uc *userUseCase) AddUser(ctx context.Context, username, description, profilePic string) (int64, error) {
	user := &domain.User{
		Username:    username,
		Description: description,
		ProfilePic:  profilePic,
	}

	id, err := uc.userStorage.CreateUser(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("usecase: add user: %w", err)
	}
	return id, nil
}
