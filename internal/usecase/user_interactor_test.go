package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

func TestAddUserReturnsGeneratedID(t *testing.T) {
	uc := NewUserUseCase(&fakeUserStorage{}, testLogger())

	id, err := uc.AddUser(context.Background(), "alice", "about", "pic.png")
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero user id")
	}
}

func TestAddUserDuplicateUsername(t *testing.T) {
	store := &fakeUserStorage{}
	uc := NewUserUseCase(store, testLogger())

	if _, err := uc.AddUser(context.Background(), "alice", "", ""); err != nil {
		t.Fatalf("first AddUser: %v", err)
	}

	_, err := uc.AddUser(context.Background(), "alice", "", "")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	if len(store.users) != 1 {
		t.Errorf("user rows = %d, want 1", len(store.users))
	}
}
