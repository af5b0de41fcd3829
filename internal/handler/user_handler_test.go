package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

type fakeUserUseCase struct {
	users  map[string]int64
	nextID int64
}

func (f *fakeUserUseCase) AddUser(ctx context.Context, username, description, profilePic string) (int64, error) {
	if _, ok := f.users[username]; ok {
		return 0, fmt.Errorf("username %q: %w", username, domain.ErrUsernameTaken)
	}
	f.nextID++
	f.users[username] = f.nextID
	return f.nextID, nil
}

func newUserRouter(uc *fakeUserUseCase) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/add_user/", NewUserHandler(uc, testLogger()).AddUser)
	return r
}

func TestAddUserReturnsUserID(t *testing.T) {
	uc := &fakeUserUseCase{users: map[string]int64{}}
	router := newUserRouter(uc)

	rec := postForm(router, "/add_user/", url.Values{"username": {"alice"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		UserID  int64  `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.UserID == 0 {
		t.Error("user_id missing from response")
	}
}

func TestAddUserDuplicateUsernameReturns400(t *testing.T) {
	uc := &fakeUserUseCase{users: map[string]int64{}}
	router := newUserRouter(uc)

	postForm(router, "/add_user/", url.Values{"username": {"alice"}})
	rec := postForm(router, "/add_user/", url.Values{"username": {"alice"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(uc.users) != 1 {
		t.Errorf("user rows = %d, want 1", len(uc.users))
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["detail"] == "" {
		t.Error("error response has no detail")
	}
}

func TestAddUserMissingUsernameReturns400(t *testing.T) {
	router := newUserRouter(&fakeUserUseCase{users: map[string]int64{}})

	rec := postForm(router, "/add_user/", url.Values{"description": {"no name"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
