package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

// fakeInteractionUseCase воспроизводит семантику хранилища в памяти:
// строка счетчиков на видео, upsert оценки по (видео, пользователь),
// append-only комментарии и их лайки.
type fakeInteractionUseCase struct {
	interactions map[string]int64
	shares       map[string]int64
	ratings      map[string]map[int64]int
	comments     []domain.CommentView
	nextID       int64
}

func newFakeInteractionUseCase() *fakeInteractionUseCase {
	return &fakeInteractionUseCase{
		interactions: map[string]int64{},
		shares:       map[string]int64{},
		ratings:      map[string]map[int64]int{},
	}
}

func (f *fakeInteractionUseCase) InitInteraction(ctx context.Context, videoID string) (int64, error) {
	f.nextID++
	if _, ok := f.interactions[videoID]; !ok {
		f.interactions[videoID] = f.nextID
	}
	return f.nextID, nil
}

func (f *fakeInteractionUseCase) AddComment(ctx context.Context, videoID string, userID int64, comment string) (int64, error) {
	if _, ok := f.interactions[videoID]; !ok {
		return 0, fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	f.nextID++
	f.comments = append(f.comments, domain.CommentView{ID: f.nextID, Comment: comment, UserID: userID})
	return f.nextID, nil
}

func (f *fakeInteractionUseCase) RateVideo(ctx context.Context, videoID string, userID int64, likeDislike int) error {
	if _, ok := f.interactions[videoID]; !ok {
		return fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	if f.ratings[videoID] == nil {
		f.ratings[videoID] = map[int64]int{}
	}
	f.ratings[videoID][userID] = likeDislike
	return nil
}

func (f *fakeInteractionUseCase) VideoInteractions(ctx context.Context, videoID string) (*domain.VideoInteractionsView, error) {
	view := &domain.VideoInteractionsView{Comments: []domain.CommentView{}}
	for _, v := range f.ratings[videoID] {
		switch v {
		case 1:
			view.Interactions.Likes++
		case -1:
			view.Interactions.Dislikes++
		}
	}
	view.Interactions.Shares = f.shares[videoID]
	if _, ok := f.interactions[videoID]; ok {
		view.Comments = append(view.Comments, f.comments...)
	}
	return view, nil
}

func (f *fakeInteractionUseCase) LikeComment(ctx context.Context, commentID int64) error {
	for i := range f.comments {
		if f.comments[i].ID == commentID {
			f.comments[i].Likes++
			return nil
		}
	}
	return fmt.Errorf("comment %d: %w", commentID, domain.ErrCommentNotFound)
}

func (f *fakeInteractionUseCase) ShareVideo(ctx context.Context, videoID string) error {
	if _, ok := f.interactions[videoID]; !ok {
		return fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	f.shares[videoID]++
	return nil
}

func newInteractionRouter(h *InteractionHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/video_interaction/", h.InitInteraction)
	r.Post("/add_comment/", h.AddComment)
	r.Post("/like_dislike_video/", h.LikeDislikeVideo)
	r.Get("/video_interactions/{video_id}", h.VideoInteractions)
	r.Post("/share_video/", h.ShareVideo)
	r.Post("/like_comment/", h.LikeComment)
	return r
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, router http.Handler, videoID string) domain.VideoInteractionsView {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/video_interactions/"+videoID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("video_interactions status = %d", rec.Code)
	}

	var view domain.VideoInteractionsView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal interactions: %v", err)
	}
	return view
}

func TestLikeThenDislikeKeepsLastValue(t *testing.T) {
	uc := newFakeInteractionUseCase()
	router := newInteractionRouter(NewInteractionHandler(uc, testLogger()))

	rec := postForm(router, "/video_interaction/", url.Values{"video_id": {"V"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("init interaction status = %d", rec.Code)
	}

	rec = postForm(router, "/like_dislike_video/", url.Values{
		"video_id": {"V"}, "user_id": {"1"}, "like_dislike": {"1"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("like status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = postForm(router, "/like_dislike_video/", url.Values{
		"video_id": {"V"}, "user_id": {"1"}, "like_dislike": {"-1"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("dislike status = %d", rec.Code)
	}

	view := decodeView(t, router, "V")
	if view.Interactions.Likes != 0 || view.Interactions.Dislikes != 1 {
		t.Errorf("likes = %d, dislikes = %d; want 0 and 1", view.Interactions.Likes, view.Interactions.Dislikes)
	}
	if len(uc.ratings["V"]) != 1 {
		t.Errorf("rating rows = %d, want 1", len(uc.ratings["V"]))
	}
}

func TestVideoInteractionsZeroCountsWithoutRatings(t *testing.T) {
	router := newInteractionRouter(NewInteractionHandler(newFakeInteractionUseCase(), testLogger()))

	view := decodeView(t, router, "no-such-video")
	if view.Interactions.Likes != 0 || view.Interactions.Dislikes != 0 ||
		view.Interactions.Views != 0 || view.Interactions.Shares != 0 {
		t.Errorf("expected zeroed summary, got %+v", view.Interactions)
	}
	if len(view.Comments) != 0 {
		t.Errorf("expected no comments, got %d", len(view.Comments))
	}
}

func TestAddCommentWithoutInteractionReturns404(t *testing.T) {
	uc := newFakeInteractionUseCase()
	router := newInteractionRouter(NewInteractionHandler(uc, testLogger()))

	rec := postForm(router, "/add_comment/", url.Values{
		"video_id": {"V"}, "user_id": {"1"}, "comment": {"nice"},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(uc.comments) != 0 {
		t.Error("comment created despite missing interaction")
	}
}

func TestAddCommentReturnsCommentID(t *testing.T) {
	uc := newFakeInteractionUseCase()
	router := newInteractionRouter(NewInteractionHandler(uc, testLogger()))

	postForm(router, "/video_interaction/", url.Values{"video_id": {"V"}})
	rec := postForm(router, "/add_comment/", url.Values{
		"video_id": {"V"}, "user_id": {"7"}, "comment": {"great"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Message   string `json:"message"`
		CommentID int64  `json:"comment_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.CommentID == 0 {
		t.Error("comment_id missing from response")
	}
}

func TestLikeDislikeRejectsOutOfRangeValue(t *testing.T) {
	uc := newFakeInteractionUseCase()
	router := newInteractionRouter(NewInteractionHandler(uc, testLogger()))

	postForm(router, "/video_interaction/", url.Values{"video_id": {"V"}})
	rec := postForm(router, "/like_dislike_video/", url.Values{
		"video_id": {"V"}, "user_id": {"1"}, "like_dislike": {"5"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(uc.ratings["V"]) != 0 {
		t.Error("rating stored despite invalid value")
	}
}

func TestLikeCommentMissingCommentReturns404(t *testing.T) {
	router := newInteractionRouter(NewInteractionHandler(newFakeInteractionUseCase(), testLogger()))

	rec := postForm(router, "/like_comment/", url.Values{"comment_id": {"99"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestShareVideoIncrementsCounter(t *testing.T) {
	uc := newFakeInteractionUseCase()
	router := newInteractionRouter(NewInteractionHandler(uc, testLogger()))

	postForm(router, "/video_interaction/", url.Values{"video_id": {"V"}})
	rec := postForm(router, "/share_video/", url.Values{"video_id": {"V"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	view := decodeView(t, router, "V")
	if view.Interactions.Shares != 1 {
		t.Errorf("shares = %d, want 1", view.Interactions.Shares)
	}
}
