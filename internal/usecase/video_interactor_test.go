package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/GoArmGo/VideoApp/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFileStorage struct {
	objects   map[string][]byte
	filenames map[string]string
	deleted   []string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: map[string][]byte{}, filenames: map[string]string{}}
}

func (f *fakeFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType, filename string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.filenames[key] = filename
	return nil
}

func (f *fakeFileStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("object %s: %w", key, domain.ErrVideoNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), f.filenames[key], nil
}

func (f *fakeFileStorage) DeleteFile(ctx context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeVideoStorage struct {
	records map[string]*domain.VideoMetadata
	err     error
}

func (f *fakeVideoStorage) CreateVideoRecord(ctx context.Context, meta *domain.VideoMetadata, username string) error {
	if f.err != nil {
		return f.err
	}
	if f.records == nil {
		f.records = map[string]*domain.VideoMetadata{}
	}
	f.records[meta.ID] = meta
	return nil
}

type fakeUserStorage struct {
	watched map[string][]string
	users   map[string]int64
	nextID  int64
}

func (f *fakeUserStorage) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	if f.users == nil {
		f.users = map[string]int64{}
	}
	if _, ok := f.users[user.Username]; ok {
		return 0, fmt.Errorf("username %q: %w", user.Username, domain.ErrUsernameTaken)
	}
	f.nextID++
	f.users[user.Username] = f.nextID
	user.ID = f.nextID
	return f.nextID, nil
}

func (f *fakeUserStorage) WatchedVideoIDs(ctx context.Context, username string) ([]string, error) {
	videos, ok := f.watched[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrUserNotFound)
	}
	return videos, nil
}

func (f *fakeUserStorage) RecordWatch(ctx context.Context, username, videoID string) error {
	if f.watched == nil {
		f.watched = map[string][]string{}
	}
	f.watched[username] = append(f.watched[username], videoID)
	return nil
}

type fakeInteractionStorage struct {
	interactions map[string]int64
	ratings      map[int64]map[int64]int
	comments     map[int64]string
	views        map[string]int64
	shares       map[string]int64
	nextID       int64
}

func newFakeInteractionStorage() *fakeInteractionStorage {
	return &fakeInteractionStorage{
		interactions: map[string]int64{},
		ratings:      map[int64]map[int64]int{},
		comments:     map[int64]string{},
		views:        map[string]int64{},
		shares:       map[string]int64{},
	}
}

func (f *fakeInteractionStorage) CreateInteraction(ctx context.Context, videoID string) (int64, error) {
	f.nextID++
	if _, ok := f.interactions[videoID]; !ok {
		f.interactions[videoID] = f.nextID
	}
	return f.nextID, nil
}

func (f *fakeInteractionStorage) InteractionIDByVideo(ctx context.Context, videoID string) (int64, error) {
	id, ok := f.interactions[videoID]
	if !ok {
		return 0, fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	return id, nil
}

func (f *fakeInteractionStorage) AddComment(ctx context.Context, interactionID, userID int64, comment string) (int64, error) {
	f.nextID++
	f.comments[f.nextID] = comment
	return f.nextID, nil
}

func (f *fakeInteractionStorage) UpsertLikeDislike(ctx context.Context, interactionID, userID int64, likeDislike int) error {
	if f.ratings[interactionID] == nil {
		f.ratings[interactionID] = map[int64]int{}
	}
	f.ratings[interactionID][userID] = likeDislike
	return nil
}

func (f *fakeInteractionStorage) InteractionSummary(ctx context.Context, videoID string) (domain.InteractionSummary, error) {
	summary := domain.InteractionSummary{
		Views:  f.views[videoID],
		Shares: f.shares[videoID],
	}
	if id, ok := f.interactions[videoID]; ok {
		for _, v := range f.ratings[id] {
			switch v {
			case 1:
				summary.Likes++
			case -1:
				summary.Dislikes++
			}
		}
	}
	return summary, nil
}

func (f *fakeInteractionStorage) CommentsWithLikes(ctx context.Context, videoID string) ([]domain.CommentView, error) {
	return []domain.CommentView{}, nil
}

func (f *fakeInteractionStorage) LikeComment(ctx context.Context, commentID int64) error {
	if _, ok := f.comments[commentID]; !ok {
		return fmt.Errorf("comment %d: %w", commentID, domain.ErrCommentNotFound)
	}
	return nil
}

func (f *fakeInteractionStorage) IncrementViews(ctx context.Context, videoID string) error {
	if _, ok := f.interactions[videoID]; !ok {
		return fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	f.views[videoID]++
	return nil
}

func (f *fakeInteractionStorage) IncrementShares(ctx context.Context, videoID string) error {
	if _, ok := f.interactions[videoID]; !ok {
		return fmt.Errorf("video %q: %w", videoID, domain.ErrInteractionNotFound)
	}
	f.shares[videoID]++
	return nil
}

func uploadInput(content string) UploadVideoInput {
	return UploadVideoInput{
		Reader:      bytes.NewReader([]byte(content)),
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Title:       "Test",
		Description: "d",
		Tags:        "t",
		Categories:  "c",
		Duration:    10,
		Genre:       "g",
		Username:    "alice",
	}
}

func TestUploadVideoStoresBlobAndMetadata(t *testing.T) {
	files := newFakeFileStorage()
	videos := &fakeVideoStorage{}
	uc := NewVideoUseCase(videos, newFakeInteractionStorage(), &fakeUserStorage{}, files, testLogger())

	videoID, err := uc.UploadVideo(context.Background(), uploadInput("ABC123"))
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if videoID == "" {
		t.Fatal("empty video id")
	}
	if got := files.objects[videoID]; !bytes.Equal(got, []byte("ABC123")) {
		t.Errorf("stored blob = %q, want ABC123", got)
	}
	meta, ok := videos.records[videoID]
	if !ok {
		t.Fatal("metadata row missing")
	}
	if meta.Title != "Test" || meta.Duration != 10 {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestUploadVideoDeletesBlobWhenRecordFails(t *testing.T) {
	files := newFakeFileStorage()
	videos := &fakeVideoStorage{err: errors.New("insert failed")}
	uc := NewVideoUseCase(videos, newFakeInteractionStorage(), &fakeUserStorage{}, files, testLogger())

	_, err := uc.UploadVideo(context.Background(), uploadInput("ABC123"))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(files.deleted) != 1 {
		t.Fatalf("deleted blobs = %d, want 1", len(files.deleted))
	}
	if len(files.objects) != 0 {
		t.Error("orphaned blob left in storage")
	}
}

func TestDownloadVideoRoundTrip(t *testing.T) {
	files := newFakeFileStorage()
	files.objects["v1"] = []byte("ABC123")
	files.filenames["v1"] = "clip.mp4"
	uc := NewVideoUseCase(&fakeVideoStorage{}, newFakeInteractionStorage(), &fakeUserStorage{}, files, testLogger())

	body, filename, err := uc.DownloadVideo(context.Background(), "v1")
	if err != nil {
		t.Fatalf("DownloadVideo: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(data, []byte("ABC123")) {
		t.Errorf("body = %q, want ABC123", data)
	}
	if filename != "clip.mp4" {
		t.Errorf("filename = %q", filename)
	}
}

func TestDownloadVideoMissingObject(t *testing.T) {
	uc := NewVideoUseCase(&fakeVideoStorage{}, newFakeInteractionStorage(), &fakeUserStorage{}, newFakeFileStorage(), testLogger())

	_, _, err := uc.DownloadVideo(context.Background(), "no-such")
	if !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("err = %v, want ErrVideoNotFound", err)
	}
}

func TestDownloadVideoIncrementsViewsWhenInteractionExists(t *testing.T) {
	files := newFakeFileStorage()
	files.objects["v1"] = []byte("x")
	interactions := newFakeInteractionStorage()
	interactions.interactions["v1"] = 1
	uc := NewVideoUseCase(&fakeVideoStorage{}, interactions, &fakeUserStorage{}, files, testLogger())

	body, _, err := uc.DownloadVideo(context.Background(), "v1")
	if err != nil {
		t.Fatalf("DownloadVideo: %v", err)
	}
	body.Close()

	if interactions.views["v1"] != 1 {
		t.Errorf("views = %d, want 1", interactions.views["v1"])
	}
}

func TestDownloadVideoSucceedsWithoutInteractionRow(t *testing.T) {
	files := newFakeFileStorage()
	files.objects["v1"] = []byte("x")
	uc := NewVideoUseCase(&fakeVideoStorage{}, newFakeInteractionStorage(), &fakeUserStorage{}, files, testLogger())

	body, _, err := uc.DownloadVideo(context.Background(), "v1")
	if err != nil {
		t.Fatalf("DownloadVideo: %v", err)
	}
	body.Close()
}

func TestRecordWatchAppendsHistory(t *testing.T) {
	users := &fakeUserStorage{}
	uc := NewVideoUseCase(&fakeVideoStorage{}, newFakeInteractionStorage(), users, newFakeFileStorage(), testLogger())

	if err := uc.RecordWatch(context.Background(), "alice", "v1"); err != nil {
		t.Fatalf("RecordWatch: %v", err)
	}

	videos, err := uc.WatchedVideos(context.Background(), "alice")
	if err != nil {
		t.Fatalf("WatchedVideos: %v", err)
	}
	if len(videos) != 1 || videos[0] != "v1" {
		t.Errorf("watched = %v, want [v1]", videos)
	}
}
