package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"docvault-backend/internal/progress"
	"docvault-backend/internal/queue"
)

type fakeStore struct {
	puts    int
	objects map[string][]byte
	types   map[string]string
	deleted []string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *fakeStore) Put(_ context.Context, key, contentType string, r io.Reader) (int64, error) {
	s.puts++
	if s.putErr != nil {
		return 0, s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return int64(len(data)), nil
}

func (s *fakeStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) SignReadURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

type fakeQueue struct {
	sent []queue.Message
	err  error
}

func (q *fakeQueue) Send(_ context.Context, msg queue.Message) error {
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, msg)
	return nil
}

type failRepo struct {
	err error
}

func (r *failRepo) Apply(context.Context, string, string, progress.Patch, time.Time) (progress.Entry, error) {
	return progress.Entry{}, r.err
}

func (r *failRepo) GetByUser(context.Context, string) (map[string]progress.Entry, error) {
	return nil, r.err
}

func (r *failRepo) DeleteByUser(context.Context, string) error {
	return r.err
}

func newTestService(store *fakeStore, repo progress.Repo, q queue.Client) *Service {
	svc := NewService(store, repo, progress.NewFeed(), q, 120*time.Second)
	svc.now = func() time.Time { return time.UnixMilli(1717243200123) }
	return svc
}

func TestSubmitUploadRoundTrip(t *testing.T) {
	store := newFakeStore()
	repo := progress.NewMemoryRepo()
	svc := newTestService(store, repo, nil)

	payload := []byte("front of the license")
	result, err := svc.SubmitUpload(context.Background(), "user-1", "req-1", UploadRequest{
		DocumentTypeID: "drivers_license",
		FileType:       "jpg",
		Side:           "front",
		FileDataBase64: base64.StdEncoding.EncodeToString(payload),
	})
	if err != nil {
		t.Fatalf("SubmitUpload: %v", err)
	}

	wantKey := "user_uploads/user-1/drivers_license/front_1717243200123.jpg"
	if result.StorageKey != wantKey {
		t.Fatalf("expected key %q, got %q", wantKey, result.StorageKey)
	}
	if result.SizeBytes != int64(len(payload)) {
		t.Fatalf("expected %d bytes written, got %d", len(payload), result.SizeBytes)
	}

	// Stored bytes match the decoded payload exactly.
	if !bytes.Equal(store.objects[wantKey], payload) {
		t.Fatalf("stored bytes differ from payload")
	}
	if store.types[wantKey] != "image/jpg" {
		t.Fatalf("expected content type image/jpg, got %q", store.types[wantKey])
	}

	// The progress entry reflects the upload.
	entries, err := repo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	entry := entries["drivers_license"]
	if entry.Status != progress.StatusCompleted {
		t.Fatalf("expected completed entry, got %s", entry.Status)
	}
	if entry.FrontKey != wantKey {
		t.Fatalf("expected front key %q, got %q", wantKey, entry.FrontKey)
	}
}

func TestSubmitUploadValidationWritesNothing(t *testing.T) {
	store := newFakeStore()
	repo := progress.NewMemoryRepo()
	svc := newTestService(store, repo, nil)

	tests := []struct {
		name string
		req  UploadRequest
		want error
	}{
		{
			name: "invalid type",
			req:  UploadRequest{DocumentTypeID: "library_card", FileType: "pdf", FileDataBase64: base64.StdEncoding.EncodeToString([]byte("x"))},
			want: ErrInvalidDocumentType,
		},
		{
			name: "oversize payload",
			req: UploadRequest{
				DocumentTypeID: "passport",
				FileType:       "pdf",
				FileDataBase64: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("a", maxUploadBytes+1))),
			},
			want: ErrFileTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitUpload(context.Background(), "user-1", "", tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if store.puts != 0 {
		t.Fatalf("expected no storage writes on validation failure, got %d", store.puts)
	}
	entries, _ := repo.GetByUser(context.Background(), "user-1")
	if len(entries) != 0 {
		t.Fatalf("expected no progress entries, got %v", entries)
	}
}

func TestSubmitUploadStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("bucket unavailable")
	repo := progress.NewMemoryRepo()
	svc := newTestService(store, repo, nil)

	_, err := svc.SubmitUpload(context.Background(), "user-1", "", UploadRequest{
		DocumentTypeID: "passport",
		FileType:       "pdf",
		FileDataBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	})
	if !errors.Is(err, ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}

	entries, _ := repo.GetByUser(context.Background(), "user-1")
	if len(entries) != 0 {
		t.Fatalf("storage failure must not write metadata, got %v", entries)
	}
}

func TestSubmitUploadMetadataFailureReportsOrphan(t *testing.T) {
	store := newFakeStore()
	q := &fakeQueue{}
	svc := newTestService(store, &failRepo{err: errors.New("db down")}, q)

	result, err := svc.SubmitUpload(context.Background(), "user-1", "req-9", UploadRequest{
		DocumentTypeID: "passport",
		FileType:       "pdf",
		FileDataBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	})
	if !errors.Is(err, ErrMetadataWrite) {
		t.Fatalf("expected ErrMetadataWrite, got %v", err)
	}
	if result.StorageKey == "" {
		t.Fatal("expected orphaned storage key surfaced in result")
	}

	if len(q.sent) != 1 {
		t.Fatalf("expected one orphan message, got %d", len(q.sent))
	}
	msg := q.sent[0]
	if msg.StorageKey != result.StorageKey || msg.UserID != "user-1" || msg.RequestID != "req-9" {
		t.Fatalf("unexpected orphan message: %+v", msg)
	}
	if msg.Reason != "metadata_write_failed" {
		t.Fatalf("unexpected orphan reason %q", msg.Reason)
	}
}

func TestRequestReplacement(t *testing.T) {
	store := newFakeStore()
	repo := progress.NewMemoryRepo()
	svc := newTestService(store, repo, nil)

	if _, err := svc.RequestReplacement(context.Background(), "user-1", "library_card"); !errors.Is(err, ErrInvalidDocumentType) {
		t.Fatalf("expected ErrInvalidDocumentType, got %v", err)
	}

	entry, err := svc.RequestReplacement(context.Background(), "user-1", "drivers_license")
	if err != nil {
		t.Fatalf("RequestReplacement: %v", err)
	}
	if entry.Status != progress.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", entry.Status)
	}
	if entry.EstimatedTime == "" {
		t.Fatal("expected estimated time from the catalog definition")
	}
}

func TestSubmitUploadPublishesToFeed(t *testing.T) {
	store := newFakeStore()
	repo := progress.NewMemoryRepo()
	svc := newTestService(store, repo, nil)

	ch, cancel := svc.Subscribe("user-1")
	defer cancel()

	if _, err := svc.SubmitUpload(context.Background(), "user-1", "", UploadRequest{
		DocumentTypeID: "passport",
		FileType:       "pdf",
		FileDataBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	}); err != nil {
		t.Fatalf("SubmitUpload: %v", err)
	}

	select {
	case entry := <-ch:
		if entry.DocumentTypeID != "passport" || entry.Status != progress.StatusCompleted {
			t.Fatalf("unexpected feed entry: %+v", entry)
		}
	case <-time.After(time.Second):
		t.Fatal("expected feed entry after upload")
	}
}

func TestSignReadURLOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, progress.NewMemoryRepo(), nil)

	if _, _, err := svc.SignReadURL(context.Background(), "user-1", "user_uploads/user-2/passport/front_1.pdf"); !errors.Is(err, ErrKeyNotOwned) {
		t.Fatalf("expected ErrKeyNotOwned, got %v", err)
	}

	url, ttl, err := svc.SignReadURL(context.Background(), "user-1", "user_uploads/user-1/passport/front_1.pdf")
	if err != nil {
		t.Fatalf("SignReadURL: %v", err)
	}
	if url == "" {
		t.Fatal("expected signed url")
	}
	if ttl != 120*time.Second {
		t.Fatalf("expected 120s ttl, got %s", ttl)
	}
}
