package documents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"docvault-backend/internal/catalog"
	"docvault-backend/internal/progress"
	"docvault-backend/internal/queue"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/storage/object"
	"docvault-backend/internal/shared/telemetry"
)

// Service orchestrates document uploads, replacement requests and signed
// read access. Storage and metadata are written in a fixed order: object
// first, then progress entry, so a crash never leaves a dangling reference.
type Service struct {
	store   object.ObjectStore
	repo    progress.Repo
	feed    *progress.Feed
	orphans queue.Client
	signTTL time.Duration
	now     func() time.Time
}

// NewService wires the upload orchestrator. orphans may be nil; metadata
// failures are then logged without queueing reconciliation work.
func NewService(store object.ObjectStore, repo progress.Repo, feed *progress.Feed, orphans queue.Client, signTTL time.Duration) *Service {
	if signTTL <= 0 {
		signTTL = 120 * time.Second
	}
	return &Service{
		store:   store,
		repo:    repo,
		feed:    feed,
		orphans: orphans,
		signTTL: signTTL,
		now:     time.Now,
	}
}

// UploadResult reports where an accepted upload landed.
type UploadResult struct {
	StorageKey     string
	DocumentTypeID string
	Side           progress.Side
	SizeBytes      int64
	Entry          progress.Entry
}

// SubmitUpload validates, stores and records one document upload. On a
// metadata failure the returned error wraps ErrMetadataWrite and the result
// still carries the storage key of the now-orphaned object.
func (s *Service) SubmitUpload(ctx context.Context, userID, requestID string, req UploadRequest) (UploadResult, error) {
	metrics.IncUploadStarted()

	validated, err := ValidateUpload(req)
	if err != nil {
		metrics.IncUploadFailed()
		return UploadResult{}, err
	}

	now := s.now()
	key := StorageKey(userID, validated.Definition.ID, validated.Side, validated.Extension, now)

	written, err := s.store.Put(ctx, key, validated.ContentType, bytes.NewReader(validated.Payload))
	if err != nil {
		metrics.IncUploadFailed()
		return UploadResult{}, fmt.Errorf("%w: %s", ErrStorageWrite, err)
	}

	entry, err := s.repo.Apply(ctx, userID, validated.Definition.ID, progress.UploadPatch{
		Side:       validated.Side,
		StorageKey: key,
	}, now)
	if err != nil {
		metrics.IncUploadFailed()
		s.reportOrphan(ctx, userID, requestID, key, err)
		return UploadResult{StorageKey: key, DocumentTypeID: validated.Definition.ID, Side: validated.Side, SizeBytes: written},
			fmt.Errorf("%w: %s", ErrMetadataWrite, err)
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadSizeBytes(float64(written))
	s.feed.Publish(userID, entry)

	fields := map[string]any{
		"document_type_id": validated.Definition.ID,
		"side":             string(validated.Side),
		"size_bytes":       written,
		"storage_key":      key,
	}
	if validated.Extension == "pdf" {
		if pages, ok := pdfPageCount(validated.Payload); ok {
			fields["pdf_pages"] = pages
		}
	}
	telemetry.Info("documents.upload.completed", fields)

	return UploadResult{
		StorageKey:     key,
		DocumentTypeID: validated.Definition.ID,
		Side:           validated.Side,
		SizeBytes:      written,
		Entry:          entry,
	}, nil
}

// RequestReplacement marks a document type as awaiting a fresh upload. The
// entry drops back to in_progress while existing storage keys are preserved,
// so prior files stay reachable until replaced.
func (s *Service) RequestReplacement(ctx context.Context, userID, documentTypeID string) (progress.Entry, error) {
	def, ok := catalog.Get(documentTypeID)
	if !ok {
		return progress.Entry{}, ErrInvalidDocumentType
	}

	entry, err := s.repo.Apply(ctx, userID, def.ID, progress.ReplacementPatch{
		EstimatedTime: def.EstimatedTime,
	}, s.now())
	if err != nil {
		return progress.Entry{}, fmt.Errorf("%w: %s", ErrMetadataWrite, err)
	}

	metrics.IncReplacementRequest()
	s.feed.Publish(userID, entry)
	telemetry.Info("documents.replacement.requested", map[string]any{
		"document_type_id": def.ID,
		"estimated_time":   def.EstimatedTime,
	})
	return entry, nil
}

// Progress returns every progress entry for the user keyed by document type.
// Types never touched are absent; readers treat absence as not_started.
func (s *Service) Progress(ctx context.Context, userID string) (map[string]progress.Entry, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Subscribe opens a progress snapshot stream for the user.
func (s *Service) Subscribe(userID string) (<-chan progress.Entry, func()) {
	return s.feed.Subscribe(userID)
}

// SignReadURL issues a short-lived read URL for a storage key the caller
// owns. Ownership is decided from the key's user segment alone; no metadata
// lookup is involved.
func (s *Service) SignReadURL(ctx context.Context, userID, storageKey string) (string, time.Duration, error) {
	if !UserOwnsKey(userID, strings.TrimSpace(storageKey)) {
		return "", 0, ErrKeyNotOwned
	}
	url, err := s.store.SignReadURL(ctx, strings.TrimSpace(storageKey), s.signTTL)
	if err != nil {
		return "", 0, fmt.Errorf("sign read url: %w", err)
	}
	metrics.IncSignedURLIssued()
	return url, s.signTTL, nil
}

// reportOrphan hands an unreferenced object key to the reconciliation queue.
// Best effort: the orphan is already surfaced to the caller in the error
// details, so a queue failure only loses the automated cleanup path.
func (s *Service) reportOrphan(ctx context.Context, userID, requestID, storageKey string, cause error) {
	fields := map[string]any{
		"storage_key": storageKey,
		"error":       cause.Error(),
	}
	if requestID != "" {
		fields["request_id"] = requestID
	}
	telemetry.Error("documents.upload.metadata_failed", fields)

	if s.orphans == nil {
		return
	}
	msg := queue.NewMessage(storageKey, userID, "metadata_write_failed", requestID)
	if err := s.orphans.Send(ctx, msg); err != nil {
		telemetry.Error("documents.orphan.enqueue_failed", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}
