package workerproc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docvault-backend/internal/bootstrap"
	"docvault-backend/internal/progress"
	"docvault-backend/internal/queue"
)

// ErrEmptyBody indicates an empty queue payload.
var ErrEmptyBody = errors.New("empty message body")

// ErrDecode indicates a payload the worker cannot parse. These messages are
// unrecoverable and should be deleted rather than retried.
type ErrDecode struct {
	Err error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrProcess indicates processing failed after successful parsing. The
// message stays on the queue for redelivery.
type ErrProcess struct {
	StorageKey string
	Err        error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process orphan"
	}
	return "process orphan: " + e.Err.Error()
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, error) {
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, ErrEmptyBody
	}
	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, ErrDecode{Err: err}
	}
	return msg, nil
}

// Outcome reports what HandleMessage decided for a message.
type Outcome string

const (
	// OutcomeDeleted means the orphaned object was removed from storage.
	OutcomeDeleted Outcome = "deleted"
	// OutcomeSkipped means a progress entry references the key again, so the
	// object is no longer an orphan and was left in place.
	OutcomeSkipped Outcome = "skipped"
)

// HandleMessage reconciles one orphan report. The metadata write that failed
// at upload time may have been retried successfully since the message was
// enqueued, so the progress entries are consulted before deleting anything.
func HandleMessage(ctx context.Context, app *bootstrap.App, msg queue.Message) (Outcome, error) {
	if app == nil || app.Store == nil || app.ProgressRepo == nil {
		return "", ErrProcess{StorageKey: msg.StorageKey, Err: errors.New("worker not configured")}
	}

	referenced, err := keyReferenced(ctx, app.ProgressRepo, msg.UserID, msg.StorageKey)
	if err != nil {
		return "", ErrProcess{StorageKey: msg.StorageKey, Err: fmt.Errorf("check references: %w", err)}
	}
	if referenced {
		return OutcomeSkipped, nil
	}

	if err := app.Store.Delete(ctx, msg.StorageKey); err != nil {
		return "", ErrProcess{StorageKey: msg.StorageKey, Err: fmt.Errorf("delete object: %w", err)}
	}
	return OutcomeDeleted, nil
}

func keyReferenced(ctx context.Context, repo progress.Repo, userID, storageKey string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	entries, err := repo.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.FrontKey == storageKey || entry.BackKey == storageKey {
			return true, nil
		}
		for _, key := range entry.AdditionalKeys {
			if key == storageKey {
				return true, nil
			}
		}
	}
	return false, nil
}
