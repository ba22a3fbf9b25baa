package queue

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MessageVersion is bumped when the payload shape changes so the worker can
// reject messages it does not understand.
const MessageVersion = 1

// Message describes one orphaned object: a storage write that succeeded but
// whose metadata write failed, leaving the object unreferenced.
type Message struct {
	Version    int    `json:"version"`
	StorageKey string `json:"storageKey"`
	UserID     string `json:"userId"`
	Reason     string `json:"reason"`
	RequestID  string `json:"requestId,omitempty"`
	EnqueuedAt string `json:"enqueuedAt"`
}

// NewMessage stamps a message with the current version and time.
func NewMessage(storageKey, userID, reason, requestID string) Message {
	return Message{
		Version:    MessageVersion,
		StorageKey: storageKey,
		UserID:     userID,
		Reason:     reason,
		RequestID:  requestID,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// EncodeMessage serializes a message for the queue body.
func EncodeMessage(m Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode queue message: %w", err)
	}
	return b, nil
}

// DecodeMessage parses a queue body and validates the version.
func DecodeMessage(body []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return Message{}, fmt.Errorf("decode queue message: %w", err)
	}
	if m.Version != MessageVersion {
		return Message{}, fmt.Errorf("unsupported queue message version %d", m.Version)
	}
	if strings.TrimSpace(m.StorageKey) == "" {
		return Message{}, fmt.Errorf("queue message missing storage key")
	}
	return m, nil
}
