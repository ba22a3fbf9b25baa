package queue

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	msg := NewMessage("user_uploads/user-1/passport/front_1.pdf", "user-1", "metadata_write_failed", "req-1")

	body, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	decoded, err := DecodeMessage(body)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if decoded.StorageKey != msg.StorageKey || decoded.UserID != msg.UserID {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if decoded.Version != MessageVersion {
		t.Fatalf("expected version %d, got %d", MessageVersion, decoded.Version)
	}
	if decoded.EnqueuedAt == "" {
		t.Fatal("expected enqueuedAt stamped")
	}
}

func TestDecodeRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not json", body: "{", want: "decode queue message"},
		{name: "wrong version", body: `{"version":99,"storageKey":"k"}`, want: "unsupported queue message version"},
		{name: "missing key", body: `{"version":1,"storageKey":"  "}`, want: "missing storage key"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMessage([]byte(tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
