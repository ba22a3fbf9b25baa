package documents

import (
	"testing"
	"time"

	"docvault-backend/internal/progress"
)

func TestStorageKeyLayout(t *testing.T) {
	at := time.UnixMilli(1717243200123)

	tests := []struct {
		name string
		side progress.Side
		ext  string
		want string
	}{
		{
			name: "front",
			side: progress.SideFront,
			ext:  "jpg",
			want: "user_uploads/user-1/drivers_license/front_1717243200123.jpg",
		},
		{
			name: "back",
			side: progress.SideBack,
			ext:  "png",
			want: "user_uploads/user-1/drivers_license/back_1717243200123.png",
		},
		{
			name: "additional",
			side: progress.SideAdditional,
			ext:  "pdf",
			want: "user_uploads/user-1/drivers_license/additional/1717243200123.pdf",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StorageKey("user-1", "drivers_license", tc.side, tc.ext, at)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUserOwnsKey(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		key    string
		want   bool
	}{
		{name: "own key", userID: "user-1", key: "user_uploads/user-1/passport/front_1.pdf", want: true},
		{name: "other user", userID: "user-1", key: "user_uploads/user-2/passport/front_1.pdf", want: false},
		{name: "prefix trick", userID: "user-1", key: "user_uploads/user-10/passport/front_1.pdf", want: false},
		{name: "outside root", userID: "user-1", key: "other/user-1/passport/front_1.pdf", want: false},
		{name: "empty user", userID: "", key: "user_uploads//passport/front_1.pdf", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UserOwnsKey(tc.userID, tc.key); got != tc.want {
				t.Fatalf("UserOwnsKey(%q, %q) = %v, want %v", tc.userID, tc.key, got, tc.want)
			}
		})
	}
}
