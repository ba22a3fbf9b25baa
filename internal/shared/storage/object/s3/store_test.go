package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user_uploads/u/file.pdf", want: "user_uploads/u/file.pdf"},
		{name: "simple prefix", prefix: "vault", key: "user_uploads/u/file.pdf", want: "vault/user_uploads/u/file.pdf"},
		{name: "prefix trailing slash", prefix: "vault/", key: "user_uploads/u/file.pdf", want: "vault/user_uploads/u/file.pdf"},
		{name: "prefix and key slashes", prefix: "/vault/", key: "/user_uploads/u/file.pdf", want: "vault/user_uploads/u/file.pdf"},
		{name: "nested prefix", prefix: "vault/prod", key: "user_uploads/u/file.pdf", want: "vault/prod/user_uploads/u/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  ", want: ""},
		{in: "/vault/", want: "vault"},
		{in: "vault/prod/", want: "vault/prod"},
	}

	for _, tt := range tests {
		if got := normalizePrefix(tt.in); got != tt.want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
