package local

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"docvault-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem. Signed read URLs
// point back at the API's own /files endpoint and carry an HMAC token, so the
// local store mirrors the presigned-URL contract of the S3 store.
type Store struct {
	baseDir string
	baseURL string
	secret  []byte
}

// New creates a local object store rooted at baseDir. baseURL is the public
// origin the signed URLs are built against; secret signs the URL tokens.
func New(baseDir, baseURL, secret string) *Store {
	return &Store{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
	}
}

// Put writes the reader contents at the storage key, replacing any existing
// file.
func (s *Store) Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return 0, err
	}

	fullPath := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	_ = contentType
	return written, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, clean))
}

// Delete removes the file at the key. A missing file is treated as success.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// SignReadURL builds an HMAC-token URL served by the API's /files endpoint.
func (s *Store) SignReadURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return "", err
	}

	exp := time.Now().UTC().Add(ttl).Unix()
	sig := s.sign(clean, exp)

	q := url.Values{}
	q.Set("exp", strconv.FormatInt(exp, 10))
	q.Set("sig", sig)
	return fmt.Sprintf("%s/files/%s?%s", s.baseURL, clean, q.Encode()), nil
}

// VerifyToken checks the signature and expiry of a signed /files request.
func (s *Store) VerifyToken(storageKey, expRaw, sig string) bool {
	clean, err := cleanKey(storageKey)
	if err != nil {
		return false
	}
	exp, err := strconv.ParseInt(expRaw, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().UTC().Unix() > exp {
		return false
	}
	expected := s.sign(clean, exp)
	return hmac.Equal([]byte(sig), []byte(expected))
}

func (s *Store) sign(storageKey string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%d", storageKey, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

func cleanKey(storageKey string) (string, error) {
	clean := filepath.Clean(strings.TrimLeft(storageKey, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return clean, nil
}

var _ object.ObjectStore = (*Store)(nil)
