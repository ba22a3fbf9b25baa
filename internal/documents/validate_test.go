package documents

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"docvault-backend/internal/progress"
)

func b64(payload string) string {
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestValidateUploadRejections(t *testing.T) {
	tests := []struct {
		name string
		req  UploadRequest
		want error
	}{
		{
			name: "unknown document type",
			req:  UploadRequest{DocumentTypeID: "library_card", FileType: "pdf", FileDataBase64: b64("x")},
			want: ErrInvalidDocumentType,
		},
		{
			name: "empty document type",
			req:  UploadRequest{DocumentTypeID: "", FileType: "pdf", FileDataBase64: b64("x")},
			want: ErrInvalidDocumentType,
		},
		{
			name: "unsupported file type",
			req:  UploadRequest{DocumentTypeID: "passport", FileType: "gif", FileDataBase64: b64("x")},
			want: ErrUnsupportedFileType,
		},
		{
			name: "missing file type",
			req:  UploadRequest{DocumentTypeID: "passport", FileType: "", FileDataBase64: b64("x")},
			want: ErrUnsupportedFileType,
		},
		{
			name: "invalid side",
			req:  UploadRequest{DocumentTypeID: "drivers_license", FileType: "jpg", Side: "sideways", FileDataBase64: b64("x")},
			want: ErrInvalidSide,
		},
		{
			// The restriction holds even for types that need only a front.
			name: "invalid side on single-sided type",
			req:  UploadRequest{DocumentTypeID: "passport", FileType: "jpg", Side: "sideways", FileDataBase64: b64("x")},
			want: ErrInvalidSide,
		},
		{
			name: "missing payload",
			req:  UploadRequest{DocumentTypeID: "passport", FileType: "pdf", FileDataBase64: ""},
			want: ErrMalformedPayload,
		},
		{
			name: "invalid base64",
			req:  UploadRequest{DocumentTypeID: "passport", FileType: "pdf", FileDataBase64: "not*base64!"},
			want: ErrMalformedPayload,
		},
		{
			name: "payload over limit",
			req:  UploadRequest{DocumentTypeID: "passport", FileType: "pdf", FileDataBase64: b64(strings.Repeat("a", maxUploadBytes+1))},
			want: ErrFileTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateUpload(tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateUploadCheckOrder(t *testing.T) {
	// Both the type and the file type are bad; the type check runs first.
	_, err := ValidateUpload(UploadRequest{DocumentTypeID: "library_card", FileType: "gif", FileDataBase64: "not*base64!"})
	if !errors.Is(err, ErrInvalidDocumentType) {
		t.Fatalf("expected invalid document type first, got %v", err)
	}

	// Bad file type and bad payload; file type wins.
	_, err = ValidateUpload(UploadRequest{DocumentTypeID: "passport", FileType: "gif", FileDataBase64: "not*base64!"})
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type before payload check, got %v", err)
	}
}

func TestValidateUploadNormalization(t *testing.T) {
	tests := []struct {
		name        string
		fileType    string
		side        string
		additional  bool
		wantExt     string
		wantContent string
		wantSide    progress.Side
	}{
		{name: "pdf plain", fileType: "pdf", wantExt: "pdf", wantContent: "application/pdf", wantSide: progress.SideFront},
		{name: "pdf mime", fileType: "application/pdf", wantExt: "pdf", wantContent: "application/pdf", wantSide: progress.SideFront},
		{name: "jpg dotted upper", fileType: ".JPG", wantExt: "jpg", wantContent: "image/jpg", wantSide: progress.SideFront},
		{name: "jpeg mime", fileType: "image/jpeg", wantExt: "jpeg", wantContent: "image/jpeg", wantSide: progress.SideFront},
		{name: "png", fileType: "png", wantExt: "png", wantContent: "image/png", wantSide: progress.SideFront},
		{name: "explicit back", fileType: "png", side: "back", wantExt: "png", wantContent: "image/png", wantSide: progress.SideBack},
		{name: "side case insensitive", fileType: "png", side: "FRONT", wantExt: "png", wantContent: "image/png", wantSide: progress.SideFront},
		{name: "additional overrides side", fileType: "png", side: "front", additional: true, wantExt: "png", wantContent: "image/png", wantSide: progress.SideAdditional},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			validated, err := ValidateUpload(UploadRequest{
				DocumentTypeID:   "drivers_license",
				FileType:         tc.fileType,
				Side:             tc.side,
				IsAdditionalFile: tc.additional,
				FileDataBase64:   b64("payload"),
			})
			if err != nil {
				t.Fatalf("ValidateUpload: %v", err)
			}
			if validated.Extension != tc.wantExt {
				t.Fatalf("expected ext %q, got %q", tc.wantExt, validated.Extension)
			}
			if validated.ContentType != tc.wantContent {
				t.Fatalf("expected content type %q, got %q", tc.wantContent, validated.ContentType)
			}
			if validated.Side != tc.wantSide {
				t.Fatalf("expected side %q, got %q", tc.wantSide, validated.Side)
			}
			if string(validated.Payload) != "payload" {
				t.Fatalf("expected decoded payload, got %q", validated.Payload)
			}
		})
	}
}

func TestValidateUploadAtLimit(t *testing.T) {
	validated, err := ValidateUpload(UploadRequest{
		DocumentTypeID: "passport",
		FileType:       "pdf",
		FileDataBase64: b64(strings.Repeat("a", maxUploadBytes)),
	})
	if err != nil {
		t.Fatalf("payload exactly at the limit must pass: %v", err)
	}
	if len(validated.Payload) != maxUploadBytes {
		t.Fatalf("expected %d bytes, got %d", maxUploadBytes, len(validated.Payload))
	}
}
