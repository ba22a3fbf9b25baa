package documents

import (
	"encoding/base64"
	"fmt"
	"strings"

	"docvault-backend/internal/catalog"
	"docvault-backend/internal/progress"
	"docvault-backend/internal/shared/util"
)

// maxUploadBytes caps the decoded payload at 5 MiB.
const maxUploadBytes = 5 << 20

// UploadRequest is the transient input of one upload call.
type UploadRequest struct {
	DocumentTypeID   string
	FileDataBase64   string
	FileType         string
	Side             string
	IsAdditionalFile bool
	FileName         string
}

// ValidatedUpload is the outcome of a successful validation pass.
type ValidatedUpload struct {
	Definition  catalog.Definition
	Side        progress.Side
	Payload     []byte
	Extension   string
	ContentType string
	FileName    string
}

// extensions maps accepted file type spellings (extension or MIME form,
// case-insensitive) to the canonical extension used in storage keys.
var extensions = map[string]string{
	"pdf":             "pdf",
	".pdf":            "pdf",
	"application/pdf": "pdf",
	"jpg":             "jpg",
	".jpg":            "jpg",
	"image/jpg":       "jpg",
	"jpeg":            "jpeg",
	".jpeg":           "jpeg",
	"image/jpeg":      "jpeg",
	"png":             "png",
	".png":            "png",
	"image/png":       "png",
}

// ValidateUpload runs the ordered validation checks over the request. It is
// pure: no storage or network calls, first failure wins.
func ValidateUpload(req UploadRequest) (ValidatedUpload, error) {
	def, ok := catalog.Get(req.DocumentTypeID)
	if !ok {
		return ValidatedUpload{}, ErrInvalidDocumentType
	}

	ext, ok := extensions[strings.ToLower(strings.TrimSpace(req.FileType))]
	if !ok {
		return ValidatedUpload{}, ErrUnsupportedFileType
	}

	side, err := normalizeSide(req.Side, req.IsAdditionalFile)
	if err != nil {
		return ValidatedUpload{}, err
	}

	if strings.TrimSpace(req.FileDataBase64) == "" {
		return ValidatedUpload{}, ErrMalformedPayload
	}
	payload, err := base64.StdEncoding.DecodeString(req.FileDataBase64)
	if err != nil {
		return ValidatedUpload{}, ErrMalformedPayload
	}

	if len(payload) > maxUploadBytes {
		return ValidatedUpload{}, ErrFileTooLarge
	}

	fileName := ""
	if strings.TrimSpace(req.FileName) != "" {
		sanitized, err := util.SanitizeFileName(req.FileName)
		if err != nil {
			return ValidatedUpload{}, fmt.Errorf("%w: %s", ErrMalformedPayload, "invalid file name")
		}
		fileName = sanitized
	}

	return ValidatedUpload{
		Definition:  def,
		Side:        side,
		Payload:     payload,
		Extension:   ext,
		ContentType: contentTypeFor(ext),
		FileName:    fileName,
	}, nil
}

// normalizeSide defaults an omitted side to front and restricts primary
// uploads to front/back so the progress patch stays enumerable.
func normalizeSide(raw string, additional bool) (progress.Side, error) {
	if additional {
		return progress.SideAdditional, nil
	}
	switch progress.Side(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return progress.SideFront, nil
	case progress.SideFront:
		return progress.SideFront, nil
	case progress.SideBack:
		return progress.SideBack, nil
	default:
		return "", ErrInvalidSide
	}
}

// contentTypeFor mirrors the stored content types of previously uploaded
// objects; changing these would not break keys but would change what viewers
// receive on fetch.
func contentTypeFor(ext string) string {
	if ext == "pdf" {
		return "application/pdf"
	}
	return "image/" + ext
}
