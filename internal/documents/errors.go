package documents

import "errors"

// Validation failures are safe to retry after correcting input. Storage
// failures left no partial state. Metadata failures mean the object exists
// but is unreferenced; the orphaned key is reported for recovery.
var (
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrUnsupportedFileType = errors.New("invalid or unsupported file type")
	ErrInvalidSide         = errors.New("invalid side specified")
	ErrMalformedPayload    = errors.New("missing or malformed file data")
	ErrFileTooLarge        = errors.New("file too large (max 5MB)")
	ErrStorageWrite        = errors.New("failed to upload file")
	ErrMetadataWrite       = errors.New("failed to save metadata")
	ErrKeyNotOwned         = errors.New("storage key outside caller namespace")
)
