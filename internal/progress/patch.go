package progress

import "time"

// Patch is a tagged update applied to an Entry with merge semantics: fields a
// patch does not name are preserved. This replaces the free-form merge objects
// the repos would otherwise accept, so each patch's effect is enumerable.
type Patch interface {
	isPatch()
}

// UploadPatch marks the entry completed by an upload and records the storage
// key for the given side (front/back overwrite, additional appends).
type UploadPatch struct {
	Side       Side
	StorageKey string
}

func (UploadPatch) isPatch() {}

// ReplacementPatch downgrades the entry to in_progress for a replacement
// request. Any keys already on the entry are left untouched.
type ReplacementPatch struct {
	EstimatedTime string
}

func (ReplacementPatch) isPatch() {}

// apply merges a patch into an entry. Shared by the in-memory repo and tests;
// the Postgres repo expresses the same merge in SQL.
func apply(entry Entry, documentTypeID string, p Patch, updatedAt time.Time) Entry {
	entry.DocumentTypeID = documentTypeID
	entry.UpdatedAt = updatedAt
	switch patch := p.(type) {
	case UploadPatch:
		entry.Status = StatusCompleted
		entry.RequestType = RequestUpload
		switch patch.Side {
		case SideFront:
			entry.FrontKey = patch.StorageKey
		case SideBack:
			entry.BackKey = patch.StorageKey
		case SideAdditional:
			entry.AdditionalKeys = append(entry.AdditionalKeys, patch.StorageKey)
		}
	case ReplacementPatch:
		entry.Status = StatusInProgress
		entry.RequestType = RequestReplacement
		entry.EstimatedTime = patch.EstimatedTime
	}
	return entry
}
