package progress

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoUploadLifecycle(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry, err := repo.Apply(ctx, "user-1", "drivers_license", UploadPatch{Side: SideFront, StorageKey: "key-front"}, now)
	if err != nil {
		t.Fatalf("Apply front: %v", err)
	}
	if entry.Status != StatusCompleted {
		t.Fatalf("expected completed after upload, got %s", entry.Status)
	}
	if entry.RequestType != RequestUpload {
		t.Fatalf("expected request type upload, got %s", entry.RequestType)
	}
	if entry.FrontKey != "key-front" {
		t.Fatalf("expected front key recorded, got %q", entry.FrontKey)
	}

	later := now.Add(time.Minute)
	entry, err = repo.Apply(ctx, "user-1", "drivers_license", UploadPatch{Side: SideBack, StorageKey: "key-back"}, later)
	if err != nil {
		t.Fatalf("Apply back: %v", err)
	}
	if entry.FrontKey != "key-front" {
		t.Fatalf("back upload must preserve front key, got %q", entry.FrontKey)
	}
	if entry.BackKey != "key-back" {
		t.Fatalf("expected back key recorded, got %q", entry.BackKey)
	}
	if !entry.UpdatedAt.Equal(later) {
		t.Fatalf("expected updatedAt %v, got %v", later, entry.UpdatedAt)
	}
}

func TestMemoryRepoAdditionalKeysAppend(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, key := range []string{"add-1", "add-2"} {
		if _, err := repo.Apply(ctx, "user-1", "passport", UploadPatch{Side: SideAdditional, StorageKey: key}, now); err != nil {
			t.Fatalf("Apply additional %s: %v", key, err)
		}
	}

	entries, err := repo.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	got := entries["passport"].AdditionalKeys
	if len(got) != 2 || got[0] != "add-1" || got[1] != "add-2" {
		t.Fatalf("expected additional keys appended in order, got %v", got)
	}
}

func TestMemoryRepoReplacementDowngradesButKeepsKeys(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := repo.Apply(ctx, "user-1", "drivers_license", UploadPatch{Side: SideFront, StorageKey: "key-front"}, now); err != nil {
		t.Fatalf("Apply upload: %v", err)
	}

	entry, err := repo.Apply(ctx, "user-1", "drivers_license", ReplacementPatch{EstimatedTime: "1-2 days"}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Apply replacement: %v", err)
	}
	if entry.Status != StatusInProgress {
		t.Fatalf("expected in_progress after replacement request, got %s", entry.Status)
	}
	if entry.RequestType != RequestReplacement {
		t.Fatalf("expected request type request_replacement, got %s", entry.RequestType)
	}
	if entry.EstimatedTime != "1-2 days" {
		t.Fatalf("expected estimated time recorded, got %q", entry.EstimatedTime)
	}
	if entry.FrontKey != "key-front" {
		t.Fatalf("replacement must preserve existing keys, got front %q", entry.FrontKey)
	}

	// A fresh upload brings the entry back to completed.
	entry, err = repo.Apply(ctx, "user-1", "drivers_license", UploadPatch{Side: SideFront, StorageKey: "key-front-2"}, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Apply re-upload: %v", err)
	}
	if entry.Status != StatusCompleted {
		t.Fatalf("expected completed after re-upload, got %s", entry.Status)
	}
	if entry.FrontKey != "key-front-2" {
		t.Fatalf("expected front key replaced, got %q", entry.FrontKey)
	}
}

func TestMemoryRepoReplacementOnUntouchedType(t *testing.T) {
	repo := NewMemoryRepo()
	entry, err := repo.Apply(context.Background(), "user-1", "passport", ReplacementPatch{EstimatedTime: "Same day"}, time.Now())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if entry.Status != StatusInProgress {
		t.Fatalf("expected in_progress entry created, got %s", entry.Status)
	}
	if entry.FrontKey != "" || entry.BackKey != "" || len(entry.AdditionalKeys) != 0 {
		t.Fatalf("expected no keys on fresh replacement entry, got %+v", entry)
	}
}

func TestMemoryRepoDeleteByUser(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now()

	if _, err := repo.Apply(ctx, "user-1", "passport", UploadPatch{Side: SideFront, StorageKey: "k1"}, now); err != nil {
		t.Fatalf("Apply user-1: %v", err)
	}
	if _, err := repo.Apply(ctx, "user-2", "passport", UploadPatch{Side: SideFront, StorageKey: "k2"}, now); err != nil {
		t.Fatalf("Apply user-2: %v", err)
	}

	if err := repo.DeleteByUser(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}

	entries, err := repo.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUser user-1: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected user-1 wiped, got %v", entries)
	}

	entries, err = repo.GetByUser(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetByUser user-2: %v", err)
	}
	if entries["passport"].FrontKey != "k2" {
		t.Fatalf("expected user-2 untouched, got %v", entries)
	}
}
