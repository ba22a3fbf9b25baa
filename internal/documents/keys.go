package documents

import (
	"fmt"
	"strings"
	"time"

	"docvault-backend/internal/progress"
)

const keyRoot = "user_uploads"

// StorageKey builds the canonical object key for an upload. The layout is
// load-bearing: existing objects were written under it and ownership checks
// parse the user segment back out, so it must not change shape.
//
//	user_uploads/{userId}/{documentTypeId}/{side}_{unixMillis}.{ext}
//	user_uploads/{userId}/{documentTypeId}/additional/{unixMillis}.{ext}
func StorageKey(userID, documentTypeID string, side progress.Side, ext string, at time.Time) string {
	ts := at.UnixMilli()
	if side == progress.SideAdditional {
		return fmt.Sprintf("%s/%s/%s/additional/%d.%s", keyRoot, userID, documentTypeID, ts, ext)
	}
	return fmt.Sprintf("%s/%s/%s/%s_%d.%s", keyRoot, userID, documentTypeID, side, ts, ext)
}

// UserOwnsKey reports whether storageKey lives under the caller's namespace.
func UserOwnsKey(userID, storageKey string) bool {
	if userID == "" {
		return false
	}
	return strings.HasPrefix(storageKey, keyRoot+"/"+userID+"/")
}
