package progress

import "time"

// Status is the lifecycle state of one document type for one user.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// RequestType records which workflow last touched the entry.
type RequestType string

const (
	RequestUpload      RequestType = "upload"
	RequestReplacement RequestType = "request_replacement"
)

// Side identifies which slot of a document an upload fills.
type Side string

const (
	SideFront      Side = "front"
	SideBack       Side = "back"
	SideAdditional Side = "additional"
)

// Entry is the per-user, per-document-type progress record. Front, back and
// additional keys are populated independently across calls; only the latest
// key per role is remembered.
type Entry struct {
	DocumentTypeID string      `json:"documentTypeId"`
	Status         Status      `json:"status"`
	RequestType    RequestType `json:"requestType"`
	EstimatedTime  string      `json:"estimatedTime,omitempty"`
	FrontKey       string      `json:"frontKey,omitempty"`
	BackKey        string      `json:"backKey,omitempty"`
	AdditionalKeys []string    `json:"additionalKeys,omitempty"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
