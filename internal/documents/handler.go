package documents

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/catalog"
	"docvault-backend/internal/progress"
	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
)

// Handler exposes the document endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs a document handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the document routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/upload", h.upload)
	rg.POST("/documents/replacement-requests", h.requestReplacement)
	rg.GET("/documents/progress", h.progress)
	rg.GET("/documents/progress/stream", h.stream)
	rg.GET("/documents/types", h.types)
	rg.GET("/auth/sign-url", h.signURL)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	var dto uploadRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, http.StatusBadRequest, "MALFORMED_PAYLOAD", "missing or malformed file data", nil)
		return
	}

	c.Set("documentTypeId", dto.DocumentTypeID)
	c.Set("uploadSide", dto.Side)

	result, err := h.svc.SubmitUpload(c.Request.Context(), userID, c.GetString("requestId"), UploadRequest{
		DocumentTypeID:   dto.DocumentTypeID,
		FileDataBase64:   dto.FileDataBase64,
		FileType:         dto.FileType,
		Side:             dto.Side,
		IsAdditionalFile: dto.IsAdditionalFile,
		FileName:         dto.FileName,
	})
	if err != nil {
		h.uploadError(c, result, err)
		return
	}

	respond.OK(c, uploadResponseDTO{
		Success:        true,
		StorageKey:     result.StorageKey,
		DocumentTypeID: result.DocumentTypeID,
		Side:           string(result.Side),
	})
}

// uploadError maps service failures to the wire codes clients key off.
func (h *Handler) uploadError(c *gin.Context, result UploadResult, err error) {
	switch {
	case errors.Is(err, ErrInvalidDocumentType):
		respond.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", err.Error(), nil)
	case errors.Is(err, ErrUnsupportedFileType):
		respond.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error(), nil)
	case errors.Is(err, ErrInvalidSide):
		respond.Error(c, http.StatusBadRequest, "INVALID_SIDE", err.Error(), nil)
	case errors.Is(err, ErrMalformedPayload):
		respond.Error(c, http.StatusBadRequest, "MALFORMED_PAYLOAD", err.Error(), nil)
	case errors.Is(err, ErrFileTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error(), nil)
	case errors.Is(err, ErrStorageWrite):
		respond.Error(c, http.StatusInternalServerError, "STORAGE_WRITE_FAILED", "failed to upload file", nil)
	case errors.Is(err, ErrMetadataWrite):
		// The object exists but nothing references it; surface the key so
		// the client or an operator can recover the upload.
		respond.Error(c, http.StatusInternalServerError, "METADATA_WRITE_FAILED", "failed to save metadata", map[string]any{
			"storageKey": result.StorageKey,
		})
	default:
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

func (h *Handler) requestReplacement(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	var dto replacementRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type", nil)
		return
	}
	c.Set("documentTypeId", dto.DocumentTypeID)

	entry, err := h.svc.RequestReplacement(c.Request.Context(), userID, dto.DocumentTypeID)
	if err != nil {
		if errors.Is(err, ErrInvalidDocumentType) {
			respond.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "METADATA_WRITE_FAILED", "failed to save metadata", nil)
		return
	}

	respond.OK(c, replacementResponseDTO{
		Success:        true,
		DocumentTypeID: entry.DocumentTypeID,
		Status:         string(entry.Status),
		EstimatedTime:  entry.EstimatedTime,
	})
}

func (h *Handler) progress(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	entries, err := h.svc.Progress(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to load progress", nil)
		return
	}
	if entries == nil {
		entries = map[string]progress.Entry{}
	}
	// The body is the documentTypeId -> entry mapping itself; untouched types
	// are simply absent.
	respond.OK(c, entries)
}

// stream pushes progress snapshots as server-sent events until the client
// disconnects.
func (h *Handler) stream(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	ch, cancel := h.svc.Subscribe(userID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case entry, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("progress", entry)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) types(c *gin.Context) {
	respond.OK(c, gin.H{"documentTypes": catalog.All()})
}

func (h *Handler) signURL(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	key := c.Query("key")
	if key == "" {
		respond.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "key is required", map[string]any{"field": "key"})
		return
	}

	url, ttl, err := h.svc.SignReadURL(c.Request.Context(), userID, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotOwned) {
			respond.Error(c, http.StatusForbidden, "PERMISSION_DENIED", "key is outside your namespace", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to sign url", nil)
		return
	}

	respond.OK(c, signURLResponseDTO{URL: url, ExpiresIn: int(ttl.Seconds())})
}
