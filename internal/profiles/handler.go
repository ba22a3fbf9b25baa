package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
)

// Handler exposes the profile endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs a profile handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the profile routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/profile", h.update)
	rg.GET("/profile", h.get)
}

// The street line arrives as "address" on the wire; the stored profile nests
// it under address.street.
type updateProfileDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	var dto updateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "malformed request body", nil)
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), userID, UpdateRequest{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Street:    dto.Address,
		City:      dto.City,
		State:     dto.State,
		ZipCode:   dto.ZipCode,
	})
	if err != nil {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			respond.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", fieldErr.Message, map[string]any{
				"field": fieldErr.Field,
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to save profile", nil)
		return
	}

	respond.OK(c, gin.H{"success": true, "profile": profile})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to load profile", nil)
		return
	}

	respond.OK(c, profile)
}
