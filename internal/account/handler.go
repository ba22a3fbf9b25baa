package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
)

// Handler exposes the account endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs an account handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the account routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/account/data", h.clearData)
}

func (h *Handler) clearData(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token", nil)
		return
	}

	if err := h.svc.ClearData(c.Request.Context(), userID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to clear account data", nil)
		return
	}

	respond.OK(c, gin.H{"success": true})
}
