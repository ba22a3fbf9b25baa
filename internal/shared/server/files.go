package server

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/respond"
	localstore "docvault-backend/internal/shared/storage/object/local"
)

// registerFileRoutes serves locally stored objects at the URLs the local
// store signs. Access control is the HMAC token alone, matching the way a
// presigned URL works against a bucket.
func registerFileRoutes(r *gin.Engine, store *localstore.Store) {
	r.GET("/files/*key", func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		exp := c.Query("exp")
		sig := c.Query("sig")

		if key == "" || !store.VerifyToken(key, exp, sig) {
			respond.Error(c, http.StatusForbidden, "PERMISSION_DENIED", "invalid or expired link", nil)
			return
		}

		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "object not found", nil)
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, rc)
	})
}
