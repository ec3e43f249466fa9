package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/edutrack/edutrack-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FileHandler serves stored uploads.
type FileHandler struct {
	store storage.Store
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(store storage.Store) *FileHandler {
	return &FileHandler{store: store}
}

// Download godoc
// GET /uploads/:name
// Streams a stored assignment or submission file.
func (h *FileHandler) Download(c *gin.Context) {
	name := c.Param("name")
	if err := storage.ValidateName(name); err != nil {
		c.Header("Cache-Control", "no-store")
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	rc, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		c.Header("Cache-Control", "no-store")
		if errors.Is(err, storage.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("file", name).Msg("Failed to open upload")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}
