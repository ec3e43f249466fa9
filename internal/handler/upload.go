package handler

import (
	"errors"
	"net/http"

	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// formFile opens the multipart file in field. A missing file yields a nil
// upload and a no-op closer.
func formFile(c *gin.Context, field string) (*service.FileUpload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return &service.FileUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// parseMultipart reads the form up front so an oversized body is reported
// as FILE_TOO_LARGE rather than a binding error. Non-multipart bodies are
// left for the binder.
func parseMultipart(c *gin.Context, maxMemory int64) bool {
	err := c.Request.ParseMultipartForm(maxMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	} else {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	}
	return false
}
