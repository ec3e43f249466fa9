// Package storage keeps uploaded assignment and submission files.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("file not found")

// ErrInvalidName is returned for names that could escape the store.
var ErrInvalidName = errors.New("invalid file name")

// Store saves and loads uploaded files by name.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,254}$`)

// ValidateName rejects anything other than a flat file name.
func ValidateName(name string) error {
	if !validName.MatchString(name) || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}

var validExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// NewName builds a unique stored name from a prefix and the client's file name.
// Only a short alphanumeric extension of the original name is kept.
func NewName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !validExt.MatchString(ext) {
		ext = ""
	}
	return prefix + "_" + uuid.New().String() + ext
}
