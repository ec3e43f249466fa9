package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/edutrack/edutrack-backend/internal/storage"
	"github.com/rs/zerolog"
)

// FileUpload is a file received from a client.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// fileSaver applies the upload size limit and names files before handing them to the store.
type fileSaver struct {
	store    storage.Store
	maxBytes int64
	log      zerolog.Logger
}

func (f fileSaver) save(ctx context.Context, prefix string, up *FileUpload) (string, error) {
	if up.Size > f.maxBytes {
		return "", ErrFileTooLarge
	}

	name := storage.NewName(prefix, up.Filename)
	// Guard against a client understating Size.
	body := io.LimitReader(up.Body, f.maxBytes+1)
	if err := f.store.Save(ctx, name, &limitCheck{r: body, max: f.maxBytes}, up.Size, up.ContentType); err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return "", ErrFileTooLarge
		}
		return "", fmt.Errorf("save file: %w", err)
	}
	return name, nil
}

// discard removes a file whose database record could not be written.
func (f fileSaver) discard(ctx context.Context, name string) {
	if err := f.store.Delete(ctx, name); err != nil {
		f.log.Warn().Err(err).Str("file", name).Msg("Failed to remove orphaned upload")
	}
}

// limitCheck fails the read once more than max bytes have passed through.
type limitCheck struct {
	r   io.Reader
	max int64
	n   int64
}

func (l *limitCheck) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		return n, ErrFileTooLarge
	}
	return n, err
}
