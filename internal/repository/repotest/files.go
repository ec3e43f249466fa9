package repotest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/edutrack/edutrack-backend/internal/storage"
)

// Files is an in-memory storage.Store.
type Files struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewFiles creates an empty file store.
func NewFiles() *Files {
	return &Files{files: make(map[string][]byte)}
}

func (f *Files) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = data
	return nil
}

func (f *Files) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *Files) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, name)
	return nil
}

// Names returns the stored file names.
func (f *Files) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	return names
}
