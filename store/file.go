package store

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/pkg"
)

// File is a [Store] backed by a document on disk. Every change rewrites the
// whole document by renaming a temporary file over it, so readers never see
// a partial write.
type File struct {
	mu     sync.RWMutex
	path   string
	format Format
	data   map[string]string
}

// Open loads the store at path, encoded in the format implied by its
// extension. A missing file yields an empty store; the file and its parent
// directories are created on the first write.
func Open(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	return OpenFormat(path, format)
}

// OpenFormat is like [Open] with an explicit format.
func OpenFormat(path string, format Format) (*File, error) {
	f := &File{path: path, format: format, data: make(map[string]string)}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("preference store not found", slog.String("path", path))

		return f, nil
	}

	if err != nil {
		return nil, pkg.ErrReadStore.Wrap(err)
	}

	data, err := format.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, pkg.ErrReadStore.Wrap(err)
	}

	f.data = data

	log.Debug("loaded preference store",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("keys", len(data)))

	return f, nil
}

// Path returns the location of the backing document.
func (f *File) Path() string { return f.path }

// Format returns the encoding of the backing document.
func (f *File) Format() Format { return f.format }

func (f *File) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.data[key]

	return v, ok
}

func (f *File) Put(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = value

	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}

		return err
	}

	return nil
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	if !had {
		return nil
	}

	delete(f.data, key)

	if err := f.flush(); err != nil {
		f.data[key] = prev

		return err
	}

	return nil
}

func (f *File) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return slices.Sorted(maps.Keys(f.data))
}

// flush writes the document. The caller holds f.mu.
func (f *File) flush() error {
	var buf bytes.Buffer

	if err := f.format.Encode(context.Background(), &buf, f.data); err != nil {
		return pkg.ErrWriteStore.Wrap(err)
	}

	dir := filepath.Dir(f.path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkg.ErrWriteStore.Wrap(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return pkg.ErrWriteStore.Wrap(err)
	}

	name := tmp.Name()

	_, err = buf.WriteTo(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err == nil {
		err = os.Rename(name, f.path)
	}

	if err != nil {
		_ = os.Remove(name)

		return pkg.ErrWriteStore.Wrap(err)
	}

	log.Trace("wrote preference store",
		slog.String("path", f.path),
		slog.Int("keys", len(f.data)))

	return nil
}
