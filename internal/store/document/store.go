package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

// ErrCorrupt is returned by strict reads when the backing file exists but
// cannot be parsed as a document.
var ErrCorrupt = errors.New("document is corrupt")

// Store persists the whole application state as one JSON file.
//
// All reads and writes go through a single mutex, so a read-modify-write
// performed with Update can never interleave with another one in this
// process. Writes go to a temp file in the same directory and are renamed
// over the target, so readers never observe a partial document.
type Store struct {
	path   string
	logger logger.Logger
	mu     sync.Mutex
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, log logger.Logger) *Store {
	return &Store{
		path:   path,
		logger: log,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current document. It never fails:
//   - missing file: the default document is written and returned
//   - unreadable or corrupt file: defaults are returned, the file is left alone
func (s *Store) Load() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked()
	switch {
	case err == nil:
		return doc
	case errors.Is(err, fs.ErrNotExist):
		doc = domain.NewDocument()
		if werr := s.writeLocked(doc); werr != nil {
			s.logger.Error("failed to bootstrap default document",
				logger.String("path", s.path),
				logger.Error(werr))
		} else {
			s.logger.Info("bootstrapped default document",
				logger.String("path", s.path))
		}
		return doc
	default:
		s.logger.Warn("document unreadable, serving defaults without overwriting",
			logger.String("path", s.path),
			logger.Error(err))
		return domain.NewDocument()
	}
}

// Save replaces the backing file with doc. Missing sections are written
// as empty lists.
func (s *Store) Save(doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(doc)
}

// Update runs a read-modify-write cycle under the store lock. fn receives
// the current document (defaults if the file does not exist yet) and may
// mutate it; the result is saved unless fn returns an error.
//
// A corrupt backing file aborts the update with domain.ErrStorage rather
// than silently replacing it with defaults.
func (s *Store) Update(fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("refusing to update unreadable document",
				logger.String("path", s.path),
				logger.Error(err))
			return fmt.Errorf("%w: %v", domain.ErrStorage, err)
		}
		doc = domain.NewDocument()
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.writeLocked(doc)
}

// Readable reports whether the backing file can currently be parsed.
// A missing file counts as readable since Load will bootstrap it.
func (s *Store) Readable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.readLocked()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) readLocked() (*domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := doc.Sections.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	doc.Normalize()
	return &doc, nil
}

func (s *Store) writeLocked(doc *domain.Document) error {
	doc.Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: failed to encode document: %v", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", domain.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, buf.Bytes()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write document: %v", domain.ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace document: %v", domain.ErrStorage, err)
	}

	return nil
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
