// Package jsonfile stores the address book as one JSON document on disk.
package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/adapted"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// Store reads and writes the document at a fixed path. Saves replace the
// file atomically; the old file is untouched until the new one is durable.
type Store struct {
	path string
	log  *logger.Logger

	// lastFingerprint is the digest of the document last read or written.
	lastFingerprint string
}

// NewStore creates a store for path.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path: path,
		log:  log.With(logger.Component("jsonfile"), logger.StoreLocation(path)),
	}
}

// Location returns the file path.
func (s *Store) Location() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save.
func (s *Store) Close() error {
	return nil
}

// Load reads and validates the document.
func (s *Store) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, shared.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", s.path, err)
	}

	doc, err := adapted.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: %s: %w", s.path, err)
	}
	book, err := doc.ToModel()
	if err != nil {
		s.log.Warn("stored address book is invalid", logger.Err(err))
		return nil, fmt.Errorf("jsonfile: %s: %w", s.path, err)
	}

	if fp, err := doc.Fingerprint(); err == nil {
		s.lastFingerprint = fp
	}
	s.log.Debug("address book loaded",
		logger.Int("persons", book.PersonCount()),
		logger.Int("lessons", book.LessonCount()))
	return book, nil
}

// Save writes the document. Unchanged content is not rewritten.
func (s *Store) Save(ctx context.Context, book *addressbook.AddressBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := adapted.FromModel(book)
	fp, err := doc.Fingerprint()
	if err != nil {
		return fmt.Errorf("jsonfile: fingerprint: %w", err)
	}
	if fp == s.lastFingerprint {
		if _, err := os.Stat(s.path); err == nil {
			s.log.Debug("address book unchanged, skipping write")
			return nil
		}
	}

	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", s.path, err)
	}

	s.lastFingerprint = fp
	s.log.Info("address book saved",
		logger.Int("persons", book.PersonCount()),
		logger.Int("lessons", book.LessonCount()))
	return nil
}

// writeFileAtomic writes data to a temp file in the same directory, syncs it,
// and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
