// Package store implements the file-backed versioned document store used as
// the local-first cache in front of the canonical database.
package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sas-admin/app/models"
)

// Store owns one JSON document on disk. All mutations go through Write so the
// version bump and the atomic rename cannot be bypassed. The mutex serializes
// read-mutate-write cycles within the process, closing the lost-update race
// between concurrent writers.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store persisting at path. The file is created lazily on
// first read or write.
func New(path string) *Store {
	return &Store{path: path}
}

// Read returns the current document. A missing file initializes an empty
// document at version 0 and persists it; an unparsable file falls back to a
// fresh empty document so a corrupt cache never takes the service down.
func (s *Store) Read() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Write applies mutate to a freshly-read copy of the document, bumps the
// version, stamps updatedAt and persists via temp-file-then-rename. A crash
// mid-write never leaves a partially-written document visible to readers.
func (s *Store) Write(mutate func(*models.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked()
	if err != nil {
		return err
	}
	prev := doc.Meta.Version
	mutate(doc)
	doc.Meta.Version = prev + 1
	doc.Meta.UpdatedAt = time.Now()
	return s.persistLocked(doc)
}

// Version returns the current version and update time without handing out
// the full document.
func (s *Store) Version() (models.Meta, error) {
	doc, err := s.Read()
	if err != nil {
		return models.Meta{}, err
	}
	return doc.Meta, nil
}

func (s *Store) readLocked() (*models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := models.NewDocument()
		if err := s.persistLocked(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	doc := &models.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		log.Printf("Document store at %s is unreadable, starting from an empty document: %v", s.path, err)
		return models.NewDocument(), nil
	}
	doc.EnsureCollections()
	return doc, nil
}

func (s *Store) persistLocked(doc *models.Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
