// Package service orchestrates ingestion and the analysis engines into
// review runs, and holds the in-memory dataset between requests.
package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"access-review/internal/domain"
)

// Dataset is one uploaded export held in memory for the duration of the
// process. Nothing is persisted; an upload replaces the previous dataset.
type Dataset struct {
	ID         string                `json:"id"`
	Source     string                `json:"source"`
	UploadedAt time.Time             `json:"uploaded_at"`
	Records    []domain.AccessRecord `json:"-"`
}

// DatasetStore guards the single current dataset.
type DatasetStore struct {
	mu      sync.RWMutex
	current *Dataset
}

// NewDatasetStore creates an empty store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Put replaces the current dataset and returns its descriptor.
func (s *DatasetStore) Put(source string, records []domain.AccessRecord) Dataset {
	ds := Dataset{
		ID:         uuid.NewString(),
		Source:     source,
		UploadedAt: time.Now().UTC(),
		Records:    records,
	}
	s.mu.Lock()
	s.current = &ds
	s.mu.Unlock()
	return ds
}

// Current returns the current dataset, if any.
func (s *DatasetStore) Current() (Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Dataset{}, false
	}
	return *s.current, true
}
