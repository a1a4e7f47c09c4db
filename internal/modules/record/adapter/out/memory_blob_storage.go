package out

import (
	"context"
	"sync"

	recordout "healthlog/internal/modules/record/port/out"
)

// MemoryBlobStorage keeps the document in process memory. Nothing survives a
// restart.
type MemoryBlobStorage struct {
	mu      sync.Mutex
	payload []byte
	stored  bool
	saves   int
	// FailSave, when set, is returned by Save instead of storing.
	FailSave error
}

var _ recordout.BlobStorage = (*MemoryBlobStorage)(nil)

func NewMemoryBlobStorage() *MemoryBlobStorage {
	return &MemoryBlobStorage{}
}

// NewSeededMemoryBlobStorage starts with payload already stored.
func NewSeededMemoryBlobStorage(payload []byte) *MemoryBlobStorage {
	return &MemoryBlobStorage{payload: append([]byte(nil), payload...), stored: true}
}

func (m *MemoryBlobStorage) Save(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.payload = append(m.payload[:0:0], payload...)
	m.stored = true
	m.saves++
	return nil
}

func (m *MemoryBlobStorage) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stored {
		return nil, false, nil
	}
	return append([]byte(nil), m.payload...), true, nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryBlobStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
