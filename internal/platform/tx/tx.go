package tx

import (
	"context"
	"sync"
)

// Manager wraps the critical section around a read-modify-persist sequence.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// MutexManager runs one fn at a time. It is not reentrant.
type MutexManager struct {
	mu sync.Mutex
}

func NewMutexManager() *MutexManager {
	return &MutexManager{}
}

func (m *MutexManager) Within(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
