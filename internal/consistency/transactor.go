package consistency

import (
	"context"
	"sync"
)

// MutexTransactor is the in-process Transactor for the in-memory store
// implementations: a single writer lock stands in for the serializable
// transaction spec §5 requires, since there is no concurrent-writer
// store underneath to isolate from. A store-backed Transactor (e.g. the
// sqlite one) should instead open a real serializable transaction and
// run fn against it.
type MutexTransactor struct {
	mu sync.Mutex
}

// NewMutexTransactor creates a Transactor backed by a single mutex.
func NewMutexTransactor() *MutexTransactor {
	return &MutexTransactor{}
}

func (m *MutexTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
