package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain/models"
)

// Store is the shared in-memory state behind the memory repositories. All
// access must happen inside TxManager.RunTx, which holds the store mutex for
// the whole unit of work; the repositories themselves do not lock.
type Store struct {
	mu sync.Mutex

	users       map[uuid.UUID]*models.User
	profiles    map[uuid.UUID]*models.Profile
	preferences map[uuid.UUID]*models.Preference
	rooms       map[uuid.UUID]*models.Room
	members     map[uuid.UUID][]uuid.UUID
	reports     []*models.Report
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*models.User),
		profiles:    make(map[uuid.UUID]*models.Profile),
		preferences: make(map[uuid.UUID]*models.Preference),
		rooms:       make(map[uuid.UUID]*models.Room),
		members:     make(map[uuid.UUID][]uuid.UUID),
	}
}

// TxManager serializes units of work over the Store. Holding one mutex for
// the whole callback gives the same isolation the postgres TxManager gets
// from row locks.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	return fn(ctx)
}
