package session

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/classifieds/internal/client/repositories/state"
	"github.com/dmitrijs2005/classifieds/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Storage persists the session across process restarts. Save and Clear must
// write token and user together.
type Storage interface {
	// Load returns the persisted token and raw user JSON. Missing values are
	// returned empty, not as an error.
	Load(ctx context.Context) (token string, user []byte, err error)
	Save(ctx context.Context, token string, user []byte) error
	Clear(ctx context.Context) error
}

// SQLiteStorage keeps the session in the session_state table.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Load(ctx context.Context) (string, []byte, error) {
	var (
		token string
		user  []byte
	)
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		t, err := repo.Get(ctx, keyToken)
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, keyUser)
		if err != nil {
			return err
		}
		token, user = string(t), u
		return nil
	})
	return token, user, err
}

func (s *SQLiteStorage) Save(ctx context.Context, token string, user []byte) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, user)
	})
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return state.NewSQLiteRepository(tx).Delete(ctx, keyToken, keyUser)
	})
}

// MemoryStorage is a process-local Storage, mostly for tests.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
	user  []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(context.Context) (string, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, append([]byte(nil), m.user...), nil
}

func (m *MemoryStorage) Save(_ context.Context, token string, user []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.user = token, append([]byte(nil), user...)
	return nil
}

func (m *MemoryStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.user = "", nil
	return nil
}
