package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/cryptox"
	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/server/models"
	entriesrepo "github.com/dmitrijs2005/photojournal/internal/server/repositories/entries"
	usersrepo "github.com/dmitrijs2005/photojournal/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// cheapHashing swaps the argon2 cost for something fast enough for unit tests.
func cheapHashing(t *testing.T) {
	t.Helper()
	orig := hashPassword
	hashPassword = func(p string) (string, error) {
		return cryptox.HashPasswordWithParams(p, cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	}
	t.Cleanup(func() { hashPassword = orig })
}

// memUsers is an in-memory users.Repository.
type memUsers struct {
	mu     sync.Mutex
	byName map[string]*models.User
	nextID int64

	createErr error
	getErr    error
	lookups   int
}

func newMemUsers() *memUsers { return &memUsers{byName: map[string]*models.User{}} }

func (m *memUsers) Create(_ context.Context, username, hashed string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.byName[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m.nextID++
	u := &models.User{ID: m.nextID, Username: username, HashedPassword: hashed, CreatedAt: time.Now()}
	m.byName[username] = u
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// memEntries is an in-memory entries.Repository honoring owner scoping.
type memEntries struct {
	mu     sync.Mutex
	rows   map[int64]models.Entry
	nextID int64
	calls  int
	err    error
}

func newMemEntries() *memEntries { return &memEntries{rows: map[int64]models.Entry{}} }

func (m *memEntries) ListByUser(_ context.Context, userID int64) ([]*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.Entry, 0)
	for _, e := range m.rows {
		if e.UserID == userID {
			cp := e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEntries) GetByID(_ context.Context, userID, entryID int64) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.rows[entryID]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}

func (m *memEntries) Create(_ context.Context, entry *models.Entry) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	e := *entry
	e.ID = m.nextID
	m.rows[e.ID] = e
	return &e, nil
}

func (m *memEntries) Update(_ context.Context, entry *models.Entry) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	cur, ok := m.rows[entry.ID]
	if !ok || cur.UserID != entry.UserID {
		return nil, common.ErrorNotFound
	}
	e := *entry
	m.rows[e.ID] = e
	return &e, nil
}

func (m *memEntries) Delete(_ context.Context, userID, entryID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	cur, ok := m.rows[entryID]
	if !ok || cur.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.rows, entryID)
	return nil
}

type fakeRepoManager struct {
	u *memUsers
	e *memEntries
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *fakeRepoManager) Entries(dbx.DBTX) entriesrepo.Repository      { return m.e }
