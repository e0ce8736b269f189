package rest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/server/models"
	entriesrepo "github.com/dmitrijs2005/photojournal/internal/server/repositories/entries"
	usersrepo "github.com/dmitrijs2005/photojournal/internal/server/repositories/users"
)

type memUsers struct {
	mu     sync.Mutex
	byName map[string]*models.User
	nextID int64
}

func (m *memUsers) Create(_ context.Context, username, hashed string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m.nextID++
	u := &models.User{ID: m.nextID, Username: username, HashedPassword: hashed, CreatedAt: time.Now().UTC()}
	m.byName[username] = u
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type memEntries struct {
	mu     sync.Mutex
	rows   map[int64]models.Entry
	nextID int64
	calls  int
	err    error
}

func (m *memEntries) hit() error {
	m.calls++
	return m.err
}

func (m *memEntries) ListByUser(_ context.Context, userID int64) ([]*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit(); err != nil {
		return nil, err
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
	if err := m.hit(); err != nil {
		return nil, err
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
	if err := m.hit(); err != nil {
		return nil, err
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
	if err := m.hit(); err != nil {
		return nil, err
	}
	cur, ok := m.rows[entry.ID]
	if !ok || cur.UserID != entry.UserID {
		return nil, common.ErrorNotFound
	}
	m.rows[entry.ID] = *entry
	e := *entry
	return &e, nil
}

func (m *memEntries) Delete(_ context.Context, userID, entryID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit(); err != nil {
		return err
	}
	cur, ok := m.rows[entryID]
	if !ok || cur.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.rows, entryID)
	return nil
}

type memRepoManager struct {
	users   *memUsers
	entries *memEntries
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		users:   &memUsers{byName: map[string]*models.User{}},
		entries: &memEntries{rows: map[int64]models.Entry{}},
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *memRepoManager) Entries(dbx.DBTX) entriesrepo.Repository      { return m.entries }

type fakePhotos struct {
	err error
}

func (f *fakePhotos) NewUploadURL(_ context.Context, userID int64) (*models.PhotoUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PhotoUpload{
		UploadURL: "http://minio/photos/users/1/k?sig=x",
		PhotoURL:  "http://minio/photos/users/1/k",
		Key:       "users/1/k",
	}, nil
}
