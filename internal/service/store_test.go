package service

import (
	"context"
	"strconv"
	"sync"

	"book_tracker/internal/models"
	"book_tracker/internal/repository"
)

// memStore is an in-test UserStore whose book mutations are atomic per call,
// matching the guarantees of the real stores.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int
	calls  int

	err error // returned by every call when set
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	c.SavedBooks = append([]models.SavedBook{}, u.SavedBooks...)
	return &c
}

func (m *memStore) enter() (func(), error) {
	m.mu.Lock()
	m.calls++
	return m.mu.Unlock, m.err
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memStore) Create(_ context.Context, u *models.User) error {
	unlock, err := m.enter()
	defer unlock()
	if err != nil {
		return err
	}
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicateUser
		}
	}
	m.nextID++
	u.ID = "u" + strconv.Itoa(m.nextID)
	u.SavedBooks = []models.SavedBook{}
	m.users[u.ID] = cloneUser(u)
	return nil
}

func (m *memStore) find(match func(*models.User) bool) (*models.User, error) {
	unlock, err := m.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *memStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

func (m *memStore) FindByLogin(_ context.Context, username, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool {
		return (username != "" && u.Username == username) || (email != "" && u.Email == email)
	})
}

func (m *memStore) AddBook(_ context.Context, userID string, book models.SavedBook) (*models.User, error) {
	unlock, err := m.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	if !u.HasBook(book.BookID) {
		u.SavedBooks = append(u.SavedBooks, book)
	}
	return cloneUser(u), nil
}

func (m *memStore) RemoveBook(_ context.Context, userID, bookID string) (*models.User, error) {
	unlock, err := m.enter()
	defer unlock()
	if err != nil {
		return nil, err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	kept := u.SavedBooks[:0]
	for _, b := range u.SavedBooks {
		if b.BookID != bookID {
			kept = append(kept, b)
		}
	}
	u.SavedBooks = kept
	return cloneUser(u), nil
}

func (m *memStore) deleteUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}
