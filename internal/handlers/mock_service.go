package handlers

import (
	"context"
	"net/http"
	"sync"

	"book_tracker/internal/auth"
	"book_tracker/internal/models"
	"book_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAccounts struct {
	registerRes *service.AuthResult
	registerErr error
	loginRes    *service.AuthResult
	loginErr    error
	getUser     *models.User
	getUserErr  error
	parseClaim  *models.IdentityClaim
	parseErr    error

	lastRegister  service.RegisterParams
	lastLogin     service.LoginParams
	lastLookup    service.UserLookup
	lastLookupCtx context.Context
	lastParse     string
}

func (m *mockAccounts) Register(ctx context.Context, p service.RegisterParams) (*service.AuthResult, error) {
	m.lastRegister = p
	return m.registerRes, m.registerErr
}

func (m *mockAccounts) Login(ctx context.Context, p service.LoginParams) (*service.AuthResult, error) {
	m.lastLogin = p
	return m.loginRes, m.loginErr
}

func (m *mockAccounts) GetUser(ctx context.Context, l service.UserLookup) (*models.User, error) {
	m.lastLookup = l
	m.lastLookupCtx = ctx
	return m.getUser, m.getUserErr
}

func (m *mockAccounts) Me(ctx context.Context) (*models.User, error) {
	if _, ok := auth.IdentityFromContext(ctx); !ok {
		return nil, service.ErrNotLoggedIn
	}
	return m.getUser, m.getUserErr
}

func (m *mockAccounts) ParseToken(token string) (*models.IdentityClaim, error) {
	m.lastParse = token
	return m.parseClaim, m.parseErr
}

type mockLibrary struct {
	user *models.User
	err  error

	saveCalls   int
	removeCalls int
	lastBook    models.SavedBook
	lastBookID  string
	lastUserID  string
}

func (m *mockLibrary) SaveBook(ctx context.Context, b models.SavedBook) (*models.User, error) {
	m.saveCalls++
	m.lastBook = b
	return m.mutate(ctx)
}

func (m *mockLibrary) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	m.removeCalls++
	m.lastBookID = bookID
	return m.mutate(ctx)
}

func (m *mockLibrary) mutate(ctx context.Context) (*models.User, error) {
	claim, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, service.ErrNotLoggedIn
	}
	m.lastUserID = claim.UserID
	return m.user, m.err
}

type mockUpdates struct {
	mu   sync.Mutex
	subs map[string]chan *models.User
}

func newMockUpdates() *mockUpdates {
	return &mockUpdates{subs: make(map[string]chan *models.User)}
}

func (m *mockUpdates) Subscribe(userID string) (<-chan *models.User, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *models.User, 1)
	m.subs[userID] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, userID)
	}
}

func (m *mockUpdates) push(userID string, u *models.User) bool {
	m.mu.Lock()
	ch, ok := m.subs[userID]
	m.mu.Unlock()
	if ok {
		ch <- u
	}
	return ok
}

// ---- Shared Test Helpers ----

var testClaim = &models.IdentityClaim{UserID: "u1", Username: "alice", Email: "alice@example.com"}

func testUser() *models.User {
	return &models.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		SavedBooks:   []models.SavedBook{{BookID: "b1", Title: "Dune", Authors: []string{"Frank Herbert"}}},
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
