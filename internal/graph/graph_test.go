package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"book_tracker/internal/auth"
	"book_tracker/internal/models"
	"book_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	register func(service.RegisterParams) (*service.AuthResult, error)
	login    func(service.LoginParams) (*service.AuthResult, error)
	me       func(ctx context.Context) (*models.User, error)

	loginCalls int
}

func (f *fakeAccounts) Register(_ context.Context, p service.RegisterParams) (*service.AuthResult, error) {
	return f.register(p)
}

func (f *fakeAccounts) Login(_ context.Context, p service.LoginParams) (*service.AuthResult, error) {
	f.loginCalls++
	return f.login(p)
}

func (f *fakeAccounts) GetUser(context.Context, service.UserLookup) (*models.User, error) {
	return nil, errors.New("not used")
}

func (f *fakeAccounts) Me(ctx context.Context) (*models.User, error) { return f.me(ctx) }

func (f *fakeAccounts) ParseToken(string) (*models.IdentityClaim, error) {
	return nil, errors.New("not used")
}

type fakeLibrary struct {
	save   func(ctx context.Context, b models.SavedBook) (*models.User, error)
	remove func(ctx context.Context, bookID string) (*models.User, error)

	saved []models.SavedBook
}

func (f *fakeLibrary) SaveBook(ctx context.Context, b models.SavedBook) (*models.User, error) {
	f.saved = append(f.saved, b)
	return f.save(ctx, b)
}

func (f *fakeLibrary) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	return f.remove(ctx, bookID)
}

func alice() *models.User {
	return &models.User{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@example.com",
		SavedBooks: []models.SavedBook{
			{BookID: "b1", Title: "Dune", Authors: []string{"Frank Herbert"}},
		},
	}
}

func withAlice(ctx context.Context) context.Context {
	return auth.WithIdentity(ctx, &models.IdentityClaim{UserID: "u1", Username: "alice", Email: "alice@example.com"})
}

func newTestHandler(acc *fakeAccounts, lib *fakeLibrary) *Handler {
	return NewHandler(&service.Service{Accounts: acc, Library: lib}, nil)
}

func errorCode(t *testing.T, res *graphql.Result) string {
	t.Helper()
	require.Len(t, res.Errors, 1)
	code, _ := res.Errors[0].Extensions["code"].(string)
	return code
}

func TestLogin_WrongPasswordIsUnauthenticated(t *testing.T) {
	acc := &fakeAccounts{login: func(service.LoginParams) (*service.AuthResult, error) {
		return nil, service.ErrWrongPassword
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(),
		`mutation { login(email: "alice@example.com", password: "nope") { token } }`, "", nil)

	assert.Equal(t, CodeUnauthenticated, errorCode(t, res))
	assert.Equal(t, "Incorrect password", res.Errors[0].Message)
	data, _ := res.Data.(map[string]interface{})
	assert.Nil(t, data["login"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	acc := &fakeAccounts{login: func(p service.LoginParams) (*service.AuthResult, error) {
		assert.Empty(t, p.Username)
		assert.Equal(t, "ghost@example.com", p.Email)
		return nil, service.ErrUserNotFound
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(),
		`mutation { login(email: "ghost@example.com", password: "pw") { token } }`, "", nil)

	assert.Equal(t, CodeUnauthenticated, errorCode(t, res))
	assert.Equal(t, "Incorrect email", res.Errors[0].Message)
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	acc := &fakeAccounts{login: func(service.LoginParams) (*service.AuthResult, error) {
		return &service.AuthResult{Token: "tok", User: alice()}, nil
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(),
		`mutation { login(email: "alice@example.com", password: "pw") { token user { _id username bookCount } } }`, "", nil)

	require.Empty(t, res.Errors)
	login := res.Data.(map[string]interface{})["login"].(map[string]interface{})
	assert.Equal(t, "tok", login["token"])
	user := login["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["_id"])
	assert.Equal(t, "alice", user["username"])
	assert.EqualValues(t, 1, user["bookCount"])
}

func TestLogin_EmptyPasswordIsBadInput(t *testing.T) {
	acc := &fakeAccounts{}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(),
		`mutation { login(email: "alice@example.com", password: "") { token } }`, "", nil)

	assert.Equal(t, CodeBadUserInput, errorCode(t, res))
	assert.Zero(t, acc.loginCalls)
}

func TestAddUser_Duplicate(t *testing.T) {
	acc := &fakeAccounts{register: func(service.RegisterParams) (*service.AuthResult, error) {
		return nil, service.ErrDuplicateUser
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(),
		`mutation { addUser(username: "alice", email: "alice@example.com", password: "pw") { token } }`, "", nil)

	assert.Equal(t, CodeBadUserInput, errorCode(t, res))
}

func TestAddUser_InvalidEmail(t *testing.T) {
	acc := &fakeAccounts{register: func(service.RegisterParams) (*service.AuthResult, error) {
		t.Fatal("register must not be called")
		return nil, nil
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(),
		`mutation { addUser(username: "alice", email: "not-an-email", password: "pw") { token } }`, "", nil)

	assert.Equal(t, CodeBadUserInput, errorCode(t, res))
	assert.Contains(t, res.Errors[0].Message, "email")
}

func TestAddUser_PasswordOverBcryptLimit(t *testing.T) {
	acc := &fakeAccounts{register: func(service.RegisterParams) (*service.AuthResult, error) {
		t.Fatal("register must not be called")
		return nil, nil
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	vars := map[string]interface{}{"password": strings.Repeat("p", 73)}
	res := h.Execute(context.Background(),
		`mutation Add($password: String!) { addUser(username: "alice", email: "alice@example.com", password: $password) { token } }`,
		"Add", vars)

	assert.Equal(t, CodeBadUserInput, errorCode(t, res))
	assert.Contains(t, res.Errors[0].Message, "password")
}

func TestMe_Unauthenticated(t *testing.T) {
	acc := &fakeAccounts{me: func(context.Context) (*models.User, error) {
		return nil, service.ErrNotLoggedIn
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(context.Background(), `{ me { _id } }`, "", nil)

	assert.Equal(t, CodeUnauthenticated, errorCode(t, res))
	assert.Equal(t, "Not logged in", res.Errors[0].Message)
}

func TestMe_SeesIdentityFromContext(t *testing.T) {
	acc := &fakeAccounts{me: func(ctx context.Context) (*models.User, error) {
		claim, ok := auth.IdentityFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "u1", claim.UserID)
		return alice(), nil
	}}
	h := newTestHandler(acc, &fakeLibrary{})

	res := h.Execute(withAlice(context.Background()), `{ me { email savedBooks { bookId title authors } } }`, "", nil)

	require.Empty(t, res.Errors)
	me := res.Data.(map[string]interface{})["me"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", me["email"])
	books := me["savedBooks"].([]interface{})
	require.Len(t, books, 1)
	assert.Equal(t, "b1", books[0].(map[string]interface{})["bookId"])
}

func TestSaveBook_WithoutIdentity(t *testing.T) {
	lib := &fakeLibrary{save: func(context.Context, models.SavedBook) (*models.User, error) {
		return nil, service.ErrNotLoggedIn
	}}
	h := newTestHandler(&fakeAccounts{}, lib)

	res := h.Execute(context.Background(),
		`mutation { saveBook(bookId: "b2", title: "Emma") { _id } }`, "", nil)

	assert.Equal(t, CodeUnauthenticated, errorCode(t, res))
	assert.Equal(t, "You need to be logged in!", res.Errors[0].Message)
}

func TestSaveBook_PassesTypedInput(t *testing.T) {
	lib := &fakeLibrary{save: func(context.Context, models.SavedBook) (*models.User, error) {
		return alice(), nil
	}}
	h := newTestHandler(&fakeAccounts{}, lib)

	vars := map[string]interface{}{
		"authors": []interface{}{"Jane Austen"},
		"link":    "https://books.example.com/emma",
	}
	res := h.Execute(withAlice(context.Background()),
		`mutation Save($authors: [String], $link: String) {
			saveBook(bookId: "b2", title: "Emma", authors: $authors, link: $link) { bookCount }
		}`, "Save", vars)

	require.Empty(t, res.Errors)
	require.Len(t, lib.saved, 1)
	assert.Equal(t, models.SavedBook{
		BookID:  "b2",
		Title:   "Emma",
		Authors: []string{"Jane Austen"},
		Link:    "https://books.example.com/emma",
	}, lib.saved[0])
}

func TestSaveBook_InvalidLink(t *testing.T) {
	lib := &fakeLibrary{}
	h := newTestHandler(&fakeAccounts{}, lib)

	res := h.Execute(withAlice(context.Background()),
		`mutation { saveBook(bookId: "b2", title: "Emma", link: "not a url") { _id } }`, "", nil)

	assert.Equal(t, CodeBadUserInput, errorCode(t, res))
	assert.Empty(t, lib.saved)
}

func TestRemoveBook_UserVanished(t *testing.T) {
	lib := &fakeLibrary{remove: func(context.Context, string) (*models.User, error) {
		return nil, service.ErrUserNotFound
	}}
	h := newTestHandler(&fakeAccounts{}, lib)

	res := h.Execute(withAlice(context.Background()), `mutation { removeBook(bookId: "b1") { _id } }`, "", nil)

	assert.Equal(t, CodeNotFound, errorCode(t, res))
	assert.Equal(t, "Couldn't find user with this id!", res.Errors[0].Message)
}

func TestRemoveBook_StoreFailureIsHidden(t *testing.T) {
	lib := &fakeLibrary{remove: func(context.Context, string) (*models.User, error) {
		return nil, errors.New("remove book: connection reset")
	}}
	h := newTestHandler(&fakeAccounts{}, lib)

	res := h.Execute(withAlice(context.Background()), `mutation { removeBook(bookId: "b1") { _id } }`, "", nil)

	assert.Equal(t, CodeInternal, errorCode(t, res))
	assert.NotContains(t, res.Errors[0].Message, "connection reset")
}

func TestServe_HTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	acc := &fakeAccounts{me: func(context.Context) (*models.User, error) { return alice(), nil }}
	h := newTestHandler(acc, &fakeLibrary{})

	r := gin.New()
	r.POST("/graphql", h.Serve)
	r.GET("/graphql", h.Serve)

	t.Run("post", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"query": "{ me { username } }"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"me":{"username":"alice"}}}`, w.Body.String())
	})

	t.Run("get", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bme%7Busername%7D%7D", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"me":{"username":"alice"}}}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get mutation rejected", func(t *testing.T) {
		lib := &fakeLibrary{save: func(context.Context, models.SavedBook) (*models.User, error) {
			t.Fatal("mutation executed over GET")
			return nil, nil
		}}
		getRouter := gin.New()
		getRouter.GET("/graphql", newTestHandler(acc, lib).Serve)

		for _, q := range []string{
			`mutation { saveBook(bookId: "b2", title: "Emma") { _id } }`,
			`query Me { me { _id } } mutation Save { saveBook(bookId: "b2", title: "Emma") { _id } }`,
		} {
			u := "/graphql?" + url.Values{"query": {q}, "operationName": {operationFor(q)}}.Encode()
			w := httptest.NewRecorder()
			getRouter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, u, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Empty(t, lib.saved)
		}
	})

	t.Run("get named query beside a mutation", func(t *testing.T) {
		q := `query Me { me { username } } mutation Save { saveBook(bookId: "b2", title: "Emma") { _id } }`
		w := httptest.NewRecorder()
		u := "/graphql?" + url.Values{"query": {q}, "operationName": {"Me"}}.Encode()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, u, nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"me":{"username":"alice"}}}`, w.Body.String())
	})

	t.Run("missing query", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// operationFor names the mutation in multi-operation documents.
func operationFor(q string) string {
	if strings.Contains(q, "mutation Save") {
		return "Save"
	}
	return ""
}
