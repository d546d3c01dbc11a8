package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"book_tracker/internal/auth"
	"book_tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// countingIssuer records how often a token was issued.
type countingIssuer struct {
	*auth.TokenService
	issued int
}

func (c *countingIssuer) Issue(claim models.IdentityClaim) (string, error) {
	c.issued++
	return c.TokenService.Issue(claim)
}

func newTestAccounts(t *testing.T) (*AccountService, *memStore, *countingIssuer) {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	hasher, err := auth.NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	store := newMemStore()
	issuer := &countingIssuer{TokenService: tokens}
	return NewAccountService(store, issuer, hasher), store, issuer
}

func register(t *testing.T, svc *AccountService, username string) *AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), RegisterParams{
		Username: username,
		Email:    username + "@example.com",
		Password: "letmein",
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return res
}

// --- Register tests ---

func TestAccountService_Register_HashesAndIssuesToken(t *testing.T) {
	svc, store, _ := newTestAccounts(t)

	res := register(t, svc, "alice")

	stored, _ := store.FindByID(context.Background(), res.User.ID)
	if stored.PasswordHash == "letmein" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("letmein")) != nil {
		t.Fatalf("stored hash does not verify with original password")
	}

	claim, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claim.UserID != res.User.ID || claim.Username != "alice" {
		t.Fatalf("unexpected claim %+v for user %+v", claim, res.User)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAccounts(t)
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), RegisterParams{Username: "alice", Email: "x@example.com", Password: "pw"})
	if !errors.Is(err, ErrDuplicateUser) || KindOf(err) != KindValidation {
		t.Fatalf("expected ErrDuplicateUser/KindValidation, got %v", err)
	}
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	svc, store, _ := newTestAccounts(t)

	cases := []RegisterParams{
		{Username: "", Email: "a@example.com", Password: "pw"},
		{Username: "a", Email: "  ", Password: "pw"},
		{Username: "a", Email: "a@example.com", Password: "   "},
		{Username: "a", Email: "a@example.com", Password: strings.Repeat("x", auth.MaxPasswordBytes+1)},
	}
	for _, p := range cases {
		if _, err := svc.Register(context.Background(), p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%+v): expected ErrInvalidInput, got %v", p, err)
		}
	}
	if store.callCount() != 0 {
		t.Fatalf("store must not be called for invalid input, got %d calls", store.callCount())
	}
}

// --- Login tests ---

func TestAccountService_Login_ByUsernameOrEmail(t *testing.T) {
	svc, _, _ := newTestAccounts(t)
	reg := register(t, svc, "bob")

	for _, p := range []LoginParams{
		{Username: "bob", Password: "letmein"},
		{Email: "bob@example.com", Password: "letmein"},
	} {
		res, err := svc.Login(context.Background(), p)
		if err != nil {
			t.Fatalf("Login(%+v): %v", p, err)
		}
		claim, err := svc.ParseToken(res.Token)
		if err != nil {
			t.Fatalf("ParseToken: %v", err)
		}
		if claim.UserID != reg.User.ID {
			t.Fatalf("claim user %q, want %q", claim.UserID, reg.User.ID)
		}
	}
}

func TestAccountService_Login_WrongPasswordIssuesNoToken(t *testing.T) {
	svc, _, issuer := newTestAccounts(t)
	register(t, svc, "carol")
	issuedAfterRegister := issuer.issued

	res, err := svc.Login(context.Background(), LoginParams{Email: "carol@example.com", Password: "nope"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if KindOf(err) != KindAuthentication {
		t.Fatalf("expected KindAuthentication, got %v", KindOf(err))
	}
	if res != nil {
		t.Fatalf("expected no result, got %+v", res)
	}
	if issuer.issued != issuedAfterRegister {
		t.Fatalf("a token was issued for a wrong password")
	}
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newTestAccounts(t)

	_, err := svc.Login(context.Background(), LoginParams{Username: "ghost", Password: "pw"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_Login_StoreError(t *testing.T) {
	svc, store, _ := newTestAccounts(t)
	store.err = errors.New("connection reset")

	_, err := svc.Login(context.Background(), LoginParams{Username: "dave", Password: "pw"})
	if err == nil || KindOf(err) != KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

// --- lookup tests ---

func TestAccountService_GetUser(t *testing.T) {
	svc, _, _ := newTestAccounts(t)
	alice := register(t, svc, "alice").User
	bob := register(t, svc, "bob").User
	ctx := context.Background()

	u, err := svc.GetUser(ctx, UserLookup{Username: "bob"})
	if err != nil || u.ID != bob.ID {
		t.Fatalf("lookup by username: %+v, %v", u, err)
	}

	// identity wins over the path parameter
	asAlice := auth.WithIdentity(ctx, &models.IdentityClaim{UserID: alice.ID})
	u, err = svc.GetUser(asAlice, UserLookup{Username: "bob"})
	if err != nil || u.ID != alice.ID {
		t.Fatalf("lookup by identity: %+v, %v", u, err)
	}

	if _, err := svc.GetUser(ctx, UserLookup{ID: "nope", Username: "nobody"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_Me_RequiresIdentity(t *testing.T) {
	svc, store, _ := newTestAccounts(t)

	_, err := svc.Me(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if store.callCount() != 0 {
		t.Fatalf("store must not be reached without identity")
	}
}

func TestKindOf(t *testing.T) {
	cases := map[error]Kind{
		ErrUserNotFound:             KindNotFound,
		ErrWrongPassword:            KindAuthentication,
		ErrNotLoggedIn:              KindAuthentication,
		ErrDuplicateUser:            KindValidation,
		invalidInput("bookId"):      KindValidation,
		errors.New("socket closed"): KindInternal,
		auth.ErrTokenExpired:        KindInternal,
	}
	for err, want := range cases {
		if got := KindOf(err); got != want {
			t.Errorf("KindOf(%v) = %v, want %v", err, got, want)
		}
	}
}
