package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newTestStorage(t))
	ctx := context.Background()

	user, err := a.Register(ctx, "alice", "alice@example.com", "Alice A", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if user.Currency != "USD" {
		t.Fatalf("default currency = %q, want USD", user.Currency)
	}

	got, err := a.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated wrong user: %s", got.ID)
	}
	if got.LastLogin == nil {
		t.Fatal("last login not stamped")
	}

	if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	a := NewPasswordAuthenticator(newTestStorage(t))
	ctx := context.Background()

	if _, err := a.Register(ctx, "bob", "bob@example.com", "Bob B", "password1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := a.Register(ctx, "bob2", "bob@example.com", "Bob B", "password1"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate email: got %v, want ErrUserExists", err)
	}
	if _, err := a.Register(ctx, "bob", "other@example.com", "Bob B", "password1"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate username: got %v, want ErrUserExists", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	a := NewPasswordAuthenticator(newTestStorage(t))
	if _, err := a.Register(context.Background(), "carol", "carol@example.com", "Carol C", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("got %v, want ErrWeakPassword", err)
	}
}

func TestChangePassword(t *testing.T) {
	a := NewPasswordAuthenticator(newTestStorage(t))
	ctx := context.Background()

	user, err := a.Register(ctx, "dave", "dave@example.com", "Dave D", "original-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := a.ChangePassword(ctx, user.ID, "wrong", "brand-new-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password: got %v, want ErrInvalidCredentials", err)
	}
	if err := a.ChangePassword(ctx, user.ID, "original-pass", "brand-new-pass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := a.Authenticate(ctx, "dave@example.com", "brand-new-pass"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := a.Authenticate(ctx, "dave@example.com", "original-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still works: %v", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	a := NewPasswordAuthenticator(newTestStorage(t))
	ctx := context.Background()

	user, err := a.Register(ctx, "erin", "erin@example.com", "Erin E", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	mgr := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	token, err := mgr.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := mgr.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, err := mgr.Validate(token + "tampered"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token: got %v, want ErrInvalidToken", err)
	}

	other := NewJWTManager("a-completely-different-secret!!!", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong key: got %v, want ErrInvalidToken", err)
	}
}

func TestExpiredToken(t *testing.T) {
	a := NewPasswordAuthenticator(newTestStorage(t))
	user, err := a.Register(context.Background(), "finn", "finn@example.com", "Finn F", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	mgr := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Minute)
	token, err := mgr.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := mgr.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: got %v, want ErrInvalidToken", err)
	}
}
