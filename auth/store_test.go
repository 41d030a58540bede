package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestBoltStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token() on empty store error = %v, want ErrNoToken", err)
	}

	if err := store.SetToken(ctx, "bearer-abc123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "bearer-abc123" {
		t.Errorf("Token() = %q, want bearer-abc123", token)
	}

	if err := store.DeleteToken(ctx); err != nil {
		t.Fatalf("DeleteToken() error = %v", err)
	}
	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() after delete error = %v, want ErrNoToken", err)
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	if err := store.SetToken(ctx, "persisted-token"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	token, err := reopened.Token(ctx)
	if err != nil {
		t.Fatalf("Token() after reopen error = %v", err)
	}
	if token != "persisted-token" {
		t.Errorf("Token() after reopen = %q, want persisted-token", token)
	}
}

func TestBoltStore_RejectsBadInput(t *testing.T) {
	if _, err := OpenBoltStore("  "); err == nil {
		t.Error("OpenBoltStore() with blank path should fail")
	}

	path := filepath.Join(t.TempDir(), "session.db")
	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	defer store.Close()

	if err := store.SetToken(context.Background(), "   "); err == nil {
		t.Error("SetToken() with blank token should fail")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token() on empty store error = %v, want ErrNoToken", err)
	}

	if err := store.SetToken(ctx, "tok-1"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	token, err := store.Token(ctx)
	if err != nil || token != "tok-1" {
		t.Fatalf("Token() = %q, %v; want tok-1, nil", token, err)
	}

	if err := store.DeleteToken(ctx); err != nil {
		t.Fatalf("DeleteToken() error = %v", err)
	}
	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() after delete error = %v, want ErrNoToken", err)
	}
}

func TestSourceFromStore_EmptyMeansAnonymous(t *testing.T) {
	source := SourceFromStore(NewMemoryStore())

	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v, want nil for empty store", err)
	}
	if token != "" {
		t.Errorf("Token() = %q, want empty string", token)
	}
}

func TestSourceFromStore_ReadsLatestToken(t *testing.T) {
	store := NewMemoryStore()
	source := SourceFromStore(store)
	ctx := context.Background()

	if err := store.SetToken(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if token, _ := source.Token(ctx); token != "first" {
		t.Errorf("Token() = %q, want first", token)
	}

	if err := store.SetToken(ctx, "second"); err != nil {
		t.Fatal(err)
	}
	if token, _ := source.Token(ctx); token != "second" {
		t.Errorf("Token() = %q, want second after store update", token)
	}
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("fixed").Token(context.Background())
	if err != nil || token != "fixed" {
		t.Errorf("Token() = %q, %v; want fixed, nil", token, err)
	}
}
