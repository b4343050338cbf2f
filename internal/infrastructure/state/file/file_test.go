package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdesk/client-go/internal/core/domain"
)

func TestStore_SetGetRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "access_token"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent key, got %v", err)
	}

	if err := store.Set(ctx, "access_token", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "access_token")
	if err != nil || got != "tok" {
		t.Fatalf("expected tok, got %q err=%v", got, err)
	}

	if err := store.Remove(ctx, "access_token"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "access_token"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestStore_RemoveAbsentKeyIsNoop(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Remove(context.Background(), "never_set"); err != nil {
		t.Fatalf("remove of absent key must succeed, got %v", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := first.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}

	second, err := NewStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Get(ctx, "theme")
	if err != nil || got != "dark" {
		t.Fatalf("expected dark after reopen, got %q err=%v", got, err)
	}
}

func TestStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "taskdesk")

	if _, err := NewStore(dir); err != nil {
		t.Fatalf("new store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected state dir created, err=%v", err)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Set(context.Background(), "access_token", "secret"); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 state file, got %o", perm)
	}
}
