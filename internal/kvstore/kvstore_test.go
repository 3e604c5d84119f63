package kvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFile(dir, nil)

	if _, ok := store.Get(KeyCart); ok {
		t.Fatalf("expected miss on empty store")
	}

	store.Set(KeyCart, []byte(`[{"productId":"p1"}]`))
	got, ok := store.Get(KeyCart)
	if !ok || string(got) != `[{"productId":"p1"}]` {
		t.Fatalf("unexpected value: %q ok=%v", got, ok)
	}

	store.Clear(KeyCart)
	if _, ok := store.Get(KeyCart); ok {
		t.Fatalf("expected miss after clear")
	}
}

func TestFileDomainsAreSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFile(dir, nil)

	store.Set(KeyAuthToken, []byte("tok"))
	store.Set(KeyCart, []byte("[]"))

	if _, err := os.Stat(filepath.Join(dir, KeyAuthToken+".json")); err != nil {
		t.Fatalf("auth file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, KeyCart+".json")); err != nil {
		t.Fatalf("cart file missing: %v", err)
	}

	store.Clear(KeyAuthToken)
	if _, ok := store.Get(KeyCart); !ok {
		t.Fatalf("clearing auth must not touch cart")
	}
}

func TestFileClearMissingKeyIsNoop(t *testing.T) {
	store := NewFile(t.TempDir(), nil)
	store.Clear("never_set")
}

func TestFileSetSwallowsWriteErrors(t *testing.T) {
	// Point the store at a path that cannot be a directory.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewFile(filepath.Join(blocker, "sub"), nil)
	store.Set(KeyCart, []byte("[]"))
	if _, ok := store.Get(KeyCart); ok {
		t.Fatalf("expected miss after failed write")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	store := NewMemory()
	val := []byte("abc")
	store.Set(KeyCart, val)
	val[0] = 'x'

	got, ok := store.Get(KeyCart)
	if !ok || string(got) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}

	got[0] = 'y'
	again, _ := store.Get(KeyCart)
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}
