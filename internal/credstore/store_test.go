package credstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "creds"))
	want := Credentials{Email: "ana@hospitalcm.cl", Password: "s3creta"}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("Load reported nothing stored")
	}
	if got != want {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadWithoutSavedCredentials(t *testing.T) {
	store := NewStore(t.TempDir())
	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if ok {
		t.Fatalf("ok must be false when nothing is stored")
	}
}

func TestClearRemovesCredentials(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save(Credentials{Email: "a@b.cl", Password: "x"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("credentials survived Clear (ok=%v, err=%v)", ok, err)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestSealedFileIsOpaque(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save(Credentials{Email: "ana@hospitalcm.cl", Password: "s3creta"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "credentials.sealed"))
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if strings.Contains(string(raw), "s3creta") || strings.Contains(string(raw), "ana@hospitalcm.cl") {
		t.Fatalf("credentials stored in plaintext")
	}
}
