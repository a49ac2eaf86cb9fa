package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	tmpDir := t.TempDir()

	store := NewStore(tmpDir)
	if err := store.Load(); err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if store.Current().LoggedIn() {
		t.Error("fresh store must not be logged in")
	}

	sess := Session{Token: "tok-1", UserID: "7", UserEmail: "a@b.com"}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	expectedPath := filepath.Join(tmpDir, "session.json")
	info, err := os.Stat(expectedPath)
	if err != nil {
		t.Fatalf("expected session file at %s: %v", expectedPath, err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file permissions = %o, want 0600", perm)
	}

	// Reload through a second store
	second := NewStore(tmpDir)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := second.Current(); got != sess {
		t.Errorf("loaded session %+v, want %+v", got, sess)
	}
	if second.Token() != "tok-1" {
		t.Errorf("Token() = %q", second.Token())
	}

	// Clear removes memory and disk state
	if err := second.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if second.Current() != (Session{}) {
		t.Error("Clear did not reset the in-memory session")
	}
	if _, err := os.Stat(expectedPath); !os.IsNotExist(err) {
		t.Error("Clear did not remove the session file")
	}

	// Clearing twice is fine
	if err := second.Clear(); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := NewStore(tmpDir)
	if err := store.Load(); err == nil {
		t.Fatal("expected an error for a corrupt session file")
	}
	if store.Current().LoggedIn() {
		t.Error("corrupt file must not produce a logged-in session")
	}
}
