package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func testRecord() *Record {
	return &Record{
		Token: "tok-abc",
		User: &User{
			ID:       json.Number("42"),
			Username: "alice",
			Role:     1,
			Status:   1,
			Avatar:   "http://files.local/file/avatars/42/a.png",
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if rec, err := store.Load(ctx); err != nil || rec != nil {
		t.Fatalf("expected empty store, got rec=%v err=%v", rec, err)
	}

	if err := store.Save(ctx, testRecord()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !rec.IsLoggedIn() {
		t.Fatal("expected logged-in record")
	}
	if rec.User.Username != "alice" || rec.Token != "tok-abc" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if rec, _ := store.Load(ctx); rec != nil {
		t.Fatal("expected cleared store")
	}
}

func TestFileStorePurgesCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	store := NewFileStore(path)
	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load should self-heal, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected absent session, got %+v", rec)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("corrupt file should have been purged")
	}
}

func TestFileStoreClearIdempotent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}
}

func TestRecordIsLoggedIn(t *testing.T) {
	cases := []struct {
		name string
		rec  *Record
		want bool
	}{
		{"nil record", nil, false},
		{"empty", &Record{}, false},
		{"token only", &Record{Token: "t"}, false},
		{"user only", &Record{User: &User{Username: "a"}}, false},
		{"both", testRecord(), true},
	}
	for _, tc := range cases {
		if got := tc.rec.IsLoggedIn(); got != tc.want {
			t.Errorf("%s: IsLoggedIn=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestUserStringID(t *testing.T) {
	u := &User{ID: json.Number("42")}
	id, ok := u.StringID()
	if !ok || id != "42" {
		t.Fatalf("StringID=%q ok=%v", id, ok)
	}

	u = &User{ID: json.Number("  ")}
	if _, ok := u.StringID(); ok {
		t.Fatal("blank id should not coerce")
	}

	var nilUser *User
	if _, ok := nilUser.StringID(); ok {
		t.Fatal("nil user should not coerce")
	}
}

func TestUserIDAcceptsStringForm(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":"7","username":"bob","role":0}`), &u); err != nil {
		t.Fatalf("unmarshal string id: %v", err)
	}
	id, ok := u.StringID()
	if !ok || id != "7" {
		t.Fatalf("StringID=%q ok=%v", id, ok)
	}
}
