package flows

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rsplatform/rsclient/session"
)

func testDeps(exchange json.RawMessage, profile *session.User) (LoginDeps, *session.Record) {
	saved := &session.Record{}
	deps := LoginDeps{
		Exchange: func(ctx context.Context, username, password string) (json.RawMessage, error) {
			return exchange, nil
		},
		FetchProfile: func(ctx context.Context, token string) (*session.User, error) {
			if profile == nil {
				return nil, errors.New("profile endpoint down")
			}
			return profile, nil
		},
		SaveSession: func(ctx context.Context, rec *session.Record) error {
			*saved = *rec
			return nil
		},
	}
	return deps, saved
}

func TestLoginAuthenticated(t *testing.T) {
	profile := &session.User{ID: json.Number("42"), Username: "alice"}
	deps, saved := testDeps(json.RawMessage(`{"token":"tok-1"}`), profile)

	res, err := Login(context.Background(), deps, "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Status != LoginAuthenticated {
		t.Fatalf("status = %v", res.Status)
	}
	if saved.Token != "tok-1" || saved.User.Username != "alice" {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestLoginDegradedSynthesizesProfile(t *testing.T) {
	deps, saved := testDeps(json.RawMessage(`{"token":"tok-1"}`), nil)

	res, err := Login(context.Background(), deps, "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Status != LoginDegraded {
		t.Fatalf("status = %v", res.Status)
	}
	if res.User.ID != json.Number("0") || res.User.Username != "alice" || res.User.Error == "" {
		t.Fatalf("synthetic profile = %+v", res.User)
	}
	if !saved.IsLoggedIn() {
		t.Fatal("degraded session must still persist")
	}
}

func TestLoginRejectedWithoutToken(t *testing.T) {
	deps, _ := testDeps(json.RawMessage(`{"greeting":"hi"}`), nil)

	res, err := Login(context.Background(), deps, "alice", "pw")
	if err == nil {
		t.Fatal("expected error for tokenless exchange")
	}
	if res.Status != LoginRejected {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestLoginRejectedOnExchangeError(t *testing.T) {
	deps, _ := testDeps(nil, nil)
	wantErr := errors.New("credentials refused")
	deps.Exchange = func(ctx context.Context, username, password string) (json.RawMessage, error) {
		return nil, wantErr
	}

	res, err := Login(context.Background(), deps, "alice", "pw")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if res.Status != LoginRejected {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestLoginSaveFailureSurfaces(t *testing.T) {
	profile := &session.User{ID: json.Number("42"), Username: "alice"}
	deps, _ := testDeps(json.RawMessage(`{"token":"tok-1"}`), profile)
	deps.SaveSession = func(ctx context.Context, rec *session.Record) error {
		return errors.New("disk full")
	}

	if _, err := Login(context.Background(), deps, "alice", "pw"); err == nil {
		t.Fatal("expected persist failure to surface")
	}
}

func TestExtractTokenVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"top level", `{"token":"t1"}`, "t1"},
		{"nested data", `{"data":{"token":"t2"}}`, "t2"},
		{"bare string", `"t3"`, "t3"},
		{"blank string", `"  "`, ""},
		{"no token", `{"x":1}`, ""},
		{"empty object", `{}`, ""},
		{"number", `7`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := extractToken(json.RawMessage(tc.raw))
			if got != tc.want {
				t.Fatalf("token = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTokenCarriesInlineProfile(t *testing.T) {
	raw := json.RawMessage(`{"token":"t1","userInfo":{"id":42,"avatar":"a.png"}}`)
	token, inline := extractToken(raw)
	if token != "t1" {
		t.Fatalf("token = %q", token)
	}
	if inline == nil || inline.Avatar != "a.png" {
		t.Fatalf("inline = %+v", inline)
	}
}
