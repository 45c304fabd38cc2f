package rsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/rsplatform/rsclient/session"
)

func testUser(id string, role int) *session.User {
	return &session.User{
		ID:       json.Number(id),
		Username: "alice",
		Role:     role,
		Status:   1,
	}
}

func seedSession(t *testing.T, store session.Store, token string, user *session.User) {
	t.Helper()
	if err := store.Save(context.Background(), &session.Record{Token: token, User: user}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

// newTestClient wires a client against test servers with a memory store
// and a channel notifier, metrics on.
func newTestClient(t *testing.T, businessURL, algoURL, fileURL string) (*Client, *session.MemoryStore, *ChannelNotifier) {
	t.Helper()
	store := session.NewMemoryStore()
	notifier := NewChannelNotifier(16)
	client, err := New().
		WithEndpoints(businessURL, algoURL, fileURL).
		WithSessionStore(store).
		WithNotifier(notifier).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	t.Cleanup(client.Close)
	return client, store, notifier
}

func writeEnvelope(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	payload, err := json.Marshal(map[string]any{"code": code, "msg": "", "data": data})
	if err != nil {
		panic(err)
	}
	_, _ = w.Write(payload)
}

func writeEnvelopeError(w http.ResponseWriter, status, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"code":%d,"msg":%q,"data":null}`, code, msg)
}

func drainNotifications(n *ChannelNotifier) []Notification {
	var out []Notification
	for {
		select {
		case note := <-n.Notifications():
			out = append(out, note)
		default:
			return out
		}
	}
}
