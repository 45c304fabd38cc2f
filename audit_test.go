package rsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8, DropIfFull: true}, sink)

	d.Emit(context.Background(), AuditEvent{EventType: AuditLoginSuccess, UserID: "42", Success: true})
	d.Close()

	select {
	case got := <-sink.Events():
		if got.EventType != AuditLoginSuccess || got.UserID != "42" {
			t.Fatalf("event = %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestDispatcherDropsUnderBackpressure(t *testing.T) {
	block := make(chan struct{})
	sink := blockingSink{release: block}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// One event occupies the worker, one fills the buffer; the rest
	// must be dropped without blocking the caller.
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: AuditRequestFailure})
	}
	close(block)
	d.Close()

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}
}

type blockingSink struct {
	release chan struct{}
}

func (s blockingSink) Emit(context.Context, AuditEvent) {
	<-s.release
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("disabled audit must not spawn a dispatcher")
	}
	// Nil dispatcher methods are safe.
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher dropped count")
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{EventType: AuditLogout, Success: true})
	sink.Emit(context.Background(), AuditEvent{EventType: AuditSessionCleared, Success: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	var event AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("line not json: %v", err)
	}
	if event.EventType != AuditLogout {
		t.Fatalf("event = %+v", event)
	}
}
