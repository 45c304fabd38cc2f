package rsclient

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// NotifyLevel grades user-facing notifications.
type NotifyLevel uint8

const (
	// NotifyError is an error toast: a classified request failure.
	NotifyError NotifyLevel = iota
	// NotifySuccess is a success toast (login, logout).
	NotifySuccess
)

// String returns the level's display name.
func (l NotifyLevel) String() string {
	if l == NotifySuccess {
		return "success"
	}
	return "error"
}

// Notification is one user-facing message emitted by the pipeline.
type Notification struct {
	Level   NotifyLevel
	Message string
}

// Notifier receives the transient user-facing messages the pipelines
// raise for non-silent failures and for login/logout outcomes. The UI
// layer supplies the implementation; the default is NoOpNotifier.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NoOpNotifier discards all notifications.
type NoOpNotifier struct{}

// Notify is a no-op.
func (NoOpNotifier) Notify(context.Context, Notification) {}

// ChannelNotifier buffers notifications on a channel for consumers that
// drain them into their own UI loop.
type ChannelNotifier struct {
	notes chan Notification
}

// NewChannelNotifier creates a channel-backed notifier.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{
		notes: make(chan Notification, buffer),
	}
}

// Notify enqueues the notification, dropping it if the consumer has
// fallen behind; a stalled UI must not stall the pipeline.
func (n *ChannelNotifier) Notify(ctx context.Context, note Notification) {
	select {
	case n.notes <- note:
	case <-ctx.Done():
	default:
	}
}

// Notifications exposes the drain side of the channel.
func (n *ChannelNotifier) Notifications() <-chan Notification {
	return n.notes
}

// WriterNotifier writes one line per notification, for CLI consumers.
type WriterNotifier struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewWriterNotifier creates a writer-backed notifier.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{writer: w}
}

// Notify writes "level: message" to the underlying writer.
func (n *WriterNotifier) Notify(_ context.Context, note Notification) {
	if n == nil || n.writer == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	_, _ = fmt.Fprintf(n.writer, "%s: %s\n", note.Level, note.Message)
}
