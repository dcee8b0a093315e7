package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	mu       sync.Mutex
	failures int
	sent     []Message
	calls    int
}

func (s *stubSender) Name() string { return "stub" }

func (s *stubSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("provider unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *stubSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_DeliversMessage(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(discardLogger(), sender)
	d.Start(context.Background())
	defer d.Stop()

	d.Enqueue(Message{Subject: "hello", Emails: []string{"a@x.com"}})

	require.Eventually(t, func() bool { return sender.sentCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "hello", sender.sent[0].Subject)
	assert.NotEmpty(t, sender.sent[0].ID)
}

func TestDispatcher_RetriesFailedSend(t *testing.T) {
	sender := &stubSender{failures: 2}
	d := NewDispatcher(discardLogger(), sender)
	d.Start(context.Background())
	defer d.Stop()

	d.Enqueue(Message{Subject: "retry me"})

	require.Eventually(t, func() bool { return sender.sentCount() == 1 }, 10*time.Second, 50*time.Millisecond)
	assert.Equal(t, 3, sender.callCount())
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(discardLogger(), sender)

	// Queue up before the worker runs, then stop right after starting:
	// everything already enqueued must still go out.
	for i := 0; i < 5; i++ {
		d.Enqueue(Message{Subject: "pending"})
	}
	d.Start(context.Background())
	d.Stop()

	assert.Equal(t, 5, sender.sentCount())
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// No worker running: the queue fills up and further messages drop.
	d := NewDispatcher(discardLogger(), &stubSender{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize*2; i++ {
			d.Enqueue(Message{Subject: "bulk"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
