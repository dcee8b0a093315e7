package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	queueSize    = 64
	maxAttempts  = 3
	retryBackoff = time.Second
)

// Message is one outbound notification. Email and WhatsApp recipients are
// carried together; each registered sender picks the part it handles.
type Message struct {
	ID      uuid.UUID
	Subject string
	HTML    string
	Text    string
	Emails  []string
	Numbers []string
	QuoteID string
	Stage   string // lifecycle stage that produced the message, for logs
}

// Sender delivers a message over one channel (mail, WhatsApp).
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher drains an in-process queue on a single worker goroutine.
// Enqueue never blocks the HTTP path: a full queue drops the message with a
// log line, and delivery failures are retried then logged, never surfaced.
type Dispatcher struct {
	queue   chan Message
	senders []Sender
	log     *slog.Logger
	done    chan struct{}
	stopped chan struct{}
}

func NewDispatcher(log *slog.Logger, senders ...Sender) *Dispatcher {
	return &Dispatcher{
		queue:   make(chan Message, queueSize),
		senders: senders,
		log:     log,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.stopped)
		for {
			select {
			case msg := <-d.queue:
				d.deliver(ctx, msg)
			case <-d.done:
				d.drain(ctx)
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	d.log.Info("notification dispatcher started", "senders", len(d.senders))
}

// Stop delivers everything already queued, then returns. Only valid after
// Start.
func (d *Dispatcher) Stop() {
	close(d.done)
	<-d.stopped
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		default:
			return
		}
	}
}

// Enqueue queues the message for delivery and returns immediately.
func (d *Dispatcher) Enqueue(msg Message) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	select {
	case d.queue <- msg:
	default:
		d.log.Warn("notification queue full, dropping message",
			"id", msg.ID, "subject", msg.Subject, "stage", msg.Stage)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	log := d.log.With("id", msg.ID, "quote_id", msg.QuoteID, "stage", msg.Stage)
	for _, sender := range d.senders {
		var err error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err = sender.Send(ctx, msg); err == nil {
				break
			}
			log.Warn("notification send failed",
				"sender", sender.Name(), "attempt", attempt, "error", err)
			if attempt < maxAttempts {
				select {
				case <-time.After(retryBackoff * time.Duration(attempt)):
				case <-ctx.Done():
					return
				}
			}
		}
		if err != nil {
			log.Error("notification dropped after retries",
				"sender", sender.Name(), "error", err)
		}
	}
}
