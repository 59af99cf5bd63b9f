package services

import (
	"log/slog"
	"sync"

	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
)

// channelNotifier fans posted-transaction events out to a background worker
// over a buffered channel. Publishing never blocks the posting path; when the
// buffer is full the event is dropped, not queued.
type channelNotifier struct {
	events chan portssvc.TransactionEvent
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewChannelNotifier creates a notifier with the given buffer size and starts
// its worker goroutine.
func NewChannelNotifier(bufferSize int, logger *slog.Logger) portssvc.TransactionNotifier {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	n := &channelNotifier{
		events: make(chan portssvc.TransactionEvent, bufferSize),
		logger: logger,
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

// Ensure channelNotifier implements the portssvc.TransactionNotifier interface
var _ portssvc.TransactionNotifier = (*channelNotifier)(nil)

// NotifyNewTransaction publishes an event without blocking. Events that find
// the buffer full are dropped; the posting already committed and must not wait.
// Calls after Close are no-ops.
func (n *channelNotifier) NotifyNewTransaction(event portssvc.TransactionEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	select {
	case n.events <- event:
	default:
		n.logger.Warn("notification buffer full, dropping event",
			slog.String("transaction_id", event.TransactionID))
	}
}

// Close stops accepting events and waits for the worker to drain the buffer.
func (n *channelNotifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.events)
	n.mu.Unlock()
	<-n.done
}

func (n *channelNotifier) run() {
	defer close(n.done)
	for event := range n.events {
		n.logger.Info("transaction posted",
			slog.String("transaction_id", event.TransactionID),
			slog.String("kind", string(event.Kind)),
			slog.String("amount", event.Amount.String()),
			slog.String("category", event.Category),
			slog.String("branch_id", event.BranchID),
			slog.String("actor_id", event.ActorID),
		)
	}
}
