package services_test

import (
	"io"
	"log/slog"
	"testing"

	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testEvent() portssvc.TransactionEvent {
	return portssvc.TransactionEvent{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(100),
		BranchID:      uuid.NewString(),
		ActorID:       uuid.NewString(),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChannelNotifier_CloseDrainsPendingEvents(t *testing.T) {
	n := services.NewChannelNotifier(8, quietLogger())

	for i := 0; i < 5; i++ {
		n.NotifyNewTransaction(testEvent())
	}

	// Close must block until the worker has consumed everything, then return.
	n.Close()
}

func TestChannelNotifier_NotifyAfterCloseIsNoOp(t *testing.T) {
	n := services.NewChannelNotifier(4, quietLogger())
	n.Close()

	assert.NotPanics(t, func() {
		n.NotifyNewTransaction(testEvent())
	})
}

func TestChannelNotifier_CloseIsIdempotent(t *testing.T) {
	n := services.NewChannelNotifier(4, quietLogger())

	assert.NotPanics(t, func() {
		n.Close()
		n.Close()
	})
}

func TestChannelNotifier_FullBufferNeverBlocks(t *testing.T) {
	// Buffer of one and a flood of events; publishing must stay non-blocking
	// even if the worker falls behind.
	n := services.NewChannelNotifier(1, quietLogger())
	defer n.Close()

	for i := 0; i < 100; i++ {
		n.NotifyNewTransaction(testEvent())
	}
}
