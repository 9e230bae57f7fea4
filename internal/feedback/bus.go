package feedback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// #region dead-letter

// DeadLetterSink persists messages that could not be delivered in time.
// Implemented by the state store; dead-lettered messages leave the bus.
type DeadLetterSink interface {
	DeadLetter(msg Message, reason string) error
}

// #endregion dead-letter

// #region bus

// Bus routes corrective feedback from the auditor to its consumers with
// per-source FIFO ordering and at-least-once delivery. Messages from one
// instrument are delivered in publication order; queues for different
// instruments are independent and may interleave.
type Bus struct {
	config      Config
	deadLetters DeadLetterSink

	mu        sync.Mutex
	consumers []Consumer
	pending   map[string][]Message // instrument → FIFO of undelivered messages
}

// NewBus creates a bus. sink may be nil; undeliverable messages are then
// dropped with a log line instead of persisted.
func NewBus(config Config, sink DeadLetterSink) *Bus {
	return &Bus{
		config:      config,
		deadLetters: sink,
		pending:     make(map[string][]Message),
	}
}

// Subscribe registers a consumer. Consumers are invoked in registration
// order for every message; the evolution engine registers first.
func (b *Bus) Subscribe(c Consumer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consumers = append(b.consumers, c)
}

// Publish enqueues a message on its instrument's queue. A queue already
// at capacity dead-letters its oldest message to bound retry buildup.
func (b *Bus) Publish(msg Message) {
	var overflow *Message
	b.mu.Lock()
	queue := append(b.pending[msg.Instrument], msg)
	if b.config.QueueDepth > 0 && len(queue) > b.config.QueueDepth {
		dropped := queue[0]
		overflow = &dropped
		queue = queue[1:]
	}
	b.pending[msg.Instrument] = queue
	b.mu.Unlock()

	if overflow != nil {
		b.toDeadLetter(*overflow, "queue overflow")
	}
}

// Pending reports how many messages are queued for an instrument.
func (b *Bus) Pending(instrument string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending[instrument])
}

// #endregion bus

// #region flush

// FlushResult reports what one flush did for an instrument.
type FlushResult struct {
	Delivered    int
	DeadLettered int
	Retained     int  // kept queued for retry next cycle
	Degraded     bool // at least one message missed its delivery window
}

// Flush drains an instrument's queue in order. A message that times out is
// dead-lettered and the flush is marked degraded; a consumer error keeps
// the message queued so the next cycle retries it (consumers deduplicate,
// so redelivery is safe). A retained message blocks the rest of its queue
// to preserve ordering.
func (b *Bus) Flush(ctx context.Context, instrument string) FlushResult {
	b.mu.Lock()
	queue := b.pending[instrument]
	b.pending[instrument] = nil
	b.mu.Unlock()

	var result FlushResult
	for i, msg := range queue {
		err := b.deliver(ctx, msg)
		switch {
		case err == nil:
			result.Delivered++
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			result.Degraded = true
			result.DeadLettered++
			b.toDeadLetter(msg, err.Error())
		default:
			// Requeue this and everything behind it, in order.
			b.mu.Lock()
			b.pending[instrument] = append(queue[i:], b.pending[instrument]...)
			b.mu.Unlock()
			result.Retained = len(queue) - i
			log.Printf("[BUS] consumer error for %s cycle %s, retrying next cycle: %v",
				instrument, msg.SourceCycleID, err)
			return result
		}
	}
	return result
}

// deliver fans one message out to every consumer within the delivery
// timeout. The consumer call runs in a goroutine so a stuck consumer
// cannot wedge the cycle past its budget.
func (b *Bus) deliver(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, b.config.DeliveryTimeout)
	defer cancel()

	for _, c := range b.consumers {
		done := make(chan error, 1)
		go func(c Consumer) { done <- c.Accept(msg) }(c)

		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("accept cycle %s: %w", msg.SourceCycleID, err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// toDeadLetter hands a message to the sink, or drops it loudly.
func (b *Bus) toDeadLetter(msg Message, reason string) {
	if b.deadLetters == nil {
		log.Printf("[BUS] dropping undeliverable feedback for cycle %s: %s", msg.SourceCycleID, reason)
		return
	}
	if err := b.deadLetters.DeadLetter(msg, reason); err != nil {
		log.Printf("[BUS] dead-letter write failed for cycle %s: %v", msg.SourceCycleID, err)
	}
}

// #endregion flush
