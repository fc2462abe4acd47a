// Package skid provides the one-slot elastic buffer that registers the
// bus response channels. A response offered in cycle t becomes visible
// to the consumer in cycle t+1, decoupling the controllers'
// combinational evaluation from the externally observable handshake.
package skid

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/regbank/bus"
)

// Buffer is a one-entry elastic buffer for bus responses. The occupied
// slot is registered state; values accepted from the producer are
// staged during the cycle and committed at the tick boundary, so the
// buffer adds exactly one cycle of latency and can sustain one transfer
// per cycle once primed (the slot drains and refills in the same tick).
//
// Within a cycle the expected call order is Accept, then Offer, then
// Tick. Poll may be called at any point; it always observes the slot as
// committed at the previous tick.
type Buffer struct {
	slot sim.Buffer

	staged      bus.Response
	stagedValid bool
	draining    bool
}

// New creates an empty buffer. The name identifies the underlying slot
// in traces.
func New(name string) *Buffer {
	return &Buffer{
		slot: sim.NewBuffer(name, 1),
	}
}

// Ready reports the producer-ready signal for this cycle: true when
// the buffer can take a new value, either because the slot is empty or
// because the consumer is draining it this same cycle.
func (b *Buffer) Ready() bool {
	return !b.stagedValid && (b.slot.Size() == 0 || b.draining)
}

// Offer presents a response from the producer side and returns the
// producer-ready signal. The response is latched only when valid and
// ready are both true; a stalled producer must re-offer next cycle.
func (b *Buffer) Offer(rsp bus.Response, valid bool) bool {
	ready := b.Ready()
	if valid && ready {
		b.staged = rsp
		b.stagedValid = true
	}
	return ready
}

// Poll returns the response visible to the consumer this cycle, along
// with its valid flag. The slot content is stable for the whole cycle.
func (b *Buffer) Poll() (bus.Response, bool) {
	if b.slot.Size() == 0 {
		return bus.Response{}, false
	}
	return b.slot.Peek().(bus.Response), true
}

// Accept records the consumer-ready signal for this cycle. The slot is
// freed at the tick boundary when the consumer was ready and the slot
// held a valid response, completing the transfer.
func (b *Buffer) Accept(ready bool) {
	b.draining = ready && b.slot.Size() > 0
}

// Tick commits the cycle: a drained slot is popped, a staged response
// is pushed, and the per-cycle flags are cleared.
func (b *Buffer) Tick() {
	if b.draining {
		b.slot.Pop()
	}
	if b.stagedValid {
		b.slot.Push(b.staged)
	}
	b.staged = bus.Response{}
	b.stagedValid = false
	b.draining = false
}

// Clear empties the buffer, dropping the slot and any staged response.
func (b *Buffer) Clear() {
	b.slot.Clear()
	b.staged = bus.Response{}
	b.stagedValid = false
	b.draining = false
}
