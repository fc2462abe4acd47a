// Package bank provides a cycle-accurate model of a memory-mapped
// register-file controller. A byte-addressable register array is
// exposed over a single-beat request/response bus with independent
// read and write channels, handshake back-pressure, per-byte read-only
// protection, and a direct-load side channel that overrides bus writes.
//
// The model is a synchronous step function: the caller presents one
// cycle's worth of inputs to Tick, which evaluates both controllers
// combinationally against the state committed at the previous tick and
// then commits storage and the response buffers atomically. Responses
// appear on the bus exactly one cycle after their request is accepted.
package bank

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/regbank/bus"
	"github.com/sarchlab/regbank/decode"
	"github.com/sarchlab/regbank/skid"
)

// Inputs carries one cycle's bus and side-channel stimulus. The write
// address and write data halves are presented jointly under a single
// valid; partial presentation is not supported.
type Inputs struct {
	// WriteValid asserts the joint write address+data channel.
	WriteValid bool
	// Write is the write address channel payload.
	Write bus.WriteRequest
	// Data is the write data channel payload.
	Data bus.WriteData

	// ReadValid asserts the read address channel.
	ReadValid bool
	// Read is the read address channel payload.
	Read bus.ReadRequest

	// Loads is the direct-load side channel, sampled every cycle.
	Loads LoadVector

	// BReady is the consumer-ready signal of the write response
	// channel.
	BReady bool
	// RReady is the consumer-ready signal of the read response
	// channel.
	RReady bool
}

// Outputs carries one cycle's externally observable signals.
type Outputs struct {
	// WriteAccepted is true when the write handshake completed this
	// cycle. A request that was not accepted must be re-issued.
	WriteAccepted bool
	// ReadAccepted is true when the read handshake completed this
	// cycle.
	ReadAccepted bool

	// BValid flags a valid write response this cycle.
	BValid bool
	// BResp is the write response status, meaningful when BValid.
	BResp bus.Status

	// RValid flags a valid read response this cycle.
	RValid bool
	// RResp is the read response status, meaningful when RValid.
	RResp bus.Status
	// RData is the read payload, meaningful when RValid.
	RData []byte

	// WriteActive flags the lanes the bus attempted to write this
	// cycle, read-only lanes included. Informational tap for the
	// direct-load owner, not part of the bus protocol.
	WriteActive []bool
	// ReadActive flags the lanes read by an accepted read this cycle.
	ReadActive []bool
}

// Statistics holds counters accumulated across ticks.
type Statistics struct {
	// Cycles is the total number of ticks evaluated.
	Cycles uint64
	// WritesAccepted is the number of completed write handshakes.
	WritesAccepted uint64
	// ReadsAccepted is the number of completed read handshakes.
	ReadsAccepted uint64
	// WriteStalls is the number of cycles a write was withheld because
	// its target chunk was under direct load.
	WriteStalls uint64
	// SlaveErrors is the number of transactions answered SlaveErr.
	SlaveErrors uint64
	// BytesLoaded is the number of bytes written by the direct-load
	// side channel.
	BytesLoaded uint64
}

// Bank is the register-file controller: storage, the two controllers,
// and the response skid buffers.
type Bank struct {
	cfg     *Config
	table   *decode.Table
	storage *Storage

	write    *WriteController
	read     *ReadController
	writeRsp *skid.Buffer
	readRsp  *skid.Buffer

	stats Statistics
}

// Option configures a Bank at construction.
type Option func(*Bank)

// WithName prefixes the response buffer names, for trace readability
// when several banks share a simulation.
func WithName(name string) Option {
	return func(b *Bank) {
		b.writeRsp = skid.New(name + ".WriteRsp")
		b.readRsp = skid.New(name + ".ReadRsp")
	}
}

// New builds a Bank from the given config. The config is validated and
// cloned; a validation failure is returned before the first tick ever
// runs.
func New(cfg *Config, opts ...Option) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.Clone()
	b := &Bank{
		cfg:      cfg,
		table:    decode.NewTable(cfg.Size, cfg.DataWidth),
		writeRsp: skid.New("Bank.WriteRsp"),
		readRsp:  skid.New("Bank.ReadRsp"),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.storage = NewStorage(cfg)
	b.write = NewWriteController(cfg, b.table, b.storage, b.writeRsp)
	b.read = NewReadController(cfg, b.table, b.storage, b.readRsp)

	return b, nil
}

// Tick evaluates one clock cycle. Outputs are derived from the state
// committed at the previous tick; all state mutation happens atomically
// at the end of the call.
func (b *Bank) Tick(in Inputs) Outputs {
	b.stats.Cycles++
	out := Outputs{}

	// Consumer side first: a same-cycle drain frees the skid slot for
	// a new response, sustaining one transfer per cycle.
	b.readRsp.Accept(in.RReady)
	b.writeRsp.Accept(in.BReady)

	if rsp, ok := b.writeRsp.Poll(); ok {
		out.BValid = true
		out.BResp = rsp.Status
	}
	if rsp, ok := b.readRsp.Poll(); ok {
		out.RValid = true
		out.RResp = rsp.Status
		out.RData = rsp.Data
	}

	rres := b.read.Cycle(in.ReadValid, in.Read)
	wres := b.write.Cycle(in.Loads, in.WriteValid, in.Write, in.Data)

	out.ReadAccepted = rres.Accepted
	out.ReadActive = rres.Active
	out.WriteAccepted = wres.Accepted
	out.WriteActive = wres.Active

	if rres.Accepted {
		b.stats.ReadsAccepted++
	}
	if rres.Errored {
		b.stats.SlaveErrors++
	}
	if wres.Accepted {
		b.stats.WritesAccepted++
	}
	if wres.Errored {
		b.stats.SlaveErrors++
	}
	if wres.Stalled {
		b.stats.WriteStalls++
	}
	b.stats.BytesLoaded += uint64(wres.Loads)

	// Tick boundary: commit storage and latch the response buffers.
	b.storage.Commit()
	b.writeRsp.Tick()
	b.readRsp.Tick()

	return out
}

// Reset restores every register byte to its reset value and drops any
// queued responses. Statistics are preserved.
func (b *Bank) Reset() {
	b.storage.Reset()
	b.writeRsp.Clear()
	b.readRsp.Clear()
}

// Config returns the bank's immutable configuration.
func (b *Bank) Config() *Config {
	return b.cfg
}

// Bytes returns a copy of the committed register array.
func (b *Bank) Bytes() []byte {
	return b.storage.Snapshot()
}

// Byte returns the committed value of register byte i.
func (b *Bank) Byte(i int) byte {
	return b.storage.Byte(i)
}

// Stats returns the accumulated statistics.
func (b *Bank) Stats() Statistics {
	return b.stats
}

// SimulatedTime returns the wall-clock time represented by the ticks
// evaluated so far, at the configured frequency.
func (b *Bank) SimulatedTime() sim.VTimeInSec {
	return sim.VTimeInSec(float64(b.stats.Cycles) / float64(b.cfg.Freq))
}
