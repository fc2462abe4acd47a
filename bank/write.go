package bank

import (
	"github.com/sarchlab/regbank/bus"
	"github.com/sarchlab/regbank/decode"
	"github.com/sarchlab/regbank/skid"
)

// LoadVector is the direct-load side channel, sampled every cycle: one
// enable bit and one value byte per register cell. Direct loads bypass
// the bus, ignore the read-only mask, and always win over a concurrent
// bus write (the bus write is stalled, not merged).
type LoadVector struct {
	// Enable flags the cells to load this cycle.
	Enable []bool
	// Value holds the byte loaded into each enabled cell.
	Value []byte
}

// WriteResult reports the outcome of one write-controller cycle.
type WriteResult struct {
	// Accepted is true when the write request handshake completed this
	// cycle. A stalled or back-pressured request is not accepted and
	// must be re-issued.
	Accepted bool
	// Stalled is true when the request targeted a chunk with a direct
	// load in flight this same cycle. Back-pressure, not an error.
	Stalled bool
	// Errored is true when the accepted request will respond SlaveErr.
	Errored bool
	// Loads counts the direct-loaded bytes this cycle.
	Loads int
	// Active flags the lanes the bus attempted to write: strobed,
	// in-range lanes of an accepted, decoded, protection-passing
	// request. Read-only lanes are flagged even though their data is
	// dropped.
	Active []bool
}

// WriteController arbitrates the two writers of the register array:
// the direct-load side channel and the bus write channel. It stages
// storage updates, computes the write response, and drives the
// write-side handshake.
type WriteController struct {
	cfg     *Config
	table   *decode.Table
	storage *Storage
	rsp     *skid.Buffer

	loadsInChunk []bool
}

// NewWriteController creates a write controller that responds through
// the given skid buffer.
func NewWriteController(
	cfg *Config,
	table *decode.Table,
	storage *Storage,
	rsp *skid.Buffer,
) *WriteController {
	return &WriteController{
		cfg:          cfg,
		table:        table,
		storage:      storage,
		rsp:          rsp,
		loadsInChunk: make([]bool, cfg.NumChunks()),
	}
}

// Cycle evaluates one cycle of the write path against the committed
// array state. Storage effects are staged through Propose and take
// effect at the next Commit; the response, if any, is offered to the
// skid buffer and becomes visible one cycle later.
func (c *WriteController) Cycle(
	loads LoadVector,
	valid bool,
	req bus.WriteRequest,
	data bus.WriteData,
) WriteResult {
	res := WriteResult{Active: make([]bool, c.cfg.DataWidth)}

	for i := range c.loadsInChunk {
		c.loadsInChunk[i] = false
	}

	// Direct loads apply unconditionally, read-only cells included.
	for i := 0; i < len(loads.Enable) && i < c.storage.Size(); i++ {
		if !loads.Enable[i] {
			continue
		}
		c.storage.Propose(i, loads.Value[i])
		c.loadsInChunk[i/c.cfg.DataWidth] = true
		res.Loads++
	}

	if !valid {
		return res
	}

	// The request is only consumed when the response path can take the
	// answer this cycle.
	if !c.rsp.Ready() {
		return res
	}

	idx, ok := c.table.Decode(req.Addr)
	if !ok || !c.cfg.allows(req.Prot) {
		res.Accepted = true
		res.Errored = true
		c.rsp.Offer(bus.Response{Status: bus.SlaveErr}, true)
		return res
	}

	// Load-in-progress stall: a chunk under direct load rejects the
	// bus write entirely. The handshake is withheld so the requester
	// retries next cycle.
	if c.loadsInChunk[idx] {
		res.Stalled = true
		return res
	}

	r := c.table.Range(idx)
	status := bus.OK
	if c.chunkReadOnly(r) {
		status = bus.SlaveErr
	}

	for j := 0; j < c.cfg.DataWidth; j++ {
		addr := r.Start + uint64(j)
		if addr >= r.End {
			continue // lane beyond the array: write-ignored
		}
		if j >= len(data.Strobe) || !data.Strobe[j] {
			continue
		}
		res.Active[j] = true
		if !c.storage.ReadOnly(int(addr)) && j < len(data.Lanes) {
			c.storage.Propose(int(addr), data.Lanes[j])
		}
	}

	res.Accepted = true
	res.Errored = status == bus.SlaveErr
	c.rsp.Offer(bus.Response{Status: status}, true)
	return res
}

// chunkReadOnly reports whether every in-range byte of the chunk is
// read-only. Such a chunk always answers SlaveErr, even when the strobe
// would not have changed anything.
func (c *WriteController) chunkReadOnly(r decode.Range) bool {
	for a := r.Start; a < r.End; a++ {
		if !c.storage.ReadOnly(int(a)) {
			return false
		}
	}
	return true
}
