package bank

import (
	"github.com/sarchlab/regbank/bus"
	"github.com/sarchlab/regbank/decode"
	"github.com/sarchlab/regbank/skid"
)

// ReadResult reports the outcome of one read-controller cycle.
type ReadResult struct {
	// Accepted is true when the read request handshake completed this
	// cycle.
	Accepted bool
	// Errored is true when the accepted request will respond SlaveErr.
	Errored bool
	// Active flags the in-range lanes of an accepted, decoded,
	// protection-passing read. A rejected read flags no lanes.
	Active []bool
}

// ReadController multiplexes the register array onto the read response
// payload and drives the read-side handshake through its skid buffer.
// It never mutates storage.
type ReadController struct {
	cfg     *Config
	table   *decode.Table
	storage *Storage
	rsp     *skid.Buffer
}

// NewReadController creates a read controller that responds through the
// given skid buffer.
func NewReadController(
	cfg *Config,
	table *decode.Table,
	storage *Storage,
	rsp *skid.Buffer,
) *ReadController {
	return &ReadController{
		cfg:     cfg,
		table:   table,
		storage: storage,
		rsp:     rsp,
	}
}

// Cycle evaluates one cycle of the read path against the committed
// array state. Every request is serviced combinationally in one cycle;
// the response is offered to the skid buffer and becomes visible one
// cycle later. The request is accepted only when the buffer can take
// the response this cycle.
func (c *ReadController) Cycle(valid bool, req bus.ReadRequest) ReadResult {
	res := ReadResult{Active: make([]bool, c.cfg.DataWidth)}

	if !valid {
		return res
	}
	if !c.rsp.Ready() {
		return res
	}

	idx, ok := c.table.Decode(req.Addr)
	if !ok || !c.cfg.allows(req.Prot) {
		res.Accepted = true
		res.Errored = true
		c.rsp.Offer(bus.Response{
			Status: bus.SlaveErr,
			Data:   bus.SentinelData(c.cfg.DataWidth),
		}, true)
		return res
	}

	r := c.table.Range(idx)
	data := make([]byte, c.cfg.DataWidth)
	for j := 0; j < c.cfg.DataWidth; j++ {
		addr := r.Start + uint64(j)
		if addr >= r.End {
			continue // lane beyond the array reads as zero
		}
		data[j] = c.storage.Byte(int(addr))
		res.Active[j] = true
	}

	res.Accepted = true
	c.rsp.Offer(bus.Response{Status: bus.OK, Data: data}, true)
	return res
}
