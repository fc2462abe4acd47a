package script

import (
	"fmt"

	"github.com/sarchlab/regbank/bank"
	"github.com/sarchlab/regbank/bus"
)

// maxRetries bounds how long the player re-issues a stalled request
// before giving up. A script that holds direct loads on a chunk forever
// would otherwise livelock the replay.
const maxRetries = 1024

// Event is one response observed on a response channel.
type Event struct {
	// Cycle is the tick on which the response was visible.
	Cycle uint64
	// Channel is "B" for write responses, "R" for read responses.
	Channel string
	// Status is the response status.
	Status bus.Status
	// Data is the read payload, nil for write responses.
	Data []byte
}

// Result summarizes a replay.
type Result struct {
	// Events lists every response in arrival order.
	Events []Event
	// Cycles is the number of ticks the replay took.
	Cycles uint64
}

// Player replays a script against a bank, one step at a time, keeping
// both response channels always ready and re-issuing stalled requests
// on the following cycle.
type Player struct {
	bank   *bank.Bank
	cycle  uint64
	events []Event
}

// NewPlayer creates a player for the given bank.
func NewPlayer(b *bank.Bank) *Player {
	return &Player{bank: b}
}

// Run replays the whole script and drains the response channels. The
// bank retains its state afterwards, so scripts can be chained.
func (p *Player) Run(s *Script) (*Result, error) {
	for i := range s.Steps {
		step := &s.Steps[i]
		for n := 0; n < step.Times(); n++ {
			if err := p.play(step); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}
	}

	// One more tick so the response to the last accepted request
	// becomes visible.
	p.tick(bank.Inputs{BReady: true, RReady: true})

	return &Result{Events: p.events, Cycles: p.cycle}, nil
}

func (p *Player) play(step *Step) error {
	lanes, err := step.Lanes()
	if err != nil {
		return err
	}
	prot := bus.Prot{Privileged: step.Privileged, Secure: step.Secure}

	switch step.Op {
	case OpIdle:
		p.tick(bank.Inputs{BReady: true, RReady: true})
		return nil

	case OpLoad:
		values := make([]byte, len(step.Enable))
		copy(values, lanes)
		p.tick(bank.Inputs{
			Loads:  bank.LoadVector{Enable: step.Enable, Value: values},
			BReady: true,
			RReady: true,
		})
		return nil

	case OpWrite:
		strobe := step.Strobe
		if len(strobe) == 0 {
			strobe = bus.FullStrobe(p.bank.Config().DataWidth)
		}
		in := bank.Inputs{
			WriteValid: true,
			Write:      bus.WriteRequest{Addr: step.Addr, Prot: prot},
			Data:       bus.WriteData{Lanes: lanes, Strobe: strobe},
			BReady:     true,
			RReady:     true,
		}
		for n := 0; n < maxRetries; n++ {
			if out := p.tick(in); out.WriteAccepted {
				return nil
			}
		}
		return fmt.Errorf("write to %#x not accepted after %d cycles",
			step.Addr, maxRetries)

	case OpRead:
		in := bank.Inputs{
			ReadValid: true,
			Read:      bus.ReadRequest{Addr: step.Addr, Prot: prot},
			BReady:    true,
			RReady:    true,
		}
		for n := 0; n < maxRetries; n++ {
			if out := p.tick(in); out.ReadAccepted {
				return nil
			}
		}
		return fmt.Errorf("read of %#x not accepted after %d cycles",
			step.Addr, maxRetries)
	}

	return fmt.Errorf("unknown op %q", step.Op)
}

// tick advances the bank one cycle and records any visible responses.
func (p *Player) tick(in bank.Inputs) bank.Outputs {
	out := p.bank.Tick(in)
	p.cycle++

	if out.BValid {
		p.events = append(p.events, Event{
			Cycle:   p.cycle,
			Channel: "B",
			Status:  out.BResp,
		})
	}
	if out.RValid {
		p.events = append(p.events, Event{
			Cycle:   p.cycle,
			Channel: "R",
			Status:  out.RResp,
			Data:    out.RData,
		})
	}

	return out
}
