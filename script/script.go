// Package script loads and replays JSON transaction scripts against a
// register bank. A script is the external workload of the simulator:
// an ordered list of bus transactions, direct loads, and idle cycles.
package script

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Op identifies a script step kind.
type Op string

// Script step kinds.
const (
	// OpWrite issues a bus write and retries until accepted.
	OpWrite Op = "write"
	// OpRead issues a bus read and retries until accepted.
	OpRead Op = "read"
	// OpLoad drives the direct-load side channel for one cycle.
	OpLoad Op = "load"
	// OpIdle ticks the bank with no stimulus.
	OpIdle Op = "idle"
)

// Step is one entry of a transaction script.
type Step struct {
	// Op is the step kind.
	Op Op `json:"op"`

	// Addr is the target byte address (write and read steps).
	Addr uint64 `json:"addr,omitempty"`

	// Data is the hex-encoded payload: write data lanes for a write
	// step, load values for a load step.
	Data string `json:"data,omitempty"`

	// Strobe selects the write lanes. Empty means all lanes.
	Strobe []bool `json:"strobe,omitempty"`

	// Enable selects the cells driven by a load step, one flag per
	// register byte.
	Enable []bool `json:"enable,omitempty"`

	// Privileged and Secure are the protection attributes presented
	// with the request.
	Privileged bool `json:"privileged,omitempty"`
	Secure     bool `json:"secure,omitempty"`

	// Repeat replays the step this many times. Zero means once.
	Repeat int `json:"repeat,omitempty"`
}

// Lanes decodes the step's hex payload.
func (s Step) Lanes() ([]byte, error) {
	if s.Data == "" {
		return nil, nil
	}
	lanes, err := hex.DecodeString(s.Data)
	if err != nil {
		return nil, fmt.Errorf("bad hex data %q: %w", s.Data, err)
	}
	return lanes, nil
}

// Times returns the step's effective repetition count.
func (s Step) Times() int {
	if s.Repeat <= 0 {
		return 1
	}
	return s.Repeat
}

// Script is an ordered transaction sequence.
type Script struct {
	// Steps are replayed in order.
	Steps []Step `json:"steps"`
}

// Load reads and validates a script from a JSON file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	s := &Script{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks every step for a known op and a decodable payload.
func (s *Script) Validate() error {
	for i := range s.Steps {
		step := &s.Steps[i]
		switch step.Op {
		case OpWrite, OpRead, OpLoad, OpIdle:
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		if _, err := step.Lanes(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if step.Op == OpLoad && len(step.Enable) == 0 {
			return fmt.Errorf("step %d: load step needs an enable vector", i)
		}
	}
	return nil
}
