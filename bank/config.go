package bank

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"os"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/regbank/bus"
)

// Config holds the static construction-time parameters of a register
// bank. All fields are immutable once the bank is built; malformed
// values are rejected by Validate before the first tick.
type Config struct {
	// Size is the number of register bytes in the array.
	Size int `json:"size"`

	// DataWidth is the bus data channel width in bytes. It is the
	// chunk size and the unit of address decoding.
	DataWidth int `json:"data_width"`

	// AddrWidth is the bus address width in bits. It must be wide
	// enough to address the highest register byte.
	AddrWidth int `json:"addr_width"`

	// ReadOnly marks register bytes that the bus write path can never
	// modify. The direct-load path ignores this mask. Empty means all
	// bytes are writable; otherwise the length must equal Size.
	//
	// Note that ReadOnly and ResetValues marshal per encoding/json
	// ([]byte as base64).
	ReadOnly []bool `json:"read_only,omitempty"`

	// ResetValues holds the per-byte defaults restored on reset.
	// Empty means all zeroes; otherwise the length must equal Size.
	ResetValues []byte `json:"reset_values,omitempty"`

	// PrivilegedOnly rejects every transaction whose protection
	// attributes lack the privilege bit, regardless of address.
	PrivilegedOnly bool `json:"privileged_only"`

	// SecureOnly rejects every transaction whose protection attributes
	// lack the security bit, regardless of address.
	SecureOnly bool `json:"secure_only"`

	// Freq is the clock frequency of the bank, used to convert cycle
	// counts to simulated time.
	Freq sim.Freq `json:"freq"`
}

// DefaultConfig returns a Config for a small fully-writable bank.
func DefaultConfig() *Config {
	return &Config{
		Size:      16,
		DataWidth: 4,
		AddrWidth: 32,
		Freq:      1 * sim.GHz,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse bank config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize bank config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bank config file: %w", err)
	}

	return nil
}

// Validate checks the static parameters. A failure here is an
// integrator mistake and is fatal at construction time.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be > 0")
	}
	if c.DataWidth <= 0 {
		return fmt.Errorf("data_width must be > 0")
	}
	if len(c.ReadOnly) != 0 && len(c.ReadOnly) != c.Size {
		return fmt.Errorf("read_only mask has %d entries, want %d",
			len(c.ReadOnly), c.Size)
	}
	if len(c.ResetValues) != 0 && len(c.ResetValues) != c.Size {
		return fmt.Errorf("reset_values has %d entries, want %d",
			len(c.ResetValues), c.Size)
	}
	if c.AddrWidth < minAddrWidth(c.Size) {
		return fmt.Errorf("addr_width %d too narrow for %d bytes (need >= %d)",
			c.AddrWidth, c.Size, minAddrWidth(c.Size))
	}
	if c.Freq <= 0 {
		return fmt.Errorf("freq must be > 0")
	}
	return nil
}

// minAddrWidth returns the narrowest address width that can reach the
// highest byte address of a size-byte array.
func minAddrWidth(size int) int {
	return bits.Len(uint(size - 1))
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ReadOnly = append([]bool(nil), c.ReadOnly...)
	clone.ResetValues = append([]byte(nil), c.ResetValues...)
	return &clone
}

// NumChunks returns the number of address-decoded chunks.
func (c *Config) NumChunks() int {
	return (c.Size + c.DataWidth - 1) / c.DataWidth
}

// readOnlyMask returns the mask normalized to length Size.
func (c *Config) readOnlyMask() []bool {
	if len(c.ReadOnly) == c.Size {
		return c.ReadOnly
	}
	return make([]bool, c.Size)
}

// resetValues returns the reset defaults normalized to length Size.
func (c *Config) resetValues() []byte {
	if len(c.ResetValues) == c.Size {
		return c.ResetValues
	}
	return make([]byte, c.Size)
}

// allows applies the protection gate to a request's attributes.
func (c *Config) allows(p bus.Prot) bool {
	if c.PrivilegedOnly && !p.Privileged {
		return false
	}
	if c.SecureOnly && !p.Secure {
		return false
	}
	return true
}
