// Package axilite provides the signal-level adaptation shim between a
// raw AXI4-Lite-shaped signal bundle and the typed request/response
// structs consumed by the bank controller. The translation is purely
// mechanical; all policy lives in the bank package.
package axilite

import (
	"github.com/sarchlab/regbank/bank"
	"github.com/sarchlab/regbank/bus"
)

// AxPROT bit positions.
const (
	// ProtPrivileged marks a privileged-mode access.
	ProtPrivileged uint8 = 1 << 0
	// ProtNonsecure marks a non-secure access. Note the inverted
	// sense: a clear bit means secure.
	ProtNonsecure uint8 = 1 << 1
	// ProtInstruction marks an instruction fetch. The controller
	// ignores it.
	ProtInstruction uint8 = 1 << 2
)

// xRESP encodings.
const (
	// RespOkay is the OKAY response code.
	RespOkay uint8 = 0b00
	// RespSlvErr is the SLVERR response code.
	RespSlvErr uint8 = 0b10
)

// ReqSignals is the request-side signal bundle driven by the bus
// master, sampled once per cycle.
type ReqSignals struct {
	AWValid bool
	AWAddr  uint64
	AWProt  uint8

	WValid bool
	WData  []byte
	WStrb  []bool

	BReady bool

	ARValid bool
	ARAddr  uint64
	ARProt  uint8

	RReady bool
}

// RspSignals is the response-side signal bundle driven by the
// controller.
type RspSignals struct {
	AWReady bool
	WReady  bool

	BValid bool
	BResp  uint8

	RValid bool
	RData  []byte
	RResp  uint8

	ARReady bool

	// WriteActive and ReadActive are the per-byte activity taps for
	// the direct-load owner; they are not AXI signals.
	WriteActive []bool
	ReadActive  []bool
}

// Shim adapts the signal bundle onto a bank.
type Shim struct {
	bank *bank.Bank
}

// NewShim wraps a bank.
func NewShim(b *bank.Bank) *Shim {
	return &Shim{bank: b}
}

// Bank returns the wrapped bank.
func (s *Shim) Bank() *bank.Bank {
	return s.bank
}

// Tick advances the bank one cycle with the given signal bundle and
// direct-load vector. The write address and data channels are accepted
// jointly: AWREADY and WREADY assert together, and only when both
// AWVALID and WVALID are high.
func (s *Shim) Tick(sig ReqSignals, loads bank.LoadVector) RspSignals {
	in := bank.Inputs{
		WriteValid: sig.AWValid && sig.WValid,
		Write: bus.WriteRequest{
			Addr: sig.AWAddr,
			Prot: unpackProt(sig.AWProt),
		},
		Data: bus.WriteData{
			Lanes:  sig.WData,
			Strobe: sig.WStrb,
		},
		ReadValid: sig.ARValid,
		Read: bus.ReadRequest{
			Addr: sig.ARAddr,
			Prot: unpackProt(sig.ARProt),
		},
		Loads:  loads,
		BReady: sig.BReady,
		RReady: sig.RReady,
	}

	out := s.bank.Tick(in)

	return RspSignals{
		AWReady:     out.WriteAccepted,
		WReady:      out.WriteAccepted,
		BValid:      out.BValid,
		BResp:       packResp(out.BResp),
		RValid:      out.RValid,
		RData:       out.RData,
		RResp:       packResp(out.RResp),
		ARReady:     out.ReadAccepted,
		WriteActive: out.WriteActive,
		ReadActive:  out.ReadActive,
	}
}

// unpackProt converts AxPROT bits to protection attributes.
func unpackProt(p uint8) bus.Prot {
	return bus.Prot{
		Privileged: p&ProtPrivileged != 0,
		Secure:     p&ProtNonsecure == 0,
	}
}

// packResp converts a response status to its xRESP encoding.
func packResp(status bus.Status) uint8 {
	if status == bus.SlaveErr {
		return RespSlvErr
	}
	return RespOkay
}
