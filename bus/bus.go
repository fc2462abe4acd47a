// Package bus provides the request/response data types for the
// register-file bus protocol. All transactions are single-beat with at
// most one outstanding transaction per channel.
package bus

// Status represents a transaction response status.
type Status uint8

// Response status codes.
const (
	// OK indicates the transaction completed successfully.
	OK Status = iota
	// SlaveErr indicates the slave rejected the transaction: the
	// address did not decode, the protection gate failed, or the
	// targeted chunk is entirely read-only.
	SlaveErr
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case SlaveErr:
		return "SLVERR"
	}
	return "undefined"
}

// ErrReadSentinel is the 32-bit pattern returned on the read-data lanes
// when a read fails to decode or is rejected by the protection gate.
// For bus widths other than 4 bytes the pattern repeats little-endian
// across lanes.
const ErrReadSentinel uint32 = 0xBA5E1E55

// SentinelData returns the error payload for a data channel of the
// given width in bytes. Lane j carries byte j mod 4 of ErrReadSentinel.
func SentinelData(width int) []byte {
	data := make([]byte, width)
	for j := range data {
		data[j] = byte(ErrReadSentinel >> (8 * (j % 4)))
	}
	return data
}

// Prot carries the protection attributes presented with every request.
type Prot struct {
	// Privileged is true for privileged-mode accesses.
	Privileged bool
	// Secure is true for secure-world accesses.
	Secure bool
}

// WriteRequest is the write address channel payload.
type WriteRequest struct {
	// Addr is the byte address of the first lane of the target chunk.
	Addr uint64
	// Prot holds the protection attributes of the request.
	Prot Prot
}

// WriteData is the write data channel payload. The address and data
// halves of a write are presented jointly; the controller never accepts
// one without the other.
type WriteData struct {
	// Lanes holds one byte per data lane.
	Lanes []byte
	// Strobe has one bit per lane; only strobed lanes carry valid data.
	Strobe []bool
}

// ReadRequest is the read address channel payload.
type ReadRequest struct {
	// Addr is the byte address of the first lane of the target chunk.
	Addr uint64
	// Prot holds the protection attributes of the request.
	Prot Prot
}

// Response is a read or write response. Write responses carry a nil
// Data slice.
type Response struct {
	// Status is the completion status of the transaction.
	Status Status
	// Data holds the read payload, one byte per lane.
	Data []byte
}

// FullStrobe returns a strobe vector with every lane asserted.
func FullStrobe(width int) []bool {
	strobe := make([]bool, width)
	for i := range strobe {
		strobe[i] = true
	}
	return strobe
}
