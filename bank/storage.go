package bank

// Storage is the register byte array. Writes are staged during a cycle
// with Propose and become visible only after Commit, so every reader
// within a cycle observes the array as committed at the previous tick
// boundary. Read-only enforcement is write-controller policy, not a
// storage property: the direct-load path legitimately writes read-only
// cells through the same Propose interface.
type Storage struct {
	values      []byte
	resetValues []byte
	readOnly    []bool

	proposed      []byte
	proposedValid []bool
}

// NewStorage builds the array from the validated config, with every
// cell holding its reset value.
func NewStorage(cfg *Config) *Storage {
	s := &Storage{
		values:        make([]byte, cfg.Size),
		resetValues:   append([]byte(nil), cfg.resetValues()...),
		readOnly:      append([]bool(nil), cfg.readOnlyMask()...),
		proposed:      make([]byte, cfg.Size),
		proposedValid: make([]bool, cfg.Size),
	}
	copy(s.values, s.resetValues)
	return s
}

// Size returns the number of register bytes.
func (s *Storage) Size() int {
	return len(s.values)
}

// Byte returns the committed value of cell i.
func (s *Storage) Byte(i int) byte {
	return s.values[i]
}

// Snapshot returns a copy of the committed array.
func (s *Storage) Snapshot() []byte {
	return append([]byte(nil), s.values...)
}

// ReadOnly reports whether cell i is bus-write protected.
func (s *Storage) ReadOnly(i int) bool {
	return s.readOnly[i]
}

// Propose stages value for cell i. The cell keeps its committed value
// until the next Commit. At most one writer proposes to a given cell
// per cycle; a later proposal in the same cycle would overwrite an
// earlier one, which the write controller's precedence rules prevent.
func (s *Storage) Propose(i int, value byte) {
	s.proposed[i] = value
	s.proposedValid[i] = true
}

// Commit applies all staged proposals at the tick boundary. Cells
// without a proposal retain their prior value.
func (s *Storage) Commit() {
	for i, ok := range s.proposedValid {
		if ok {
			s.values[i] = s.proposed[i]
			s.proposedValid[i] = false
		}
	}
}

// Reset restores every cell to its reset value and drops any staged
// proposals.
func (s *Storage) Reset() {
	copy(s.values, s.resetValues)
	for i := range s.proposedValid {
		s.proposedValid[i] = false
	}
}
