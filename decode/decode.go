// Package decode provides the static address-range decoder that maps a
// bus address to a register chunk index.
package decode

// Range is one entry of the address map: the half-open byte-address
// interval [Start, End) belonging to chunk Index.
type Range struct {
	// Index is the chunk number this range decodes to.
	Index int
	// Start is the first byte address covered by the range.
	Start uint64
	// End is one past the last byte address covered by the range.
	End uint64
}

// Contains reports whether addr falls inside the range.
func (r Range) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// Table is an ordered set of non-overlapping address ranges. Ranges are
// derived once from the array geometry and never change.
type Table struct {
	ranges []Range
}

// NewTable builds the chunk address map for an array of size bytes on a
// data channel width lanes wide. Chunk i covers [i*width, (i+1)*width),
// clipped at size, so the last chunk of a non-aligned array is shorter
// than the bus width.
func NewTable(size, width int) *Table {
	numChunks := (size + width - 1) / width
	ranges := make([]Range, numChunks)
	for i := 0; i < numChunks; i++ {
		end := uint64((i + 1) * width)
		if end > uint64(size) {
			end = uint64(size)
		}
		ranges[i] = Range{
			Index: i,
			Start: uint64(i * width),
			End:   end,
		}
	}
	return &Table{ranges: ranges}
}

// NumRanges returns the number of configured ranges.
func (t *Table) NumRanges() int {
	return len(t.ranges)
}

// Range returns the i-th configured range.
func (t *Table) Range(i int) Range {
	return t.ranges[i]
}

// Decode maps addr to its chunk index. ok is false when the address
// falls outside every configured range; the index is meaningless in
// that case. Ranges are non-overlapping by construction, so at most one
// can match.
func (t *Table) Decode(addr uint64) (index int, ok bool) {
	for _, r := range t.ranges {
		if r.Contains(addr) {
			return r.Index, true
		}
	}
	return 0, false
}
