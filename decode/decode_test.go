package decode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regbank/decode"
)

var _ = Describe("Table", func() {
	Describe("an 11-byte array on a 4-byte bus", func() {
		var table *decode.Table

		BeforeEach(func() {
			table = decode.NewTable(11, 4)
		})

		It("should derive three chunks with the last one clipped", func() {
			Expect(table.NumRanges()).To(Equal(3))
			Expect(table.Range(0)).To(Equal(decode.Range{Index: 0, Start: 0, End: 4}))
			Expect(table.Range(1)).To(Equal(decode.Range{Index: 1, Start: 4, End: 8}))
			Expect(table.Range(2)).To(Equal(decode.Range{Index: 2, Start: 8, End: 11}))
		})

		It("should decode every in-range address to its chunk", func() {
			for addr := uint64(0); addr < 11; addr++ {
				idx, ok := table.Decode(addr)
				Expect(ok).To(BeTrue())
				Expect(idx).To(Equal(int(addr / 4)))
			}
		})

		It("should reject addresses past the array", func() {
			_, ok := table.Decode(11)
			Expect(ok).To(BeFalse())
			_, ok = table.Decode(100)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("an aligned array", func() {
		It("should give every chunk the full bus width", func() {
			table := decode.NewTable(8, 4)
			Expect(table.NumRanges()).To(Equal(2))
			Expect(table.Range(1).End).To(Equal(uint64(8)))
		})
	})

	Describe("an array narrower than the bus", func() {
		It("should build a single short chunk", func() {
			table := decode.NewTable(3, 4)
			Expect(table.NumRanges()).To(Equal(1))
			Expect(table.Range(0)).To(Equal(decode.Range{Index: 0, Start: 0, End: 3}))

			idx, ok := table.Decode(2)
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(0))

			_, ok = table.Decode(3)
			Expect(ok).To(BeFalse())
		})
	})
})
