package bank_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regbank/bank"
)

var _ = Describe("Storage", func() {
	var s *bank.Storage

	BeforeEach(func() {
		cfg := bank.DefaultConfig()
		cfg.Size = 4
		cfg.ReadOnly = []bool{true, false, false, false}
		cfg.ResetValues = []byte{0x10, 0x20, 0x30, 0x40}
		s = bank.NewStorage(cfg)
	})

	It("should start at the reset values", func() {
		Expect(s.Snapshot()).To(Equal([]byte{0x10, 0x20, 0x30, 0x40}))
	})

	It("should expose the read-only mask", func() {
		Expect(s.ReadOnly(0)).To(BeTrue())
		Expect(s.ReadOnly(1)).To(BeFalse())
	})

	It("should hold proposals back until Commit", func() {
		s.Propose(1, 0xAA)
		Expect(s.Byte(1)).To(Equal(byte(0x20)))

		s.Commit()
		Expect(s.Byte(1)).To(Equal(byte(0xAA)))
	})

	It("should leave unproposed cells alone on Commit", func() {
		s.Propose(1, 0xAA)
		s.Commit()
		Expect(s.Byte(0)).To(Equal(byte(0x10)))
		Expect(s.Byte(2)).To(Equal(byte(0x30)))
	})

	It("should not re-apply a proposal on a later Commit", func() {
		s.Propose(1, 0xAA)
		s.Commit()
		s.Propose(1, 0xBB)
		s.Commit()
		s.Commit()
		Expect(s.Byte(1)).To(Equal(byte(0xBB)))
	})

	It("should restore reset values and drop proposals on Reset", func() {
		s.Propose(1, 0xAA)
		s.Commit()
		s.Propose(2, 0xCC)
		s.Reset()
		s.Commit()
		Expect(s.Snapshot()).To(Equal([]byte{0x10, 0x20, 0x30, 0x40}))
	})
})
