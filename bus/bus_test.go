package bus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regbank/bus"
)

var _ = Describe("Status", func() {
	It("should print protocol names", func() {
		Expect(bus.OK.String()).To(Equal("OK"))
		Expect(bus.SlaveErr.String()).To(Equal("SLVERR"))
		Expect(bus.Status(7).String()).To(Equal("undefined"))
	})
})

var _ = Describe("SentinelData", func() {
	It("should lay the pattern out little-endian", func() {
		Expect(bus.SentinelData(4)).To(Equal([]byte{0x55, 0x1E, 0x5E, 0xBA}))
	})

	It("should repeat the pattern on wider buses", func() {
		data := bus.SentinelData(8)
		Expect(data).To(Equal([]byte{
			0x55, 0x1E, 0x5E, 0xBA,
			0x55, 0x1E, 0x5E, 0xBA,
		}))
	})

	It("should truncate the pattern on narrower buses", func() {
		Expect(bus.SentinelData(2)).To(Equal([]byte{0x55, 0x1E}))
	})
})

var _ = Describe("FullStrobe", func() {
	It("should assert every lane", func() {
		Expect(bus.FullStrobe(4)).To(Equal([]bool{true, true, true, true}))
	})
})
