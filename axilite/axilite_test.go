package axilite_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regbank/axilite"
	"github.com/sarchlab/regbank/bank"
)

var _ = Describe("Shim", func() {
	var (
		b    *bank.Bank
		shim *axilite.Shim
	)

	noLoads := bank.LoadVector{}

	BeforeEach(func() {
		cfg := bank.DefaultConfig()
		cfg.Size = 8
		cfg.DataWidth = 4
		var err error
		b, err = bank.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		shim = axilite.NewShim(b)
	})

	It("should complete a write/read round-trip through raw signals", func() {
		out := shim.Tick(axilite.ReqSignals{
			AWValid: true,
			AWAddr:  4,
			WValid:  true,
			WData:   []byte{0xDE, 0xAD, 0xBE, 0xEF},
			WStrb:   []bool{true, true, true, true},
			BReady:  true,
			RReady:  true,
		}, noLoads)
		Expect(out.AWReady).To(BeTrue())
		Expect(out.WReady).To(BeTrue())

		out = shim.Tick(axilite.ReqSignals{
			ARValid: true,
			ARAddr:  4,
			BReady:  true,
			RReady:  true,
		}, noLoads)
		Expect(out.BValid).To(BeTrue())
		Expect(out.BResp).To(Equal(axilite.RespOkay))
		Expect(out.ARReady).To(BeTrue())

		out = shim.Tick(axilite.ReqSignals{BReady: true, RReady: true}, noLoads)
		Expect(out.RValid).To(BeTrue())
		Expect(out.RResp).To(Equal(axilite.RespOkay))
		Expect(out.RData).To(Equal([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	})

	It("should accept address and data only jointly", func() {
		out := shim.Tick(axilite.ReqSignals{
			AWValid: true,
			AWAddr:  0,
			BReady:  true,
			RReady:  true,
		}, noLoads)
		Expect(out.AWReady).To(BeFalse())
		Expect(out.WReady).To(BeFalse())
	})

	It("should report SLVERR for a bad address", func() {
		shim.Tick(axilite.ReqSignals{
			AWValid: true,
			AWAddr:  64,
			WValid:  true,
			WData:   []byte{1, 2, 3, 4},
			WStrb:   []bool{true, true, true, true},
			BReady:  true,
			RReady:  true,
		}, noLoads)

		out := shim.Tick(axilite.ReqSignals{BReady: true, RReady: true}, noLoads)
		Expect(out.BValid).To(BeTrue())
		Expect(out.BResp).To(Equal(axilite.RespSlvErr))
	})

	Describe("AxPROT translation", func() {
		BeforeEach(func() {
			cfg := bank.DefaultConfig()
			cfg.Size = 8
			cfg.DataWidth = 4
			cfg.SecureOnly = true
			var err error
			b, err = bank.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			shim = axilite.NewShim(b)
		})

		It("should treat a clear nonsecure bit as secure", func() {
			shim.Tick(axilite.ReqSignals{
				ARValid: true,
				ARAddr:  0,
				ARProt:  0, // secure by default
				BReady:  true,
				RReady:  true,
			}, noLoads)

			out := shim.Tick(axilite.ReqSignals{BReady: true, RReady: true}, noLoads)
			Expect(out.RValid).To(BeTrue())
			Expect(out.RResp).To(Equal(axilite.RespOkay))
		})

		It("should reject a nonsecure access on a secure-only bank", func() {
			shim.Tick(axilite.ReqSignals{
				ARValid: true,
				ARAddr:  0,
				ARProt:  axilite.ProtNonsecure,
				BReady:  true,
				RReady:  true,
			}, noLoads)

			out := shim.Tick(axilite.ReqSignals{BReady: true, RReady: true}, noLoads)
			Expect(out.RValid).To(BeTrue())
			Expect(out.RResp).To(Equal(axilite.RespSlvErr))
		})
	})
})
