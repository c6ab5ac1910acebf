package sdram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cnbltyasar/sdramsim/sim"
)

var _ = Describe("Builder", func() {
	It("should derive the default profile at 100 MHz", func() {
		c := MakeBuilder().Build("Ctrl")

		p := c.Profile()
		Expect(p.StartupWait).To(Equal(20000))
		Expect(p.ModeWait).To(Equal(2))
		Expect(p.ActivateWait).To(Equal(2))
		Expect(p.RefreshWait).To(Equal(7))
		Expect(p.PrechargeWait).To(Equal(2))
		Expect(p.ReadWait).To(Equal(4))
		Expect(p.WriteWait).To(Equal(6))
		Expect(p.RefreshInterval).To(Equal(771))
		Expect(p.ModeRegister).To(Equal(uint16(0x21)))
	})

	It("should round fractional waits up", func() {
		c := MakeBuilder().
			WithFreq(133 * sim.MHz).
			Build("Ctrl")

		// 20 ns is 2.66 cycles at 133 MHz.
		Expect(c.Profile().ActivateWait).To(Equal(3))
	})

	It("should encode CAS latency 3 in the mode register", func() {
		c := MakeBuilder().WithCASLatency(3).Build("Ctrl")

		Expect(c.Profile().ModeRegister).To(Equal(uint16(0x31)))
	})

	It("should reject CAS latencies other than 2 and 3", func() {
		Expect(func() {
			MakeBuilder().WithCASLatency(4).Build("Ctrl")
		}).To(Panic())
	})

	It("should reject burst lengths that are not powers of two", func() {
		Expect(func() {
			MakeBuilder().WithBurstLength(3).Build("Ctrl")
		}).To(Panic())
	})

	It("should reject bursts that do not cover the caller word", func() {
		Expect(func() {
			MakeBuilder().WithBurstLength(4).Build("Ctrl")
		}).To(Panic())
	})

	It("should reject address geometries that do not add up", func() {
		Expect(func() {
			MakeBuilder().WithColWidth(10).Build("Ctrl")
		}).To(Panic())
	})

	It("should reject refresh intervals that collapse to zero", func() {
		Expect(func() {
			MakeBuilder().WithRefreshIntervalNs(100).Build("Ctrl")
		}).To(Panic())
	})

	It("should start the built controller in the power-up state", func() {
		c := MakeBuilder().Build("Ctrl")

		Expect(c.State()).To(Equal(StateInit))
		Expect(c.Cycle()).To(Equal(uint64(0)))
	})
})
