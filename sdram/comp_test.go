package sdram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cnbltyasar/sdramsim/sdram/signal"
)

// fastCtrl builds a controller with short timing constants so tests can walk
// through whole operations cycle by cycle. At 100 MHz the profile comes out
// as startup 5, mode 2, activate 2, refresh 3, precharge 2, read 4, write 5,
// refresh interval 50.
func fastCtrl() *Comp {
	return MakeBuilder().
		WithStartupTimeNs(50).
		WithModeRegisterTimeNs(20).
		WithRowCycleTimeNs(30).
		WithRASToCASDelayNs(20).
		WithPrechargeTimeNs(20).
		WithWriteRecoveryTimeNs(10).
		WithRefreshIntervalNs(600).
		Build("Ctrl")
}

func tickN(c *Comp, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// tickToIdle walks a fast controller through the whole power-up sequence.
func tickToIdle(c *Comp) {
	tickN(c, 15)
	ExpectWithOffset(1, c.State()).To(Equal(StateIdle))
}

var _ = Describe("Comp", func() {
	var c *Comp

	BeforeEach(func() {
		c = fastCtrl()
	})

	Context("during power-up", func() {
		It("should deselect with clock-enable low on the reset cycle", func() {
			pins := c.DevicePins()

			Expect(pins.Cmd).To(Equal(signal.CmdKindDeselect))
			Expect(pins.CKE).To(BeFalse())
		})

		It("should issue the power-up commands at the exact cycles", func() {
			var cmds []signal.CommandKind
			for i := 0; i < 14; i++ {
				c.Tick()
				cmds = append(cmds, c.DevicePins().Cmd)
			}

			// Cycles 1..13 after reset.
			Expect(cmds[4]).To(Equal(signal.CmdKindPrecharge))
			Expect(cmds[6]).To(Equal(signal.CmdKindAutoRefresh))
			Expect(cmds[9]).To(Equal(signal.CmdKindAutoRefresh))
			Expect(cmds[12]).To(Equal(signal.CmdKindLoadMode))

			for i, cmd := range cmds {
				if i == 4 || i == 6 || i == 9 || i == 12 {
					continue
				}
				Expect(cmd).To(Equal(signal.CmdKindNoOp))
			}
		})

		It("should raise clock-enable after the reset cycle", func() {
			for i := 0; i < 15; i++ {
				c.Tick()
				Expect(c.DevicePins().CKE).To(BeTrue())
			}
		})

		It("should drive the precharge-all pattern during init", func() {
			tickN(c, 5)
			Expect(c.DevicePins().Cmd).To(Equal(signal.CmdKindPrecharge))
			Expect(c.DevicePins().Address & (1 << 10)).NotTo(BeZero())
		})

		It("should put the mode pattern on the address bus", func() {
			tickN(c, 13)

			Expect(c.State()).To(Equal(StateModeLoad))
			Expect(c.DevicePins().Cmd).To(Equal(signal.CmdKindLoadMode))
			Expect(c.DevicePins().Address).To(Equal(c.Profile().ModeRegister))
		})

		It("should reach idle after the mode load", func() {
			tickToIdle(c)
		})

		It("should ignore requests until idle", func() {
			c.SetRequest(signal.Request{Address: 1, Req: true})

			tickN(c, 14)
			Expect(c.State()).To(Equal(StateModeLoad))
			Expect(c.Response().Ack).To(BeFalse())
		})
	})

	Context("when writing", func() {
		BeforeEach(func() {
			tickToIdle(c)
			c.SetRequest(signal.Request{
				Address:     0x123,
				Data:        0xAABBCCDD,
				WriteEnable: true,
				Req:         true,
			})
		})

		It("should acknowledge for exactly one cycle", func() {
			c.Tick()
			Expect(c.Response().Ack).To(BeTrue())

			c.SetRequest(signal.Request{})
			c.Tick()
			Expect(c.Response().Ack).To(BeFalse())
		})

		It("should activate the doubled row with the activate command", func() {
			c.Tick()

			// Caller 0x123 doubles to device 0x246: column 0x46, row 1.
			pins := c.DevicePins()
			Expect(pins.Cmd).To(Equal(signal.CmdKindActivate))
			Expect(pins.Address).To(Equal(uint16(1)))
			Expect(pins.Bank).To(Equal(uint8(0)))
		})

		It("should issue write with auto-precharge and the column", func() {
			c.Tick()
			c.SetRequest(signal.Request{})
			tickN(c, 2)

			pins := c.DevicePins()
			Expect(c.State()).To(Equal(StateWriting))
			Expect(pins.Cmd).To(Equal(signal.CmdKindWrite))
			Expect(pins.Address).To(Equal(uint16(0x446)))
		})

		It("should drive the wide word upper half first", func() {
			c.Tick()
			c.SetRequest(signal.Request{})
			tickN(c, 2)

			Expect(c.DevicePins().DQ.IsDriven()).To(BeTrue())
			Expect(c.DevicePins().DQ.Word()).To(Equal(uint16(0xAABB)))

			c.Tick()
			Expect(c.DevicePins().DQ.IsDriven()).To(BeTrue())
			Expect(c.DevicePins().DQ.Word()).To(Equal(uint16(0xCCDD)))
		})

		It("should release the bus for the recovery cycles", func() {
			c.Tick()
			c.SetRequest(signal.Request{})
			tickN(c, 4)

			Expect(c.State()).To(Equal(StateWriting))
			Expect(c.DevicePins().DQ.IsDriven()).To(BeFalse())
		})

		It("should return to idle when the write completes", func() {
			c.Tick()
			c.SetRequest(signal.Request{})
			tickN(c, 7)

			Expect(c.State()).To(Equal(StateIdle))
		})

		It("should keep the latched request when the pins change", func() {
			c.Tick()
			c.SetRequest(signal.Request{Address: 0x7FFFFF, Data: 0x11111111})
			tickN(c, 2)

			Expect(c.DevicePins().Address).To(Equal(uint16(0x446)))
			Expect(c.DevicePins().DQ.Word()).To(Equal(uint16(0xAABB)))
		})
	})

	Context("when reading", func() {
		BeforeEach(func() {
			tickToIdle(c)
			c.SetRequest(signal.Request{Address: 0x123, Req: true})

			c.Tick()
			c.SetRequest(signal.Request{})
			c.Tick()
		})

		It("should issue read with auto-precharge and the column", func() {
			c.Tick()

			pins := c.DevicePins()
			Expect(c.State()).To(Equal(StateReading))
			Expect(pins.Cmd).To(Equal(signal.CmdKindRead))
			Expect(pins.Address).To(Equal(uint16(0x446)))
			Expect(pins.DQ.IsDriven()).To(BeFalse())
		})

		It("should assemble sampled words upper half first", func() {
			tickN(c, 2)

			c.SetDQ(signal.DriveDQ(0xAABB))
			c.Tick()
			c.SetDQ(signal.DriveDQ(0xCCDD))
			c.Tick()
			c.SetDQ(signal.ReleaseDQ())

			Expect(c.Response().Valid).To(BeFalse())

			c.Tick()
			Expect(c.Response().Valid).To(BeTrue())
			Expect(c.Response().Data).To(Equal(uint32(0xAABBCCDD)))
			Expect(c.State()).To(Equal(StateIdle))
		})

		It("should pulse valid for exactly one cycle", func() {
			tickN(c, 2)
			c.SetDQ(signal.DriveDQ(0xAABB))
			c.Tick()
			c.SetDQ(signal.DriveDQ(0xCCDD))
			c.Tick()
			c.SetDQ(signal.ReleaseDQ())
			c.Tick()

			Expect(c.Response().Valid).To(BeTrue())

			c.Tick()
			Expect(c.Response().Valid).To(BeFalse())
		})

		It("should not leak the previous read into the next one", func() {
			tickN(c, 2)
			c.SetDQ(signal.DriveDQ(0xAABB))
			c.Tick()
			c.SetDQ(signal.DriveDQ(0xCCDD))
			c.Tick()
			c.SetDQ(signal.ReleaseDQ())
			c.Tick()

			c.SetRequest(signal.Request{Address: 0x124, Req: true})
			c.Tick()
			c.SetRequest(signal.Request{})
			tickN(c, 3)

			c.SetDQ(signal.DriveDQ(0x1111))
			c.Tick()
			c.SetDQ(signal.DriveDQ(0x2222))
			c.Tick()
			c.SetDQ(signal.ReleaseDQ())
			c.Tick()

			Expect(c.Response().Valid).To(BeTrue())
			Expect(c.Response().Data).To(Equal(uint32(0x11112222)))
		})
	})

	Context("when refreshing", func() {
		BeforeEach(func() {
			tickToIdle(c)
		})

		It("should refresh before starting a pending request", func() {
			c.refreshCnt = c.profile.RefreshInterval - 1
			c.SetRequest(signal.Request{Address: 1, Req: true})

			c.Tick()
			Expect(c.State()).To(Equal(StateRefreshing))
			Expect(c.DevicePins().Cmd).To(Equal(signal.CmdKindAutoRefresh))
			Expect(c.Response().Ack).To(BeFalse())
		})

		It("should start the held request right after the refresh", func() {
			c.refreshCnt = c.profile.RefreshInterval - 1
			c.SetRequest(signal.Request{Address: 1, Req: true})

			tickN(c, 4)
			Expect(c.State()).To(Equal(StateRowActive))
			Expect(c.DevicePins().Cmd).To(Equal(signal.CmdKindActivate))
			Expect(c.Response().Ack).To(BeTrue())
		})

		It("should return to idle when nothing is pending", func() {
			c.refreshCnt = c.profile.RefreshInterval - 1

			tickN(c, 4)
			Expect(c.State()).To(Equal(StateIdle))
		})

		It("should refresh periodically while idle", func() {
			var issueCycles []uint64
			for i := 0; i < 200; i++ {
				c.Tick()
				if c.DevicePins().Cmd == signal.CmdKindAutoRefresh {
					issueCycles = append(issueCycles, c.Cycle())
				}
			}

			Expect(len(issueCycles)).To(BeNumerically(">=", 3))
			for i := 1; i < len(issueCycles); i++ {
				gap := issueCycles[i] - issueCycles[i-1]
				Expect(gap).To(Equal(uint64(
					c.profile.RefreshInterval + c.profile.RefreshWait)))
			}
		})
	})

	Context("on reset", func() {
		It("should abort an in-flight write", func() {
			tickToIdle(c)
			c.SetRequest(signal.Request{
				Address: 0x123, Data: 1, WriteEnable: true, Req: true})
			tickN(c, 3)
			Expect(c.State()).To(Equal(StateWriting))

			c.Reset()

			Expect(c.State()).To(Equal(StateInit))
			Expect(c.Cycle()).To(Equal(uint64(0)))
			Expect(c.DevicePins().Cmd).To(Equal(signal.CmdKindDeselect))
			Expect(c.DevicePins().CKE).To(BeFalse())
			Expect(c.DevicePins().DQ.IsDriven()).To(BeFalse())
		})
	})
})
