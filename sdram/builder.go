package sdram

import (
	"fmt"
	"math"

	"github.com/cnbltyasar/sdramsim/sim"
)

// Builder can build new SDRAM controllers.
//
// The defaults describe a common 16Mx16 part: a 32-bit caller interface over
// a 16-bit device with 9 column, 13 row, and 2 bank address bits, CAS latency
// 2, burst length 2, running at 100 MHz.
type Builder struct {
	freq  sim.Freq
	hooks []sim.Hook

	addrWidth       int
	dataWidth       int
	deviceAddrWidth int
	deviceDataWidth int
	colWidth        int
	rowWidth        int
	bankWidth       int

	casLatency  int
	burstLength int

	refreshGuardBand int

	tStartupNs         float64
	tModeRegisterNs    float64
	tRowCycleNs        float64
	tRASToCASNs        float64
	tPrechargeNs       float64
	tWriteRecoveryNs   float64
	tRefreshIntervalNs float64
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		freq:             100 * sim.MHz,
		addrWidth:        23,
		dataWidth:        32,
		deviceAddrWidth:  13,
		deviceDataWidth:  16,
		colWidth:         9,
		rowWidth:         13,
		bankWidth:        2,
		casLatency:       2,
		burstLength:      2,
		refreshGuardBand: 10,

		tStartupNs:         200000,
		tModeRegisterNs:    14,
		tRowCycleNs:        66,
		tRASToCASNs:        20,
		tPrechargeNs:       20,
		tWriteRecoveryNs:   14,
		tRefreshIntervalNs: 7812,
	}
}

// WithFreq sets the clock frequency of the controller.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithAddrWidth sets the width of the caller address bus in bits.
func (b Builder) WithAddrWidth(n int) Builder {
	b.addrWidth = n
	return b
}

// WithDataWidth sets the width of the caller data bus in bits.
func (b Builder) WithDataWidth(n int) Builder {
	b.dataWidth = n
	return b
}

// WithDeviceAddrWidth sets the width of the device address bus in bits.
func (b Builder) WithDeviceAddrWidth(n int) Builder {
	b.deviceAddrWidth = n
	return b
}

// WithDeviceDataWidth sets the width of the device data bus in bits.
func (b Builder) WithDeviceDataWidth(n int) Builder {
	b.deviceDataWidth = n
	return b
}

// WithColWidth sets the number of column address bits.
func (b Builder) WithColWidth(n int) Builder {
	b.colWidth = n
	return b
}

// WithRowWidth sets the number of row address bits.
func (b Builder) WithRowWidth(n int) Builder {
	b.rowWidth = n
	return b
}

// WithBankWidth sets the number of bank select bits.
func (b Builder) WithBankWidth(n int) Builder {
	b.bankWidth = n
	return b
}

// WithCASLatency sets the CAS latency in cycles. Legal values are 2 and 3.
func (b Builder) WithCASLatency(n int) Builder {
	b.casLatency = n
	return b
}

// WithBurstLength sets the number of narrow words transferred per read or
// write command. It must be a power of two.
func (b Builder) WithBurstLength(n int) Builder {
	b.burstLength = n
	return b
}

// WithRefreshGuardBand sets the number of cycles subtracted from the computed
// refresh interval. The guard absorbs jitter so a refresh never arrives a
// cycle late.
func (b Builder) WithRefreshGuardBand(n int) Builder {
	b.refreshGuardBand = n
	return b
}

// WithStartupTimeNs sets the power-up delay before the first command.
func (b Builder) WithStartupTimeNs(ns float64) Builder {
	b.tStartupNs = ns
	return b
}

// WithModeRegisterTimeNs sets the mode-register cycle time.
func (b Builder) WithModeRegisterTimeNs(ns float64) Builder {
	b.tModeRegisterNs = ns
	return b
}

// WithRowCycleTimeNs sets the row cycle time, which also bounds the
// duration of an auto-refresh.
func (b Builder) WithRowCycleTimeNs(ns float64) Builder {
	b.tRowCycleNs = ns
	return b
}

// WithRASToCASDelayNs sets the delay between row activation and the first
// column access.
func (b Builder) WithRASToCASDelayNs(ns float64) Builder {
	b.tRASToCASNs = ns
	return b
}

// WithPrechargeTimeNs sets the row precharge time.
func (b Builder) WithPrechargeTimeNs(ns float64) Builder {
	b.tPrechargeNs = ns
	return b
}

// WithWriteRecoveryTimeNs sets the write recovery time.
func (b Builder) WithWriteRecoveryTimeNs(ns float64) Builder {
	b.tWriteRecoveryNs = ns
	return b
}

// WithRefreshIntervalNs sets the average refresh interval.
func (b Builder) WithRefreshIntervalNs(ns float64) Builder {
	b.tRefreshIntervalNs = ns
	return b
}

// WithAdditionalHooks adds the given hook to the controller.
func (b Builder) WithAdditionalHooks(h sim.Hook) Builder {
	b.hooks = append(b.hooks, h)
	return b
}

// Build builds a new controller. Illegal configurations are rejected here,
// before any cycle executes.
func (b Builder) Build(name string) *Comp {
	b.mustBeValid()

	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		freq:          b.freq,
		cfg: config{
			addrWidth:       b.addrWidth,
			dataWidth:       b.dataWidth,
			deviceAddrWidth: b.deviceAddrWidth,
			deviceDataWidth: b.deviceDataWidth,
			colWidth:        b.colWidth,
			rowWidth:        b.rowWidth,
			bankWidth:       b.bankWidth,
			casLatency:      b.casLatency,
			burstLength:     b.burstLength,
		},
		profile: b.deriveProfile(),
	}

	b.profileMustHavePositiveWaits(c.profile)

	for _, h := range b.hooks {
		c.AcceptHook(h)
	}

	c.Reset()

	return c
}

func (b Builder) mustBeValid() {
	if b.casLatency != 2 && b.casLatency != 3 {
		panic(fmt.Sprintf("CAS latency must be 2 or 3, not %d", b.casLatency))
	}

	if _, isPow2 := log2(uint64(b.burstLength)); !isPow2 {
		panic(fmt.Sprintf(
			"burst length must be a power of two, not %d", b.burstLength))
	}

	if b.burstLength*b.deviceDataWidth != b.dataWidth {
		panic(fmt.Sprintf(
			"burst length %d times device data width %d must equal the "+
				"caller data width %d",
			b.burstLength, b.deviceDataWidth, b.dataWidth))
	}

	if b.colWidth+b.rowWidth+b.bankWidth != b.addrWidth+1 {
		panic(fmt.Sprintf(
			"column, row, and bank widths (%d+%d+%d) must cover the doubled "+
				"caller address (%d+1 bits)",
			b.colWidth, b.rowWidth, b.bankWidth, b.addrWidth))
	}
}

// deriveProfile converts the nanosecond constants into cycle counts at the
// configured frequency.
func (b Builder) deriveProfile() TimingProfile {
	period := 1e9 / float64(b.freq)

	ceil := func(ns float64) int {
		return int(math.Ceil(ns / period))
	}

	p := TimingProfile{
		StartupWait:   ceil(b.tStartupNs),
		ModeWait:      ceil(b.tModeRegisterNs),
		ActivateWait:  ceil(b.tRASToCASNs),
		RefreshWait:   ceil(b.tRowCycleNs),
		PrechargeWait: ceil(b.tPrechargeNs),

		ReadWait: b.casLatency + b.burstLength,
		WriteWait: b.burstLength +
			ceil(b.tWriteRecoveryNs+b.tPrechargeNs),

		RefreshInterval: int(math.Floor(b.tRefreshIntervalNs/period)) -
			b.refreshGuardBand,

		ModeRegister: b.modeRegister(),
	}

	return p
}

// modeRegister encodes burst length, sequential burst ordering, CAS latency,
// and burst write mode into the device mode-register pattern.
func (b Builder) modeRegister() uint16 {
	burstBits, _ := log2(uint64(b.burstLength))

	return uint16(burstBits) | uint16(b.casLatency)<<4
}

func (b Builder) profileMustHavePositiveWaits(p TimingProfile) {
	waits := map[string]int{
		"startup wait":     p.StartupWait,
		"mode load wait":   p.ModeWait,
		"activate wait":    p.ActivateWait,
		"refresh wait":     p.RefreshWait,
		"precharge wait":   p.PrechargeWait,
		"read wait":        p.ReadWait,
		"write wait":       p.WriteWait,
		"refresh interval": p.RefreshInterval,
	}

	for name, w := range waits {
		if w <= 0 {
			panic(fmt.Sprintf(
				"%s collapses to %d cycles at %g Hz, "+
					"the configuration is inconsistent",
				name, w, float64(b.freq)))
		}
	}
}

// log2 returns the log2 of a number. It also returns false if the number is
// not a power of two.
func log2(n uint64) (uint64, bool) {
	oneCount := 0
	onePos := uint64(0)

	for i := uint64(0); i < 64; i++ {
		if n&(1<<i) > 0 {
			onePos = i
			oneCount++
		}
	}

	return onePos, oneCount == 1
}
