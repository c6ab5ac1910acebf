package bench

import (
	"github.com/cnbltyasar/sdramsim/device"
	"github.com/cnbltyasar/sdramsim/sdram"
	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
)

// Builder can build testbenches.
type Builder struct {
	engine   sim.Engine
	ctrl     *sdram.Comp
	dev      *device.Comp
	workload []Access
	progress Progress
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the event engine that drives the bench.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithController sets the controller under test.
func (b Builder) WithController(ctrl *sdram.Comp) Builder {
	b.ctrl = ctrl
	return b
}

// WithDevice sets the device model behind the controller.
func (b Builder) WithDevice(dev *device.Comp) Builder {
	b.dev = dev
	return b
}

// WithWorkload sets the accesses to replay.
func (b Builder) WithWorkload(workload []Access) Builder {
	b.workload = workload
	return b
}

// WithProgress sets a receiver that is notified of every completed access.
func (b Builder) WithProgress(p Progress) Builder {
	b.progress = p
	return b
}

// Build builds a testbench. The bench ticks at the controller frequency.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil || b.ctrl == nil || b.dev == nil {
		panic("a bench needs an engine, a controller, and a device")
	}

	c := &Comp{
		ctrl:     b.ctrl,
		dev:      b.dev,
		workload: b.workload,
		nextDQ:   signal.ReleaseDQ(),
		shadow:   make(map[uint32]uint32),
		progress: b.progress,
	}
	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.ctrl.Freq(), c)

	return c
}
