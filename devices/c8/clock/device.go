// Package clock implements the 60 Hz timer clock.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/hexaflex/chip8/devices"
)

// Frequency is the rate at which the delay and sound timers count down.
const Frequency = 60

// Device counts clock ticks on a background ticker and hands them to the
// machine on the next Update. The machine itself is only ever touched from
// the caller's goroutine.
type Device struct {
	interval time.Duration // Time between ticks.
	pending  atomic.Uint32 // Ticks not yet delivered to the machine.
	endPoll  chan struct{} // poll exit signaller.
	done     chan struct{} // closed when poll has returned.
}

var _ devices.Device = &Device{}

// New creates a new 60 Hz clock.
func New() *Device {
	return &Device{
		interval: time.Second / Frequency,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0001)
}

// Startup starts the ticker.
func (d *Device) Startup() error {
	d.pending.Store(0)
	d.endPoll = make(chan struct{})
	d.done = make(chan struct{})
	go d.poll()
	return nil
}

// Shutdown stops the ticker.
func (d *Device) Shutdown() error {
	if d.endPoll == nil {
		return nil
	}

	close(d.endPoll)
	<-d.done
	d.endPoll = nil
	return nil
}

// Update delivers all pending ticks to the machine.
func (d *Device) Update(m devices.Machine) {
	for n := d.pending.Swap(0); n > 0; n-- {
		m.TickTimers()
	}
}

// poll counts ticks until Shutdown is called. At most one second worth of
// ticks is kept if the host stops calling Update.
func (d *Device) poll() {
	defer close(d.done)

	timer := time.NewTicker(d.interval)
	defer timer.Stop()

	for {
		select {
		case <-d.endPoll:
			return
		case <-timer.C:
			if d.pending.Load() < Frequency {
				d.pending.Add(1)
			}
		}
	}
}
