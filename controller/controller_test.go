package controller

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/cpu"
)

func TestFrame(t *testing.T) {
	// :loop
	//   ADD V0, $01
	//   JP  loop

	c := New(nil)
	if err := c.Load([]byte{0x70, 0x01, 0x12, 0x00}); err != nil {
		t.Fatal(err)
	}

	if err := c.Frame(4); err != nil {
		t.Fatalf("Frame failure: %v", err)
	}

	if c.CPU().V(0) != 0 {
		t.Fatalf("expected a paused controller not to execute anything")
	}

	c.Start()
	if err := c.Frame(4); err != nil {
		t.Fatalf("Frame failure: %v", err)
	}

	if c.CPU().V(0) != 2 || c.CPU().PC() != 0x200 {
		t.Fatalf("expected 4 steps; have V0=%d PC=%03x", c.CPU().V(0), c.CPU().PC())
	}
}

func TestFrameStopsOnError(t *testing.T) {
	//   LD V0, $01
	//   DW $ffff
	//   LD V1, $01

	c := New(nil)
	c.Load([]byte{0x60, 0x01, 0xff, 0xff, 0x61, 0x01})
	c.Start()

	err := c.Frame(10)
	if !errors.Is(err, cpu.ErrUnknownInstruction) {
		t.Fatalf("expected unknown instruction; have %v", err)
	}

	if c.Running() {
		t.Fatalf("expected controller to stop")
	}

	if c.CPU().V(0) != 1 || c.CPU().V(1) != 0 {
		t.Fatalf("expected execution to end at the failing instruction")
	}
}

func TestFramePausedTimers(t *testing.T) {
	//   LD V0, $05
	//   LD DT, V0
	//   LD ST, V0
	// :loop
	//   JP loop

	c := New(nil)
	dev := &tickDevice{}
	c.Connect(dev)
	c.Load([]byte{0x60, 0x05, 0xf0, 0x15, 0xf0, 0x18, 0x12, 0x06})

	c.Start()
	c.Frame(3)
	c.Stop()

	for i := 0; i < 3; i++ {
		c.Frame(1)
	}

	if c.CPU().DelayTimer() != 5 || c.CPU().SoundTimer() != 5 {
		t.Fatalf("expected timers to be frozen while paused; have DT=%d ST=%d",
			c.CPU().DelayTimer(), c.CPU().SoundTimer())
	}

	if dev.sound != 0 {
		t.Fatalf("expected sound to be silent while paused; have %d", dev.sound)
	}

	c.Start()
	c.Frame(1)

	if c.CPU().DelayTimer() != 4 || dev.sound != 4 {
		t.Fatalf("expected timers to run; have DT=%d ST=%d", c.CPU().DelayTimer(), dev.sound)
	}
}

func TestLoadTooLarge(t *testing.T) {
	c := New(nil)
	c.Load([]byte{0x60, 0x2a})
	c.Step()

	err := c.Load(make([]byte, cpu.MaxProgramSize+1))
	if !errors.Is(err, cpu.ErrProgramTooLarge) {
		t.Fatalf("expected program too large; have %v", err)
	}

	if c.CPU().V(0) != 0x2a || c.CPU().PC() != 0x202 {
		t.Fatalf("expected machine state to be untouched")
	}

	if c.CPU().Memory()[cpu.ProgramAddress] != 0x60 {
		t.Fatalf("expected program memory to be untouched")
	}
}

func TestStartupShutdown(t *testing.T) {
	c := New(nil)
	dev := &tickDevice{}
	c.Connect(dev)

	if err := c.Startup(); err != nil || !dev.started {
		t.Fatalf("expected device to start; have %v", err)
	}

	if err := c.Shutdown(); err != nil || dev.started {
		t.Fatalf("expected device to stop; have %v", err)
	}
}

// tickDevice delivers one timer tick per frame and records the sound timer.
type tickDevice struct {
	sound   byte
	started bool
}

var _ devices.Device = &tickDevice{}

func (d *tickDevice) ID() devices.ID  { return devices.NewID(devices.Builtin, 0x00ff) }
func (d *tickDevice) Startup() error  { d.started = true; return nil }
func (d *tickDevice) Shutdown() error { d.started = false; return nil }

func (d *tickDevice) Update(m devices.Machine) {
	m.TickTimers()
	d.sound = m.SoundTimer()
}
