// Package controller drives a CPU and its peripherals frame by frame.
package controller

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/cpu"
)

// CPUController controls the execution of a CPU and its peripherals.
type CPUController struct {
	cpu        *cpu.CPU
	devices    devices.Map
	start      time.Time
	cycleCount uint64
	running    bool
}

// New creates a new CPU controller.
func New(trace cpu.TraceFunc) *CPUController {
	return &CPUController{
		cpu: cpu.New(trace),
	}
}

// Connect attaches the given peripherals.
func (c *CPUController) Connect(devs ...devices.Device) {
	for _, dev := range devs {
		c.devices.Connect(dev)
	}
}

// CPU returns the controlled CPU.
func (c *CPUController) CPU() *cpu.CPU {
	return c.cpu
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the current clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	if c.running {
		return float64(c.cycleCount) / time.Since(c.start).Seconds()
	}
	return 0
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Step performs a single exection step. Execution is stopped if it fails.
func (c *CPUController) Step() error {
	c.cycleCount++

	err := c.cpu.Step()
	if err != nil {
		c.setRunning(false)
	}

	return err
}

// Frame updates all peripherals and then, if the CPU is running,
// executes up to the given number of instructions.
//
// While the CPU is paused the timers are frozen: clock ticks delivered
// by peripherals are dropped and the sound timer reads as zero.
func (c *CPUController) Frame(cycles int) error {
	if c.running {
		c.devices.Update(c.cpu)
	} else {
		c.devices.Update(frozen{c.cpu})
	}

	for n := 0; n < cycles && c.running; n++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Load resets the machine and copies the given program into memory.
// The machine is left untouched if the program does not fit.
func (c *CPUController) Load(program []byte) error {
	if len(program) > cpu.MaxProgramSize {
		return errors.Wrapf(cpu.ErrProgramTooLarge, "%d bytes", len(program))
	}

	c.cpu.Reset()
	return c.cpu.LoadProgram(program)
}

// Startup initializes the connected peripherals.
func (c *CPUController) Startup() error {
	return c.devices.Startup()
}

// Shutdown disposes of peripheral resources.
func (c *CPUController) Shutdown() error {
	return c.devices.Shutdown()
}

// setRunning determines of the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}

// frozen is the view peripherals get of a paused CPU.
type frozen struct {
	*cpu.CPU
}

func (frozen) TickTimers()      {}
func (frozen) SoundTimer() byte { return 0 }
