package devices

import "github.com/hexaflex/chip8/devices/c8/display"

// Machine defines the parts of the virtual machine visible to peripherals.
type Machine interface {
	// SetKey sets the pressed state of keypad key 0x0 through 0xf.
	SetKey(key int, pressed bool)

	// TickTimers decrements the delay and sound timers.
	TickTimers()

	// SoundTimer returns the current sound timer value.
	SoundTimer() byte

	// Display returns the framebuffer.
	Display() *display.Framebuffer

	// Redraw returns true if the display changed since it was last presented.
	Redraw() bool

	// ClearRedraw marks the display contents as presented.
	ClearRedraw()
}
