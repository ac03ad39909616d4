// Package keypad implements the keyboard-driven 16-key keypad.
package keypad

import (
	"log"
	"unicode"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/keymap"
)

// Device polls the host window for keypad key state.
type Device struct {
	window *glfw.Window
	keys   [16]glfw.Key
	state  [16]bool
	trace  bool // Log key transitions?
}

var _ devices.Device = &Device{}

// New creates a new keypad reading from the given window.
func New(window *glfw.Window) *Device {
	var d Device
	d.window = window

	// GLFW key codes for letters and digits match their upper case ASCII values.
	for i, r := range keymap.Layout {
		d.keys[i] = glfw.Key(unicode.ToUpper(r))
	}

	return &d
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0002)
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	d.state = [16]bool{}
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// Update copies the current key state into the machine.
func (d *Device) Update(m devices.Machine) {
	for i, key := range d.keys {
		pressed := d.window.GetKey(key) == glfw.Press

		if pressed != d.state[i] && d.trace {
			log.Printf("%s key %X pressed=%v", d.ID(), i, pressed)
		}

		d.state[i] = pressed
		m.SetKey(i, pressed)
	}
}

// SetTrace enables or disables logging of key transitions.
func (d *Device) SetTrace(v bool) {
	d.trace = v
}
