// Package beeper implements the tone generator driven by the sound timer.
package beeper

import (
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Tone properties.
const (
	SampleRate = 44100 // Output sample rate in Hz.
	Pitch      = 440   // Tone frequency in Hz.
	Amplitude  = 0x1000
)

// Device plays a square wave for as long as the sound timer is non-zero.
type Device struct {
	ctx    *oto.Context
	player *oto.Player
	tone   tone
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0004)
}

// Startup opens the audio output.
func (d *Device) Startup() error {
	if d.ctx == nil {
		// oto allows a single context per process; it is kept across restarts.
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to open audio output")
		}
		<-ready
		d.ctx = ctx
	}

	d.tone.active.Store(false)
	d.player = d.ctx.NewPlayer(&d.tone)
	d.player.Play()
	return nil
}

// Shutdown closes the audio output.
func (d *Device) Shutdown() error {
	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	return err
}

// Update turns the tone on or off according to the sound timer.
func (d *Device) Update(m devices.Machine) {
	d.tone.active.Store(m.SoundTimer() > 0)
}

// tone generates signed 16-bit little endian mono samples.
// Read is called from the audio output's goroutine.
type tone struct {
	active atomic.Bool
	phase  int
}

func (t *tone) Read(p []byte) (int, error) {
	const period = SampleRate / Pitch

	n := len(p) &^ 1
	active := t.active.Load()

	for i := 0; i < n; i += 2 {
		var sample int16
		if active {
			sample = Amplitude
			if t.phase < period/2 {
				sample = -Amplitude
			}
		}

		p[i] = byte(sample)
		p[i+1] = byte(uint16(sample) >> 8)
		t.phase = (t.phase + 1) % period
	}

	return n, nil
}
