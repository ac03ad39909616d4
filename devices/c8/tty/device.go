// Package tty implements a terminal front end: it renders the framebuffer
// with block characters and reads keypad input from raw stdin.
package tty

import (
	"bufio"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/display"
	"github.com/hexaflex/chip8/devices/c8/keymap"
)

// HoldTime defines how long a key counts as pressed after its character was
// read. Terminals do not report key releases; auto-repeat keeps a held key
// alive.
const HoldTime = time.Millisecond * 150

// Control characters which end the session.
const (
	ctrlC  = 0x03
	escape = 0x1b
)

// Command is a host command typed on the terminal.
type Command int

// Known commands and the keys which trigger them.
const (
	TogglePause Command = iota // p
	SingleStep                 // n
)

// Device defines all internal doodads for the terminal.
type Device struct {
	m       sync.Mutex
	in      io.Reader
	out     *bufio.Writer
	state   *term.State      // Terminal state to restore on shutdown.
	pressed [16]time.Time    // Time each key was last seen.
	now     func() time.Time // Clock used to expire key presses.
	cmds    chan Command     // Host commands, dropped if nobody is listening.
	quit    chan struct{}    // Closed when the user asks to quit.
	done    chan struct{}    // Closed when the input reader has returned.
	once    sync.Once
}

var _ devices.Device = &Device{}

// New creates a new device reading keys from in and rendering to out.
func New(in io.Reader, out io.Writer) *Device {
	return &Device{
		in:   in,
		out:  bufio.NewWriter(out),
		now:  time.Now,
		cmds: make(chan Command, 8),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0005)
}

// Startup switches the terminal to raw mode, if in is a terminal,
// and starts reading keys.
func (d *Device) Startup() error {
	d.quit = make(chan struct{})
	d.done = make(chan struct{})
	d.once = sync.Once{}
	d.pressed = [16]time.Time{}

	if fd, ok := terminalFd(d.in); ok {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		d.state = state

		if w, h, err := term.GetSize(fd); err == nil && (w < display.Width || h < display.Height/2+1) {
			log.Printf("%s terminal is %dx%d; %dx%d is needed to show the whole display",
				d.ID(), w, h, display.Width, display.Height/2+1)
		}
	}

	// Clear screen and hide the cursor.
	d.out.WriteString("\x1b[2J\x1b[?25l")
	d.out.Flush()

	go d.read()
	return nil
}

// Shutdown restores the terminal.
//
// The input reader may stay blocked in a read until the next key arrives;
// its results are discarded.
func (d *Device) Shutdown() error {
	d.out.WriteString("\x1b[?25h\r\n")
	d.out.Flush()

	if d.state == nil {
		return nil
	}

	fd, _ := terminalFd(d.in)
	err := term.Restore(fd, d.state)
	d.state = nil
	return err
}

// Quit returns a channel which is closed when the user presses ESC or ^C,
// or when the input stream ends.
func (d *Device) Quit() <-chan struct{} {
	return d.quit
}

// Commands returns the channel on which host commands are delivered.
func (d *Device) Commands() <-chan Command {
	return d.cmds
}

// Update copies key state into the machine and renders the display if needed.
func (d *Device) Update(m devices.Machine) {
	now := d.now()

	d.m.Lock()
	for key, t := range d.pressed {
		m.SetKey(key, !t.IsZero() && now.Sub(t) < HoldTime)
	}
	d.m.Unlock()

	if m.Redraw() {
		Render(d.out, m.Display())
		d.out.Flush()
		m.ClearRedraw()
	}
}

// read records key presses until the input ends.
func (d *Device) read() {
	defer close(d.done)
	defer d.stop()

	var buf [1]byte
	for {
		if _, err := d.in.Read(buf[:]); err != nil {
			return
		}

		switch b := buf[0]; b {
		case ctrlC, escape:
			return
		case 'p', 'P':
			d.command(TogglePause)
		case 'n', 'N':
			d.command(SingleStep)
		default:
			if key := keymap.Index(rune(b)); key > -1 {
				d.m.Lock()
				d.pressed[key] = d.now()
				d.m.Unlock()
			}
		}
	}
}

func (d *Device) command(c Command) {
	select {
	case d.cmds <- c:
	default:
	}
}

func (d *Device) stop() {
	d.once.Do(func() { close(d.quit) })
}

// Render writes the framebuffer to w, two pixel rows per text line.
// The cursor is moved to the top left corner first.
func Render(w io.Writer, fb *display.Framebuffer) {
	line := make([]rune, 0, display.Width)
	io.WriteString(w, "\x1b[H")

	for y := 0; y < display.Height; y += 2 {
		line = line[:0]

		for x := 0; x < display.Width; x++ {
			top := fb.Pixel(x, y) != display.Off
			bottom := fb.Pixel(x, y+1) != display.Off

			switch {
			case top && bottom:
				line = append(line, '█')
			case top:
				line = append(line, '▀')
			case bottom:
				line = append(line, '▄')
			default:
				line = append(line, ' ')
			}
		}

		io.WriteString(w, string(line)+"\r\n")
	}
}

// terminalFd returns the file descriptor for r if it is a terminal.
func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}
