// Package cpu implements the CHIP-8 execution engine.
package cpu

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices/c8/display"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// RandomSource yields random numbers for the RND instruction.
// It is satisfied by *rand.Rand.
type RandomSource interface {
	// Intn returns a value in the range [0, n).
	Intn(n int) int
}

// State defines the execution state of the CPU.
type State int

// Known execution states.
const (
	Running     State = iota // Instructions execute normally.
	AwaitingKey              // LD Vx, K is polling for a key press.
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CPU implements the runtime.
type CPU struct {
	trace   TraceFunc                // Handler for debug trace output.
	rng     RandomSource             // Random number generator.
	memory  Memory                   // System memory.
	display *display.Framebuffer     // Pixel output.
	instr   Instruction              // Decoded instruction data.
	v       [arch.RegisterCount]byte // General purpose registers.
	stack   [StackDepth]int          // Subroutine return addresses.
	keys    [KeyCount]bool           // Keypad state.
	sp      int                      // Number of entries on the stack.
	i       int                      // Index register.
	pc      int                      // Program counter.
	delay   byte                     // Delay timer.
	sound   byte                     // Sound timer.
	state   State                    // Execution state.
	redraw  bool                     // Has the display changed since it was last presented?
}

// New creates a new CPU in its reset state.
// Optionally with the given debug trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		trace:   trace,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		memory:  make(Memory, MemoryCapacity),
		display: display.New(),
	}

	c.Reset()
	return c
}

// SetRandomSource sets the random number generator used by the RND instruction.
func (c *CPU) SetRandomSource(rng RandomSource) {
	c.rng = rng
}

// Reset returns the machine to its initial state: memory and registers are
// cleared, the font is installed and the display is cleared. The redraw flag
// is set so the empty display is presented.
func (c *CPU) Reset() {
	c.memory.clear()
	c.display.Clear()

	c.instr = Instruction{}
	c.v = [arch.RegisterCount]byte{}
	c.stack = [StackDepth]int{}
	c.keys = [KeyCount]bool{}
	c.sp = 0
	c.i = 0
	c.pc = ProgramAddress
	c.delay = 0
	c.sound = 0
	c.state = Running
	c.redraw = true
}

// LoadProgram copies the given program image into memory at ProgramAddress.
// Other machine state is left untouched; call Reset first for a clean start.
func (c *CPU) LoadProgram(p []byte) error {
	if len(p) > MaxProgramSize {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes exceeds the %d byte limit", len(p), MaxProgramSize)
	}

	c.memory.Write(ProgramAddress, p)
	return nil
}

// TickTimers decrements the delay and sound timers if they are non-zero.
// The host is expected to call this at 60 Hz.
func (c *CPU) TickTimers() {
	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}
}

// Step performs a single fetch-decode-execute cycle.
func (c *CPU) Step() error {
	mem := c.memory
	instr := &c.instr

	err := instr.Decode(mem, c.pc)
	c.pc = (c.pc + 2) & AddressMask

	if err != nil {
		return err
	}

	c.trace(instr)

	v := &c.v
	x, y := instr.X(), instr.Y()

	switch instr.Opcode {
	case arch.CLS:
		c.display.Clear()
		c.redraw = true
	case arch.RET:
		if c.sp == 0 {
			return NewError(instr, ErrStackUnderflow)
		}
		c.sp--
		c.pc = c.stack[c.sp]

	case arch.JP:
		c.pc = instr.NNN()
	case arch.JPV0:
		c.pc = (instr.NNN() + int(v[0])) & AddressMask
	case arch.CALL:
		if c.sp == StackDepth {
			return NewError(instr, ErrStackOverflow)
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = instr.NNN()

	case arch.SE:
		c.skipIf(v[x] == instr.KK())
	case arch.SNE:
		c.skipIf(v[x] != instr.KK())
	case arch.SER:
		c.skipIf(v[x] == v[y])
	case arch.SNER:
		c.skipIf(v[x] != v[y])
	case arch.SKP:
		c.skipIf(c.keys[v[x]&0xf])
	case arch.SKNP:
		c.skipIf(!c.keys[v[x]&0xf])

	case arch.LD:
		v[x] = instr.KK()
	case arch.LDR:
		v[x] = v[y]
	case arch.LDI:
		c.i = instr.NNN()
	case arch.LDDT:
		v[x] = c.delay
	case arch.LDK:
		c.waitKey(x)
	case arch.SETDT:
		c.delay = v[x]
	case arch.SETST:
		c.sound = v[x]
	case arch.LDF:
		c.i = FontAddress + GlyphSize*int(v[x]&0xf)
	case arch.LDB:
		mem.SetU8(c.i, v[x]/100)
		mem.SetU8(c.i+1, (v[x]/10)%10)
		mem.SetU8(c.i+2, v[x]%10)
	case arch.STORE:
		for j := 0; j <= x; j++ {
			mem.SetU8(c.i+j, v[j])
		}
	case arch.LOAD:
		for j := 0; j <= x; j++ {
			v[j] = mem.U8(c.i + j)
		}

	case arch.ADD:
		v[x] += instr.KK()
	case arch.ADDR:
		sum := int(v[x]) + int(v[y])
		v[x] = byte(sum)
		v[arch.VF] = flag(sum > 0xff)
	case arch.ADDI:
		c.i = (c.i + int(v[x])) & AddressMask
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]
	case arch.SUB:
		vx, vy := v[x], v[y]
		v[x] = vx - vy
		v[arch.VF] = flag(vx > vy)
	case arch.SUBN:
		vx, vy := v[x], v[y]
		v[x] = vy - vx
		v[arch.VF] = flag(vy > vx)
	case arch.SHR:
		vx := v[x]
		v[x] = vx >> 1
		v[arch.VF] = vx & 1
	case arch.SHL:
		vx := v[x]
		v[x] = vx << 1
		v[arch.VF] = vx >> 7
	case arch.RND:
		v[x] = byte(c.rng.Intn(0x100)) & instr.KK()

	case arch.DRW:
		c.draw(int(v[x]), int(v[y]), instr.N())
	}

	return nil
}

// draw XORs the n-byte sprite at I onto the display at the given coordinate.
// Pixels falling outside the display are clipped. VF is set if any pixel
// was turned off.
func (c *CPU) draw(x, y, n int) {
	c.redraw = true
	c.v[arch.VF] = 0

	for row := 0; row < n; row++ {
		bits := c.memory.U8(c.i + row)

		for col := 0; col < 8; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			px, py := x+col, y+row
			if !display.InBounds(px, py) {
				continue
			}

			if c.display.Pixel(px, py) == display.Off {
				c.display.SetPixel(px, py, display.On)
			} else {
				c.display.SetPixel(px, py, display.Off)
				c.v[arch.VF] = 1
			}
		}
	}
}

// waitKey stores the lowest pressed key in Vx. If no key is pressed, the
// program counter is rolled back so the instruction runs again next cycle.
func (c *CPU) waitKey(x int) {
	for k, pressed := range c.keys {
		if pressed {
			c.v[x] = byte(k)
			c.state = Running
			return
		}
	}

	c.pc = (c.pc - 2) & AddressMask
	c.state = AwaitingKey
}

// skipIf skips the next instruction if cond is true.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc = (c.pc + 2) & AddressMask
	}
}

// SetKey sets the pressed state of the given key.
func (c *CPU) SetKey(key int, pressed bool) {
	c.keys[key&0xf] = pressed
}

// Key returns true if the given key is pressed.
func (c *CPU) Key(key int) bool {
	return c.keys[key&0xf]
}

// Redraw returns true if the display changed since it was last presented.
func (c *CPU) Redraw() bool {
	return c.redraw
}

// ClearRedraw is called by the presenter once it has consumed the display contents.
func (c *CPU) ClearRedraw() {
	c.redraw = false
}

// RequestRedraw forces the display to be presented again, for instance
// after the host window was resized.
func (c *CPU) RequestRedraw() {
	c.redraw = true
}

// Display returns the framebuffer.
func (c *CPU) Display() *display.Framebuffer {
	return c.display
}

// Memory returns the cpu's internal memory bank. It must not be modified.
func (c *CPU) Memory() Memory {
	return c.memory
}

// V returns the value of register x.
func (c *CPU) V(x int) byte {
	return c.v[x&0xf]
}

// I returns the index register.
func (c *CPU) I() int {
	return c.i
}

// PC returns the program counter.
func (c *CPU) PC() int {
	return c.pc
}

// DelayTimer returns the delay timer.
func (c *CPU) DelayTimer() byte {
	return c.delay
}

// SoundTimer returns the sound timer.
func (c *CPU) SoundTimer() byte {
	return c.sound
}

// SP returns the number of return addresses on the call stack.
func (c *CPU) SP() int {
	return c.sp
}

// State returns the execution state.
func (c *CPU) State() State {
	return c.state
}

// DumpRegisters writes a human-readable overview of the register file to w.
func (c *CPU) DumpRegisters(w io.Writer) error {
	for j, value := range c.v {
		if _, err := fmt.Fprintf(w, "%s %02x\n", arch.RegisterName(j), value); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "I  %03x\nPC %03x\nSP %d\nDT %02x\nST %02x\n%s\n",
		c.i, c.pc, c.sp, c.delay, c.sound, c.state)
	return err
}

// DumpMemory writes a hex dump of the reserved area and the program area to w.
func (c *CPU) DumpMemory(w io.Writer) error {
	_, err := fmt.Fprintf(w, "reserved:\n%s\nprogram:\n%s",
		hex.Dump(c.memory[:ProgramAddress]),
		hex.Dump(c.memory[ProgramAddress:]))
	return err
}

// flag converts v to a VF flag value.
func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
