package cpu

const (
	MemoryCapacity = 0x1000                          // Size of addressable memory.
	AddressMask    = MemoryCapacity - 1              // Mask applied to every memory access.
	ProgramAddress = 0x200                           // Load address of user programs; everything below is reserved.
	MaxProgramSize = MemoryCapacity - ProgramAddress // Largest program image that fits in memory.
	FontAddress    = 0x050                           // Location of the built-in hexadecimal font.
	GlyphSize      = 5                               // Size of a single font glyph in bytes.
)

const (
	StackDepth = 16 // Maximum number of nested subroutine calls.
	KeyCount   = 16 // Number of keys on the keypad.
)

// font defines the built-in glyphs for the hexadecimal digits 0 through F.
// Each glyph is 4 pixels wide and 5 rows high.
var font = [16 * GlyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Font returns a copy of the built-in font glyphs.
func Font() []byte {
	p := make([]byte, len(font))
	copy(p, font[:])
	return p
}

// Memory defines the system's memory bank.
// Addresses wrap around at MemoryCapacity.
type Memory []byte

// SetU8 sets the 8-bit value at the given address.
func (m Memory) SetU8(addr int, value byte) {
	m[addr&AddressMask] = value
}

// U8 returns the 8-bit value at the given address.
func (m Memory) U8(addr int) byte {
	return m[addr&AddressMask]
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr int) uint16 {
	return uint16(m.U8(addr))<<8 | uint16(m.U8(addr+1))
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(address int, p []byte) {
	copy(m[address:], p)
}

// clear zeroes the memory and installs the font.
func (m Memory) clear() {
	for i := range m {
		m[i] = 0
	}
	m.Write(FontAddress, font[:])
}
