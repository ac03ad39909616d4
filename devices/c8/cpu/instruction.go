package cpu

import (
	"fmt"

	"github.com/hexaflex/chip8/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int    // Instruction address.
	Word   uint16 // Raw instruction word.
	Opcode int    // Instruction opcode.
}

// Decode decodes the instruction at the given address.
func (i *Instruction) Decode(m Memory, addr int) error {
	i.IP = addr
	i.Word = m.U16(addr)

	opcode, ok := arch.Decode(i.Word)
	if !ok {
		return NewError(i, ErrUnknownInstruction)
	}

	i.Opcode = opcode
	return nil
}

// X returns the first register operand.
func (i *Instruction) X() int { return arch.X(i.Word) }

// Y returns the second register operand.
func (i *Instruction) Y() int { return arch.Y(i.Word) }

// N returns the 4-bit immediate operand.
func (i *Instruction) N() int { return arch.N(i.Word) }

// KK returns the 8-bit immediate operand.
func (i *Instruction) KK() byte { return byte(arch.KK(i.Word)) }

// NNN returns the 12-bit address operand.
func (i *Instruction) NNN() int { return arch.NNN(i.Word) }

func (i *Instruction) String() string {
	return fmt.Sprintf("%03x %04x  %s", i.IP, i.Word, arch.Disassemble(i.Word))
}
