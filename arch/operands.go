package arch

import "fmt"

// OperandLayout describes which operand fields of an instruction word
// an opcode uses and how they are written in assembly notation.
type OperandLayout int

// Known operand layouts.
const (
	None         OperandLayout = iota // CLS
	Addr                              // JP nnn
	V0Addr                            // JP V0, nnn
	IAddr                             // LD I, nnn
	Reg                               // SHR Vx
	RegByte                           // LD Vx, kk
	RegReg                            // ADD Vx, Vy
	RegRegNibble                      // DRW Vx, Vy, n
	RegDT                             // LD Vx, DT
	RegKey                            // LD Vx, K
	DTReg                             // LD DT, Vx
	STReg                             // LD ST, Vx
	IReg                              // ADD I, Vx
	FontReg                           // LD F, Vx
	BCDReg                            // LD B, Vx
	MemReg                            // LD [I], Vx
	RegMem                            // LD Vx, [I]
)

// Operand field extractors for a raw instruction word.
func X(word uint16) int   { return int(word>>8) & 0xf }
func Y(word uint16) int   { return int(word>>4) & 0xf }
func N(word uint16) int   { return int(word) & 0xf }
func KK(word uint16) int  { return int(word) & 0xff }
func NNN(word uint16) int { return int(word) & 0xfff }

// Disassemble returns the assembly notation for the given instruction word.
// Unknown words are rendered as a data directive.
func Disassemble(word uint16) string {
	opcode, ok := Decode(word)
	if !ok {
		return fmt.Sprintf("DW %04X", word)
	}

	name, _ := Name(opcode)
	x, y := RegisterName(X(word)), RegisterName(Y(word))

	switch Layout(opcode) {
	case Addr:
		return fmt.Sprintf("%s %03X", name, NNN(word))
	case V0Addr:
		return fmt.Sprintf("%s V0, %03X", name, NNN(word))
	case IAddr:
		return fmt.Sprintf("%s I, %03X", name, NNN(word))
	case Reg:
		return fmt.Sprintf("%s %s", name, x)
	case RegByte:
		return fmt.Sprintf("%s %s, %02X", name, x, KK(word))
	case RegReg:
		return fmt.Sprintf("%s %s, %s", name, x, y)
	case RegRegNibble:
		return fmt.Sprintf("%s %s, %s, %X", name, x, y, N(word))
	case RegDT:
		return fmt.Sprintf("%s %s, DT", name, x)
	case RegKey:
		return fmt.Sprintf("%s %s, K", name, x)
	case DTReg:
		return fmt.Sprintf("%s DT, %s", name, x)
	case STReg:
		return fmt.Sprintf("%s ST, %s", name, x)
	case IReg:
		return fmt.Sprintf("%s I, %s", name, x)
	case FontReg:
		return fmt.Sprintf("%s F, %s", name, x)
	case BCDReg:
		return fmt.Sprintf("%s B, %s", name, x)
	case MemReg:
		return fmt.Sprintf("%s [I], %s", name, x)
	case RegMem:
		return fmt.Sprintf("%s %s, [I]", name, x)
	}

	return name
}
