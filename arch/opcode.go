// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

// Known opcodes.
const (
	CLS = iota
	RET

	JP
	CALL
	JPV0

	SE
	SNE
	SER
	SNER
	SKP
	SKNP

	LD
	LDR
	LDI
	LDDT
	LDK
	SETDT
	SETST
	LDF
	LDB
	STORE
	LOAD

	ADD
	ADDR
	ADDI
	OR
	AND
	XOR
	SUB
	SUBN
	SHR
	SHL
	RND

	DRW
)

// Decode returns the opcode for the given instruction word.
// The leading nibble selects an instruction family. Families 0x0, 0x8,
// 0xE and 0xF are further selected by their trailing byte or nibble.
// Returns false if the word does not encode a known instruction.
func Decode(word uint16) (int, bool) {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return CLS, true
		case 0x00ee:
			return RET, true
		}
	case 0x1:
		return JP, true
	case 0x2:
		return CALL, true
	case 0x3:
		return SE, true
	case 0x4:
		return SNE, true
	case 0x5:
		if word&0xf == 0 {
			return SER, true
		}
	case 0x6:
		return LD, true
	case 0x7:
		return ADD, true
	case 0x8:
		switch word & 0xf {
		case 0x0:
			return LDR, true
		case 0x1:
			return OR, true
		case 0x2:
			return AND, true
		case 0x3:
			return XOR, true
		case 0x4:
			return ADDR, true
		case 0x5:
			return SUB, true
		case 0x6:
			return SHR, true
		case 0x7:
			return SUBN, true
		case 0xe:
			return SHL, true
		}
	case 0x9:
		if word&0xf == 0 {
			return SNER, true
		}
	case 0xa:
		return LDI, true
	case 0xb:
		return JPV0, true
	case 0xc:
		return RND, true
	case 0xd:
		return DRW, true
	case 0xe:
		switch word & 0xff {
		case 0x9e:
			return SKP, true
		case 0xa1:
			return SKNP, true
		}
	case 0xf:
		switch word & 0xff {
		case 0x07:
			return LDDT, true
		case 0x0a:
			return LDK, true
		case 0x15:
			return SETDT, true
		case 0x18:
			return SETST, true
		case 0x1e:
			return ADDI, true
		case 0x29:
			return LDF, true
		case 0x33:
			return LDB, true
		case 0x55:
			return STORE, true
		case 0x65:
			return LOAD, true
		}
	}

	return 0, false
}

// Name returns the mnemonic for the given opcode.
// Several opcodes share a mnemonic and are told apart by their operands.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true

	case JP, JPV0:
		return "JP", true
	case CALL:
		return "CALL", true

	case SE, SER:
		return "SE", true
	case SNE, SNER:
		return "SNE", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true

	case LD, LDR, LDI, LDDT, LDK, SETDT, SETST, LDF, LDB, STORE, LOAD:
		return "LD", true

	case ADD, ADDR, ADDI:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SUBN:
		return "SUBN", true
	case SHR:
		return "SHR", true
	case SHL:
		return "SHL", true
	case RND:
		return "RND", true

	case DRW:
		return "DRW", true
	}

	return "", false
}

// Layout returns the operand layout for the given opcode.
// Returns -1 if the opcode is not recognized.
func Layout(opcode int) OperandLayout {
	switch opcode {
	case CLS, RET:
		return None
	case JP, CALL:
		return Addr
	case LDI:
		return IAddr
	case JPV0:
		return V0Addr
	case SE, SNE, LD, ADD, RND:
		return RegByte
	case SER, SNER, LDR, OR, AND, XOR, ADDR, SUB, SUBN:
		return RegReg
	case SHR, SHL, SKP, SKNP:
		return Reg
	case DRW:
		return RegRegNibble
	case LDDT:
		return RegDT
	case LDK:
		return RegKey
	case SETDT:
		return DTReg
	case SETST:
		return STReg
	case ADDI:
		return IReg
	case LDF:
		return FontReg
	case LDB:
		return BCDReg
	case STORE:
		return MemReg
	case LOAD:
		return RegMem
	}
	return -1
}
