package arch

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		word   uint16
		opcode int
	}{
		{0x00e0, CLS},
		{0x00ee, RET},
		{0x1234, JP},
		{0x2abc, CALL},
		{0x3a12, SE},
		{0x4a12, SNE},
		{0x5ab0, SER},
		{0x6a12, LD},
		{0x7a12, ADD},
		{0x8ab0, LDR},
		{0x8ab1, OR},
		{0x8ab2, AND},
		{0x8ab3, XOR},
		{0x8ab4, ADDR},
		{0x8ab5, SUB},
		{0x8ab6, SHR},
		{0x8ab7, SUBN},
		{0x8abe, SHL},
		{0x9ab0, SNER},
		{0xa123, LDI},
		{0xb123, JPV0},
		{0xca12, RND},
		{0xdab5, DRW},
		{0xea9e, SKP},
		{0xeaa1, SKNP},
		{0xfa07, LDDT},
		{0xfa0a, LDK},
		{0xfa15, SETDT},
		{0xfa18, SETST},
		{0xfa1e, ADDI},
		{0xfa29, LDF},
		{0xfa33, LDB},
		{0xfa55, STORE},
		{0xfa65, LOAD},
	}

	for _, tt := range tests {
		have, ok := Decode(tt.word)
		if !ok {
			t.Fatalf("%04x: expected a valid opcode", tt.word)
		}
		if have != tt.opcode {
			t.Fatalf("%04x: opcode mismatch; want %d, have %d", tt.word, tt.opcode, have)
		}
		if _, ok := Name(have); !ok {
			t.Fatalf("%04x: opcode %d has no name", tt.word, have)
		}
		if Layout(have) < 0 {
			t.Fatalf("%04x: opcode %d has no layout", tt.word, have)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, word := range []uint16{0x0000, 0x0123, 0x00e1, 0x5ab1, 0x8ab8, 0x8abf, 0x9ab1, 0xea9f, 0xeaa2, 0xfa00, 0xfaff} {
		if opcode, ok := Decode(word); ok {
			t.Fatalf("%04x: expected unknown instruction; have opcode %d", word, opcode)
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00e0, "CLS"},
		{0x1234, "JP 234"},
		{0xb234, "JP V0, 234"},
		{0xa2f0, "LD I, 2F0"},
		{0x6a12, "LD VA, 12"},
		{0x8014, "ADD V0, V1"},
		{0xd125, "DRW V1, V2, 5"},
		{0xf10a, "LD V1, K"},
		{0xf355, "LD [I], V3"},
		{0xf365, "LD V3, [I]"},
		{0xffff, "DW FFFF"},
	}

	for _, tt := range tests {
		if have := Disassemble(tt.word); have != tt.want {
			t.Fatalf("%04x: want %q, have %q", tt.word, tt.want, have)
		}
	}
}

func TestRegisterName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "V0"},
		{9, "V9"},
		{10, "VA"},
		{VF, "VF"},
		{-1, ""},
		{RegisterCount, ""},
	}

	for _, tt := range tests {
		if have := RegisterName(tt.index); have != tt.want {
			t.Fatalf("register %d: want %q, have %q", tt.index, tt.want, have)
		}
	}
}
