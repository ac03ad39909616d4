package keymap

import "testing"

func TestIndex(t *testing.T) {
	tests := map[rune]int{
		'x': 0x0, '1': 0x1, '2': 0x2, '3': 0x3,
		'q': 0x4, 'w': 0x5, 'e': 0x6, 'a': 0x7,
		's': 0x8, 'd': 0x9, 'z': 0xa, 'c': 0xb,
		'4': 0xc, 'r': 0xd, 'f': 0xe, 'v': 0xf,
		'Q': 0x4, 'V': 0xf,
		'p': -1, '5': -1, ' ': -1,
	}

	for r, want := range tests {
		if have := Index(r); have != want {
			t.Fatalf("%q: want %d, have %d", r, want, have)
		}
	}
}
