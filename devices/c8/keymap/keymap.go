// Package keymap defines how host keyboard keys map onto the 16-key keypad.
//
// The keypad is laid out as a 4x4 grid on the left side of a QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
package keymap

import "unicode"

// Layout holds the host key for each keypad key 0x0 through 0xf.
const Layout = "x123qweasdzc4rfv"

// Index returns the keypad key for the given host character.
// Returns -1 if the character is not mapped.
func Index(r rune) int {
	r = unicode.ToLower(r)
	for i, c := range Layout {
		if c == r {
			return i
		}
	}
	return -1
}
