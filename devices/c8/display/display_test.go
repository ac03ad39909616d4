package display

import "testing"

func TestSetPixel(t *testing.T) {
	fb := New()
	fb.SetPixel(3, 2, On)

	if fb.Pixel(3, 2) != On {
		t.Fatalf("expected pixel (3, 2) to be on")
	}

	if have := fb.Raw()[2*Width+3]; have != On {
		t.Fatalf("raw view mismatch; want %08x, have %08x", uint32(On), have)
	}

	fb.SetPixel(Width-1, Height-1, On)
	if fb.Raw()[len(fb.Raw())-1] != On {
		t.Fatalf("expected last pixel to be on")
	}
}

func TestClear(t *testing.T) {
	fb := New()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			fb.SetPixel(x, y, On)
		}
	}

	fb.Clear()

	for i, v := range fb.Raw() {
		if v != Off {
			t.Fatalf("pixel %d not cleared: %08x", i, v)
		}
	}
}

func TestRawSize(t *testing.T) {
	fb := New()
	if len(fb.Raw()) != Width*Height {
		t.Fatalf("want %d pixels, have %d", Width*Height, len(fb.Raw()))
	}
	if fb.Pitch() != 256 {
		t.Fatalf("want pitch 256, have %d", fb.Pitch())
	}
}

func TestOutOfRange(t *testing.T) {
	coords := [][2]int{{-1, 0}, {0, -1}, {Width, 0}, {0, Height}}

	for _, c := range coords {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("(%d, %d): expected panic", c[0], c[1])
				}
			}()
			New().Pixel(c[0], c[1])
		}()
	}
}
