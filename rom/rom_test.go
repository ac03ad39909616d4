package rom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/c8/cpu"
)

func TestRead(t *testing.T) {
	want := []byte{0x00, 0xe0, 0x12, 0x02}

	have, err := Read(bytes.NewReader(want))
	if err != nil {
		t.Fatalf("Read failure: %v", err)
	}

	if !bytes.Equal(have, want) {
		t.Fatalf("data mismatch:\nwant: %x\nhave: %x", want, have)
	}
}

func TestReadLimit(t *testing.T) {
	if _, err := Read(bytes.NewReader(make([]byte, cpu.MaxProgramSize))); err != nil {
		t.Fatalf("expected a full size image to load; have %v", err)
	}

	_, err := Read(bytes.NewReader(make([]byte, cpu.MaxProgramSize+1)))
	if !errors.Is(err, cpu.ErrProgramTooLarge) {
		t.Fatalf("want ErrProgramTooLarge, have %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.ch8")

	if err := os.WriteFile(file, []byte{0xa2, 0x2a}, 0644); err != nil {
		t.Fatal(err)
	}

	data, err := Load(file)
	if err != nil {
		t.Fatalf("Load failure: %v", err)
	}

	if !bytes.Equal(data, []byte{0xa2, 0x2a}) {
		t.Fatalf("unexpected data: %x", data)
	}
}

func TestLoadMissing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing.ch8")

	_, err := Load(file)

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("want *LoadError, have %T: %v", err, err)
	}

	if le.File != file || !os.IsNotExist(le.Err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
