// Package rom reads program images from disk.
package rom

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/c8/cpu"
)

// LoadError is returned when a program image can not be loaded.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the program image from the given file.
func Load(file string) ([]byte, error) {
	log.Println("reading", file)

	fd, err := os.Open(file)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}

	defer fd.Close()

	data, err := Read(fd)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}

	return data, nil
}

// Read reads a program image from r. It fails with cpu.ErrProgramTooLarge
// if the image does not fit in program memory.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, cpu.MaxProgramSize+1))
	if err != nil {
		return nil, err
	}

	if len(data) > cpu.MaxProgramSize {
		return nil, errors.Wrapf(cpu.ErrProgramTooLarge, "image exceeds %d bytes", cpu.MaxProgramSize)
	}

	return data, nil
}
