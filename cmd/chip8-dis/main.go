package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices/c8/cpu"
	"github.com/hexaflex/chip8/rom"
)

func main() {
	config := parseArgs()

	data, err := rom.Load(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	if err := disassemble(w, data, config.Hex); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble writes one line per instruction word in the program. A trailing
// odd byte is written as a data byte.
func disassemble(w io.Writer, data []byte, hex bool) error {
	for i := 0; i < len(data); i += 2 {
		addr := cpu.ProgramAddress + i

		var err error
		switch {
		case i+1 >= len(data) && hex:
			_, err = fmt.Fprintf(w, "%03x %02x    DB %02X\n", addr, data[i], data[i])
		case i+1 >= len(data):
			_, err = fmt.Fprintf(w, "DB %02X\n", data[i])
		case hex:
			word := uint16(data[i])<<8 | uint16(data[i+1])
			_, err = fmt.Fprintf(w, "%03x %04x  %s\n", addr, word, arch.Disassemble(word))
		default:
			word := uint16(data[i])<<8 | uint16(data[i+1])
			_, err = fmt.Fprintln(w, arch.Disassemble(word))
		}

		if err != nil {
			return err
		}
	}
	return nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
