package main

import (
	"bytes"
	"testing"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0x00, 0xe0,
		0xa2, 0x0a,
		0xd0, 0x15,
		0x12, 0x06,
		0xff,
	}

	var out bytes.Buffer
	if err := disassemble(&out, program, true); err != nil {
		t.Fatal(err)
	}

	want := "200 00e0  CLS\n" +
		"202 a20a  LD I, 20A\n" +
		"204 d015  DRW V0, V1, 5\n" +
		"206 1206  JP 206\n" +
		"208 ff    DB FF\n"

	if out.String() != want {
		t.Fatalf("output mismatch:\nwant:\n%s\nhave:\n%s", want, out.String())
	}

	out.Reset()
	if err := disassemble(&out, program[:4], false); err != nil {
		t.Fatal(err)
	}

	if want := "CLS\nLD I, 20A\n"; out.String() != want {
		t.Fatalf("output mismatch:\nwant:\n%s\nhave:\n%s", want, out.String())
	}
}
