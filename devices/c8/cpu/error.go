package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known runtime error conditions.
var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrProgramTooLarge    = errors.New("program too large")
)

// Error defines a runtime error.
type Error struct {
	Instruction       // Instruction which caused the error.
	Err         error // Underlying error condition.
}

// NewError creates a new error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Instruction: *instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%03x: %04x: %v", e.IP, e.Word, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
