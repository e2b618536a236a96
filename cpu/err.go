package cpu

import (
	"errors"

	"github.com/ezrec/lc2k/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrFillRange       = errors.New(f(".fill value out of 32-bit range"))

	// Execution errors
	ErrOpcodeDecode = errors.New(f("decode"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrOpcodeUnknown string

func (eo ErrOpcodeUnknown) Error() string {
	return f("unknown opcode '%v'", string(eo))
}

// ErrOpcodeOperands reports an operand-bearing opcode encoded as if it
// were operand-free.
type ErrOpcodeOperands Op

func (eo ErrOpcodeOperands) Error() string {
	return f("opcode %v takes operands", Op(eo))
}

type ErrRegisterRange int

func (er ErrRegisterRange) Error() string {
	return f("register %d out of range 0..7", int(er))
}

type ErrOffsetRange int

func (eo ErrOffsetRange) Error() string {
	return f("offset %d out of 16-bit range", int(eo))
}

type ErrArgCount struct {
	Want int
	Got  int
}

func (err *ErrArgCount) Error() string {
	return f("expected %d arguments, got %d", err.Want, err.Got)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax wraps an assembly error with its source location.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrWord wraps an execution error with the offending machine word.
type ErrWord Word

func (ew ErrWord) Error() string {
	return f("bad word 0x%08x %v", uint32(ew), Word(ew).String())
}

func (ew ErrWord) Is(err error) (ok bool) {
	_, ok = err.(ErrWord)
	return
}

type ErrPcBounds int32

func (ep ErrPcBounds) Error() string {
	return f("pc %d out of bounds", int32(ep))
}

type ErrMemBounds int32

func (em ErrMemBounds) Error() string {
	return f("address %d out of bounds", int32(em))
}

type ErrProgramSize int

func (ep ErrProgramSize) Error() string {
	return f("program too big: %d > %d words", int(ep), MEM_SIZE)
}
