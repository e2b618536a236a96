package emulator

import (
	"github.com/ezrec/lc2k/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	Pc     int32
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo != 0 {
		return f("pc %d line %d %v", err.Pc, err.LineNo, err.Err)
	}
	return f("pc %d %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

type ErrStepLimit int

func (es ErrStepLimit) Error() string {
	return f("step limit %d exceeded", int(es))
}
