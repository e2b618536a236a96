package emulator

import (
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/lc2k/cpu"
	"github.com/ezrec/lc2k/internal"
)

// Cell is one non-zero memory word in the halt report.
type Cell struct {
	Addr  int
	Value cpu.Word
}

// Report is the final machine snapshot produced on halt: the program
// counter, all eight registers, and every non-zero memory word in
// ascending address order.
type Report struct {
	Pc       int32
	Register [8]cpu.Word
	Steps    int
	Memory   []Cell
}

// Report produces the final machine snapshot.
func (emu *Emulator) Report() (rep *Report) {
	rep = &Report{
		Pc:       emu.Machine.Pc,
		Register: emu.Machine.Register,
		Steps:    emu.Machine.Steps,
	}

	for addr, value := range emu.Machine.NonZero() {
		rep.Memory = append(rep.Memory, Cell{Addr: addr, Value: value})
	}

	return
}

// Registers iterates over the program counter and register values,
// keyed by name.
func (rep *Report) Registers() iter.Seq2[string, cpu.Word] {
	return func(yield func(name string, value cpu.Word) bool) {
		if !yield("pc", cpu.Word(rep.Pc)) {
			return
		}
		for n, value := range rep.Register {
			if !yield(fmt.Sprintf("r%d", n), value) {
				return
			}
		}
	}
}

// Cells iterates over the non-zero memory words, keyed by address.
func (rep *Report) Cells() iter.Seq2[string, cpu.Word] {
	return func(yield func(name string, value cpu.Word) bool) {
		for _, cell := range rep.Memory {
			if !yield(fmt.Sprintf("mem[%d]", cell.Addr), cell.Value) {
				return
			}
		}
	}
}

// All iterates over every report cell: program counter, registers,
// then non-zero memory.
func (rep *Report) All() iter.Seq2[string, cpu.Word] {
	return internal.IterSeq2Concat(rep.Registers(), rep.Cells())
}

// WriteTo renders the report as text.
func (rep *Report) WriteTo(w io.Writer) (n int64, err error) {
	var written int

	written, err = fmt.Fprintf(w, "machine halted\ninstructions executed: %d\n", rep.Steps)
	n += int64(written)
	if err != nil {
		return
	}

	for name, value := range rep.All() {
		written, err = fmt.Fprintf(w, "%s = %d\n", name, value)
		n += int64(written)
		if err != nil {
			return
		}
	}

	return
}
