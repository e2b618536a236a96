package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Opcode represents one assembled source line with its location and
// generated machine word.
type Opcode struct {
	LineNo int
	Pc     int
	Label  string
	Words  []string
	Word   Word
}

// Program is an assembled instruction stream with source metadata.
type Program struct {
	Opcodes []Opcode
}

// FromWords builds a Program from a bare machine-word sequence, such
// as a parsed .mc stream.
func FromWords(words []Word) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, 0, len(words)),
	}
	for n, word := range words {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: n + 1,
			Pc:     n,
			Word:   word,
		})
	}

	return
}

// Debug returns the opcode at instruction index pc, or nil.
func (prog *Program) Debug(pc int) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Pc == pc {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the machine-word sequence.
func (prog *Program) Binary() (bins []Word) {
	bins = make([]Word, 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		bins = append(bins, op.Word)
	}

	return
}

// Codes iterates over the machine words with their instruction indexes.
func (prog *Program) Codes() iter.Seq2[int, Word] {
	return func(yield func(pc int, word Word) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Pc, op.Word) {
				return
			}
		}
	}
}

// WriteTo renders the program as the .mc interchange stream: one
// decimal machine word per line.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	for _, op := range prog.Opcodes {
		var written int
		written, err = fmt.Fprintf(w, "%d\n", int32(op.Word))
		n += int64(written)
		if err != nil {
			return
		}
	}

	return
}

// ReadProgram parses a .mc interchange stream: one decimal machine
// word per line. Words may be written signed or as unsigned 32-bit
// values.
func ReadProgram(r io.Reader) (words []Word, err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineno += 1
		if len(line) == 0 {
			continue
		}

		var v64 int64
		v64, err = strconv.ParseInt(line, 10, 64)
		if err != nil || v64 < -(1<<31) || v64 >= (1<<32) {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseNumber(line)}
			return
		}

		words = append(words, Word(uint32(v64)))
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	if len(words) > MEM_SIZE {
		err = ErrProgramSize(len(words))
	}

	return
}
