// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"MEM_SIZE": strconv.Itoa(MEM_SIZE),
}

// labelRe matches a label token: a letter followed by up to five
// letters or digits.
var labelRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,5}$`)

// parenRe matches a compile-time $( ... ) expression.
var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// Line is a pre-parsed line of assembly with metadata.
type Line struct {
	LineNo int      // Source line number (1-based).
	Label  string   // Optional label, empty if none.
	Op     string   // Opcode mnemonic or .fill directive.
	Args   []string // Operand tokens.
	Raw    string   // Original text, useful for diagnostics.
}

// Assembler is a two-pass assembler for the LC-2K instruction set.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction indexes.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations over the
// integer-valued equates.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, verr := strconv.ParseInt(str, 0, 64)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single source line. ok is false for lines that
// occupy no instruction slot (blank, comment-only, .equ).
func (asm *Assembler) parseLine(text string, lineno int) (ln Line, ok bool, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Strip the comment.
	line, _, _ := strings.Cut(text, "#")
	line = strings.TrimSpace(line)

	// Do $() evaluations.
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, found := asm.Equate[words[1]]
		if found {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	// Equate substitution.
	for n, word := range words {
		equate, found := asm.Equate[word]
		if found {
			words[n] = equate
		}
	}

	// The first token is a label only if it is not a mnemonic or .fill.
	_, mnemonic := OpOf(words[0])
	if !mnemonic && words[0] != ".fill" && labelRe.MatchString(words[0]) {
		ln.Label = words[0]
		words = words[1:]
		if len(words) == 0 {
			err = ErrOpcodeMissing
			return
		}
	}

	ln.LineNo = lineno
	ln.Op = words[0]
	ln.Args = words[1:]
	ln.Raw = text
	ok = true

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: strings.TrimSpace(line), Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	var lines []Line
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, line)
		}

		var ln Line
		var ok bool
		ln, ok, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if ok {
			lines = append(lines, ln)
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass 1: collect labels and validate mnemonics.
	for pc, ln := range lines {
		lineno, line = ln.LineNo, ln.Raw

		if len(ln.Label) != 0 {
			_, found := asm.Label[ln.Label]
			if found {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[ln.Label] = pc
		}

		if ln.Op != ".fill" {
			_, found := OpOf(ln.Op)
			if !found {
				err = ErrOpcodeUnknown(ln.Op)
				return
			}
		}
	}

	// Pass 2: resolve operands and encode.
	opcodes := make([]Opcode, 0, len(lines))
	for pc, ln := range lines {
		lineno, line = ln.LineNo, ln.Raw

		var word Word
		word, err = asm.encodeLine(ln, pc)
		if err != nil {
			return
		}

		opcodes = append(opcodes, Opcode{
			LineNo: ln.LineNo,
			Pc:     pc,
			Label:  ln.Label,
			Words:  append([]string{ln.Op}, ln.Args...),
			Word:   word,
		})
	}

	prog = &Program{
		Opcodes: opcodes,
	}

	return
}

// argCheck ensures the line has exactly want operands.
func argCheck(ln Line, want int) (err error) {
	if len(ln.Args) != want {
		err = &ErrArgCount{Want: want, Got: len(ln.Args)}
	}
	return
}

// parseReg parses a register operand.
func parseReg(token string) (reg int, err error) {
	reg, err = strconv.Atoi(token)
	if err != nil {
		err = ErrParseNumber(token)
		return
	}
	err = checkReg(reg)
	return
}

// resolveValue converts a token to an integer, resolving a label to
// its instruction index when allowLabel is set.
func (asm *Assembler) resolveValue(token string, allowLabel bool) (value int64, err error) {
	if allowLabel {
		addr, found := asm.Label[token]
		if found {
			value = int64(addr)
			return
		}
	}
	value, err = strconv.ParseInt(token, 0, 64)
	if err != nil {
		if labelRe.MatchString(token) {
			err = ErrLabelMissing(token)
		} else {
			err = ErrParseNumber(token)
		}
	}
	return
}

// encodeLine encodes one parsed line at instruction index pc into a
// machine word.
func (asm *Assembler) encodeLine(ln Line, pc int) (word Word, err error) {
	// .fill occupies a slot but is stored as-is, never encoded.
	if ln.Op == ".fill" {
		err = argCheck(ln, 1)
		if err != nil {
			return
		}
		var value int64
		value, err = asm.resolveValue(ln.Args[0], true)
		if err != nil {
			return
		}
		if value < -(1<<31) || value >= (1<<31) {
			err = ErrFillRange
			return
		}
		word = Word(value)
		return
	}

	op, _ := OpOf(ln.Op)

	switch op {
	case OP_ADD, OP_NAND: // op rA rB dest
		err = argCheck(ln, 3)
		if err != nil {
			return
		}
		var regA, regB, dest int
		for n, out := range [](*int){&regA, &regB, &dest} {
			*out, err = parseReg(ln.Args[n])
			if err != nil {
				return
			}
		}
		word, err = MakeWordR(op, regA, regB, dest)

	case OP_LW, OP_SW: // op rA rB offset
		err = argCheck(ln, 3)
		if err != nil {
			return
		}
		var regA, regB int
		for n, out := range [](*int){&regA, &regB} {
			*out, err = parseReg(ln.Args[n])
			if err != nil {
				return
			}
		}
		var offset int64
		offset, err = asm.resolveValue(ln.Args[2], true)
		if err != nil {
			return
		}
		word, err = MakeWordI(op, regA, regB, int(offset))

	case OP_BEQ: // op rA rB label/offset
		err = argCheck(ln, 3)
		if err != nil {
			return
		}
		var regA, regB int
		for n, out := range [](*int){&regA, &regB} {
			*out, err = parseReg(ln.Args[n])
			if err != nil {
				return
			}
		}
		// A label encodes the displacement from the following
		// instruction; a number is used as-is.
		var offset int64
		addr, found := asm.Label[ln.Args[2]]
		if found {
			offset = int64(addr - (pc + 1))
		} else {
			offset, err = asm.resolveValue(ln.Args[2], false)
			if err != nil {
				return
			}
		}
		word, err = MakeWordI(op, regA, regB, int(offset))

	case OP_JALR: // op rA rB
		err = argCheck(ln, 2)
		if err != nil {
			return
		}
		var regA, regB int
		for n, out := range [](*int){&regA, &regB} {
			*out, err = parseReg(ln.Args[n])
			if err != nil {
				return
			}
		}
		word, err = MakeWordJ(regA, regB)

	default: // halt, noop
		err = argCheck(ln, 0)
		if err != nil {
			return
		}
		word, err = MakeWordO(op)
	}

	return
}
