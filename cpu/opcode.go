package cpu

import (
	"fmt"
)

// Op is an instruction opcode.
type Op int

const (
	OP_ADD  = Op(0) // add
	OP_NAND = Op(1) // nand
	OP_LW   = Op(2) // lw
	OP_SW   = Op(3) // sw
	OP_BEQ  = Op(4) // beq
	OP_JALR = Op(5) // jalr
	OP_HALT = Op(6) // halt
	OP_NOOP = Op(7) // noop
)

// opName maps opcodes to their mnemonics, in encoding order.
var opName = [8]string{
	OP_ADD:  "add",
	OP_NAND: "nand",
	OP_LW:   "lw",
	OP_SW:   "sw",
	OP_BEQ:  "beq",
	OP_JALR: "jalr",
	OP_HALT: "halt",
	OP_NOOP: "noop",
}

// String returns the mnemonic of the opcode.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opName) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opName[op]
}

// OpOf returns the opcode for a mnemonic.
func OpOf(mnemonic string) (op Op, ok bool) {
	for n, name := range opName {
		if name == mnemonic {
			return Op(n), true
		}
	}
	return 0, false
}

// Word is a single 32-bit two's-complement machine word, holding one
// encoded instruction or one .fill constant.
type Word int32

// Instruction field layout, most significant first: opcode in bits
// 22..24, regA in bits 19..21, regB in bits 16..18, and either a
// signed 16-bit offset in bits 0..15 (I-type) or the destination
// register in bits 0..2 (R-type). Bits 25..31 are always zero in a
// valid instruction.
const (
	MIN_OFFSET = -(1 << 15)    // Most negative I-type offset.
	MAX_OFFSET = (1 << 15) - 1 // Most positive I-type offset.
)

// checkReg validates a register operand.
func checkReg(regs ...int) (err error) {
	for _, reg := range regs {
		if reg < 0 || reg > 7 {
			return ErrRegisterRange(reg)
		}
	}
	return
}

// MakeWordR encodes an R-type instruction (add, nand).
func MakeWordR(op Op, regA, regB, dest int) (word Word, err error) {
	err = checkReg(regA, regB, dest)
	if err != nil {
		return
	}
	word = Word(uint32(op)<<22 | uint32(regA)<<19 | uint32(regB)<<16 | uint32(dest))
	return
}

// MakeWordI encodes an I-type instruction (lw, sw, beq) with a signed
// 16-bit offset.
func MakeWordI(op Op, regA, regB int, offset int) (word Word, err error) {
	err = checkReg(regA, regB)
	if err != nil {
		return
	}
	if offset < MIN_OFFSET || offset > MAX_OFFSET {
		err = ErrOffsetRange(offset)
		return
	}
	word = Word(uint32(op)<<22 | uint32(regA)<<19 | uint32(regB)<<16 | (uint32(offset) & 0xffff))
	return
}

// MakeWordJ encodes a J-type instruction (jalr).
func MakeWordJ(regA, regB int) (word Word, err error) {
	err = checkReg(regA, regB)
	if err != nil {
		return
	}
	word = Word(uint32(OP_JALR)<<22 | uint32(regA)<<19 | uint32(regB)<<16)
	return
}

// MakeWordO encodes an O-type instruction. Only halt and noop have no
// operand fields.
func MakeWordO(op Op) (word Word, err error) {
	if op != OP_HALT && op != OP_NOOP {
		err = ErrOpcodeOperands(op)
		return
	}
	word = Word(uint32(op) << 22)
	return
}

// Op returns the opcode field of the word.
func (w Word) Op() Op {
	return Op((uint32(w) >> 22) & 0x7)
}

// RegA returns the first register field of the word.
func (w Word) RegA() int {
	return int((uint32(w) >> 19) & 0x7)
}

// RegB returns the second register field of the word.
func (w Word) RegB() int {
	return int((uint32(w) >> 16) & 0x7)
}

// Dest returns the destination register field of an R-type word.
func (w Word) Dest() int {
	return int(uint32(w) & 0x7)
}

// Offset returns the sign-extended 16-bit offset field of an I-type word.
func (w Word) Offset() int32 {
	return int32(int16(uint32(w) & 0xffff))
}

// String returns the assembly language representation of the word.
func (w Word) String() (out string) {
	op := w.Op()

	switch op {
	case OP_ADD, OP_NAND:
		out = fmt.Sprintf("%v %d %d %d", op, w.RegA(), w.RegB(), w.Dest())
	case OP_LW, OP_SW, OP_BEQ:
		out = fmt.Sprintf("%v %d %d %d", op, w.RegA(), w.RegB(), w.Offset())
	case OP_JALR:
		out = fmt.Sprintf("%v %d %d", op, w.RegA(), w.RegB())
	case OP_HALT, OP_NOOP:
		out = op.String()
	}

	return
}
