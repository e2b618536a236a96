package cpu

import (
	"errors"
	"log"
)

// Execute decodes and executes a single machine word against the
// machine state, advancing or redirecting the program counter.
// It returns halted=true after a halt instruction; the incremented
// program counter is still recorded, but the halt itself does not
// count as an executed instruction.
func (m *Machine) Execute(word Word) (halted bool, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrWord(word), err)
		}
	}()
	if m.Verbose {
		log.Printf("%d: %v", m.Pc, word)
	}

	// A valid instruction never sets bits 25..31. Data words executed
	// by a stray program counter fault here instead of being guessed at.
	if uint32(word)>>25 != 0 {
		err = ErrOpcodeDecode
		return
	}

	next := m.Pc + 1

	switch word.Op() {
	case OP_ADD:
		m.Write(word.Dest(), m.Read(word.RegA())+m.Read(word.RegB()))
	case OP_NAND:
		m.Write(word.Dest(), ^(m.Read(word.RegA()) & m.Read(word.RegB())))
	case OP_LW:
		var value Word
		value, err = m.Load(int32(m.Read(word.RegA())) + word.Offset())
		if err != nil {
			return
		}
		m.Write(word.RegB(), value)
	case OP_SW:
		err = m.Store(int32(m.Read(word.RegA()))+word.Offset(), m.Read(word.RegB()))
		if err != nil {
			return
		}
	case OP_BEQ:
		if m.Read(word.RegA()) == m.Read(word.RegB()) {
			next = m.Pc + 1 + word.Offset()
			if next < 0 || next >= MEM_SIZE {
				err = ErrPcBounds(next)
				return
			}
		}
	case OP_JALR:
		// The jump target is R[A] as read before the link write, so
		// jalr with identical source and destination registers jumps
		// to the original value.
		target := int32(m.Read(word.RegA()))
		m.Write(word.RegB(), Word(m.Pc+1))
		next = target
	case OP_HALT:
		halted = true
	case OP_NOOP:
		// pass
	}

	m.Pc = next
	if !halted {
		m.Steps += 1
	}

	return
}
