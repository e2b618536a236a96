package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzExecute(f *testing.F) {
	f.Add(uint32(0), int32(0), int32(0))
	f.Add(uint32(0xffffffff), int32(-1), int32(1))
	f.Add(uint32(OP_HALT)<<22, int32(100), int32(MEM_SIZE))
	f.Add(uint32(OP_BEQ)<<22|0x8000, int32(0), int32(0))
	f.Add(uint32(OP_JALR)<<22|1<<19|2<<16, int32(70000), int32(5))

	f.Fuzz(func(t *testing.T, bits uint32, r1, r2 int32) {
		assert := assert.New(t)

		m := NewMachine()
		m.Pc = 10
		m.Register[1] = Word(r1)
		m.Register[2] = Word(r2)

		word := Word(bits)
		halted, err := m.Execute(word)

		// Register 0 is hard-wired to zero.
		assert.Equal(Word(0), m.Register[0])

		if err != nil {
			assert.ErrorIs(err, ErrWord(word))
			assert.False(halted)
			// A faulting instruction leaves the program counter alone.
			assert.Equal(int32(10), m.Pc)
			assert.Equal(0, m.Steps)
			return
		}

		if word.Op() == OP_HALT {
			assert.True(halted)
			// The halt is not counted as an executed instruction.
			assert.Equal(0, m.Steps)
		} else {
			assert.False(halted)
			assert.Equal(1, m.Steps)
		}
		switch word.Op() {
		case OP_BEQ, OP_JALR:
			// Redirected; bounds are the run loop's invariant.
		default:
			assert.Equal(int32(11), m.Pc)
		}
	})
}
