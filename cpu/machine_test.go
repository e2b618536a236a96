package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineRegisterZero(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	m.Write(0, 42)
	assert.Equal(Word(0), m.Read(0))

	m.Write(1, 42)
	assert.Equal(Word(42), m.Read(1))
}

func TestMachineBounds(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	_, err := m.Load(-1)
	assert.ErrorIs(err, ErrMemBounds(-1))

	_, err = m.Load(MEM_SIZE)
	assert.ErrorIs(err, ErrMemBounds(MEM_SIZE))

	err = m.Store(MEM_SIZE, 1)
	assert.ErrorIs(err, ErrMemBounds(MEM_SIZE))

	err = m.Store(MEM_SIZE-1, 7)
	assert.NoError(err)

	value, err := m.Load(MEM_SIZE - 1)
	assert.NoError(err)
	assert.Equal(Word(7), value)
}

func TestMachineReset(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Register[3] = 9
	m.Pc = 17
	m.Steps = 4
	m.Memory[100] = 5

	err := m.Reset([]Word{1, 2, 3})
	assert.NoError(err)
	assert.Equal(int32(0), m.Pc)
	assert.Equal(0, m.Steps)
	assert.Equal(Word(0), m.Register[3])
	assert.Equal(Word(0), m.Memory[100])
	assert.Equal([]Word{1, 2, 3}, m.Memory[:3])

	err = m.Reset(make([]Word, MEM_SIZE+1))
	assert.ErrorIs(err, ErrProgramSize(MEM_SIZE+1))
}

func TestExecuteAdd(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Register[1] = 5
	m.Register[2] = -7

	word, _ := MakeWordR(OP_ADD, 1, 2, 3)
	halted, err := m.Execute(word)
	assert.NoError(err)
	assert.False(halted)
	assert.Equal(Word(-2), m.Register[3])
	assert.Equal(int32(1), m.Pc)
	assert.Equal(1, m.Steps)

	// Writes to register 0 are discarded.
	word, _ = MakeWordR(OP_ADD, 1, 2, 0)
	_, err = m.Execute(word)
	assert.NoError(err)
	assert.Equal(Word(0), m.Register[0])
}

func TestExecuteNand(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Register[1] = 0b1100
	m.Register[2] = 0b1010

	word, _ := MakeWordR(OP_NAND, 1, 2, 4)
	_, err := m.Execute(word)
	assert.NoError(err)
	assert.Equal(^Word(0b1000), m.Register[4])
}

func TestExecuteLoadStore(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Register[1] = 100
	m.Register[2] = 42

	// sw 1 2 -5: MEM[95] = r2
	word, _ := MakeWordI(OP_SW, 1, 2, -5)
	_, err := m.Execute(word)
	assert.NoError(err)
	assert.Equal(Word(42), m.Memory[95])

	// lw 1 3 -5: r3 = MEM[95]
	word, _ = MakeWordI(OP_LW, 1, 3, -5)
	_, err = m.Execute(word)
	assert.NoError(err)
	assert.Equal(Word(42), m.Register[3])

	// Out-of-bounds address faults, never wraps.
	word, _ = MakeWordI(OP_LW, 0, 3, -1)
	_, err = m.Execute(word)
	assert.ErrorIs(err, ErrMemBounds(-1))

	m.Register[1] = MEM_SIZE
	word, _ = MakeWordI(OP_SW, 1, 2, 0)
	_, err = m.Execute(word)
	assert.ErrorIs(err, ErrMemBounds(MEM_SIZE))
}

func TestExecuteBeq(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Pc = 3

	// Equal registers redirect to pc+1+offset.
	word, _ := MakeWordI(OP_BEQ, 1, 2, 2)
	_, err := m.Execute(word)
	assert.NoError(err)
	assert.Equal(int32(6), m.Pc)

	// Unequal registers fall through.
	m.Register[1] = 1
	_, err = m.Execute(word)
	assert.NoError(err)
	assert.Equal(int32(7), m.Pc)

	// A taken branch out of bounds faults.
	m.Register[1] = 0
	m.Pc = 3
	word, _ = MakeWordI(OP_BEQ, 1, 2, -5)
	_, err = m.Execute(word)
	assert.ErrorIs(err, ErrPcBounds(-1))
}

func TestExecuteJalr(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Pc = 5
	m.Register[1] = 20

	// jalr 1 2: r2 = pc+1, pc = r1.
	word, _ := MakeWordJ(1, 2)
	_, err := m.Execute(word)
	assert.NoError(err)
	assert.Equal(Word(6), m.Register[2])
	assert.Equal(int32(20), m.Pc)

	// With identical registers the jump target is the original value.
	m.Pc = 7
	m.Register[3] = 30
	word, _ = MakeWordJ(3, 3)
	_, err = m.Execute(word)
	assert.NoError(err)
	assert.Equal(Word(8), m.Register[3])
	assert.Equal(int32(30), m.Pc)

	// Linking into register 0 is discarded.
	m.Pc = 2
	word, _ = MakeWordJ(0, 0)
	_, err = m.Execute(word)
	assert.NoError(err)
	assert.Equal(Word(0), m.Register[0])
	assert.Equal(int32(0), m.Pc)
}

func TestExecuteHaltNoop(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Pc = 4

	noop, err := MakeWordO(OP_NOOP)
	assert.NoError(err)
	halted, err := m.Execute(noop)
	assert.NoError(err)
	assert.False(halted)
	assert.Equal(int32(5), m.Pc)
	assert.Equal(1, m.Steps)

	halt, err := MakeWordO(OP_HALT)
	assert.NoError(err)
	halted, err = m.Execute(halt)
	assert.NoError(err)
	assert.True(halted)
	assert.Equal(int32(6), m.Pc)

	// The halt advances the program counter but is not counted as an
	// executed instruction.
	assert.Equal(1, m.Steps)
}

func TestExecuteDecodeFault(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	// A data word with bits above the opcode field is not an
	// instruction.
	_, err := m.Execute(Word(-1))
	assert.ErrorIs(err, ErrOpcodeDecode)
	assert.ErrorIs(err, ErrWord(Word(-1)))
	assert.Equal(int32(0), m.Pc)
}

func TestMachineNonZero(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Memory[7] = -1
	m.Memory[3] = 5
	m.Memory[100] = 9

	var addrs []int
	var values []Word
	for addr, value := range m.NonZero() {
		addrs = append(addrs, addr)
		values = append(values, value)
	}

	assert.Equal([]int{3, 7, 100}, addrs)
	assert.Equal([]Word{5, -1, 9}, values)
}

func TestMachineString(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	m.Pc = 6
	m.Register[1] = -1

	assert.Equal("pc:6 r0:0 r1:-1 r2:0 r3:0 r4:0 r5:0 r6:0 r7:0", m.String())
}
