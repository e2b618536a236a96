package cpu

import (
	"fmt"
	"iter"
	"log"
)

const (
	MEM_SIZE = 1 << 16 // Words of memory (64K), shared by code and data.
)

// Machine is the register/memory model executed against by the
// simulator. Register 0 is hard-wired to zero; writes to it are
// discarded.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Register [8]Word // Register bank.
	Memory   []Word  // Word-addressed memory.
	Pc       int32   // Program counter.
	Steps    int     // Instructions executed since reset, halt excluded.
}

// NewMachine creates a machine with a full-sized zeroed memory.
func NewMachine() (m *Machine) {
	m = &Machine{
		Memory: make([]Word, MEM_SIZE),
	}

	return
}

// Reset clears the machine state and loads program at address 0.
func (m *Machine) Reset(program []Word) (err error) {
	if len(program) > len(m.Memory) {
		err = ErrProgramSize(len(program))
		return
	}

	if m.Verbose {
		log.Printf("machine: reset, %v words loaded", len(program))
	}

	clear(m.Register[:])
	clear(m.Memory)
	copy(m.Memory, program)
	m.Pc = 0
	m.Steps = 0

	return
}

// Read returns the value of a register.
func (m *Machine) Read(reg int) Word {
	return m.Register[reg]
}

// Write sets the value of a register. Writes to register 0 are
// discarded.
func (m *Machine) Write(reg int, value Word) {
	if reg == 0 {
		return
	}
	m.Register[reg] = value
}

// Load returns the memory word at addr.
func (m *Machine) Load(addr int32) (value Word, err error) {
	if addr < 0 || addr >= int32(len(m.Memory)) {
		err = ErrMemBounds(addr)
		return
	}
	value = m.Memory[addr]
	return
}

// Store sets the memory word at addr.
func (m *Machine) Store(addr int32, value Word) (err error) {
	if addr < 0 || addr >= int32(len(m.Memory)) {
		err = ErrMemBounds(addr)
		return
	}
	m.Memory[addr] = value
	return
}

// NonZero iterates over the non-zero memory words in ascending
// address order.
func (m *Machine) NonZero() iter.Seq2[int, Word] {
	return func(yield func(addr int, value Word) bool) {
		for addr, value := range m.Memory {
			if value == 0 {
				continue
			}
			if !yield(addr, value) {
				return
			}
		}
	}
}

// String returns the current machine state as a single line.
func (m *Machine) String() (text string) {
	text = fmt.Sprintf("pc:%d", m.Pc)
	for n, value := range m.Register {
		text += fmt.Sprintf(" r%d:%d", n, value)
	}

	return
}
