// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator implements the fetch-decode-execute loop for the
// LC-2K machine, recording a per-step trace and producing the halt
// report.
package emulator

import (
	"log"

	"github.com/ezrec/lc2k/cpu"
)

// Snapshot records the machine state before one executed step.
type Snapshot struct {
	Pc       int32
	Register [8]cpu.Word
}

// Emulator state. Machine + program listing + execution trace.
type Emulator struct {
	Verbose      bool         // If set, enables verbose logging.
	*cpu.Machine              // Reference to the machine simulation.
	Program      *cpu.Program // Reference to the currently running program listing.

	MaxSteps int        // Optional runaway guard; 0 disables.
	Trace    []Snapshot // Per-step execution log.

	halted bool
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: cpu.NewMachine(),
		Program: &cpu.Program{},
	}

	return
}

// Reset clears the machine and trace, and loads the program binary at
// address 0.
func (emu *Emulator) Reset() (err error) {
	emu.Trace = emu.Trace[:0]
	emu.halted = false

	err = emu.Machine.Reset(emu.Program.Binary())

	return
}

// Halted reports whether the machine has executed a halt instruction.
func (emu *Emulator) Halted() bool {
	return emu.halted
}

// LineNo returns the source line number for the word at the current
// program counter, or 0 when the word has no source line.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(int(emu.Machine.Pc))
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single fetch-decode-execute step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Machine.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if pc < 0 || pc >= int32(len(emu.Machine.Memory)) {
		err = cpu.ErrPcBounds(pc)
		return
	}

	emu.Trace = append(emu.Trace, Snapshot{
		Pc:       pc,
		Register: emu.Machine.Register,
	})
	if emu.Verbose {
		log.Printf("%v", emu.Machine)
	}

	done, err = emu.Machine.Execute(emu.Machine.Memory[pc])
	if err != nil {
		return
	}
	if done {
		emu.halted = true
		return
	}

	if emu.MaxSteps > 0 && emu.Machine.Steps >= emu.MaxSteps {
		err = ErrStepLimit(emu.MaxSteps)
	}

	return
}

// Run steps the emulator until the machine halts or faults.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
