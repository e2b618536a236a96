// Package cpu implements the machine model and assembler for the LC-2K
// toolchain.
//
// The machine consists of a program counter, eight 32-bit registers
// (r0 is hard-wired to zero), and a 65536-word memory that holds both
// instructions and data. Instructions are fixed-width 32-bit words in
// one of four formats: R-type (add, nand), I-type with a signed 16-bit
// offset (lw, sw, beq), J-type (jalr), and O-type (halt, noop).
//
// The assembler is a classic two-pass design: the first pass collects
// labels and validates mnemonics, the second resolves symbolic operands
// and encodes machine words. It supports the .fill data directive,
// .equ equates, and compile-time $() expression evaluation.
package cpu
