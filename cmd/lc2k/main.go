// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/lc2k/cpu"
	"github.com/ezrec/lc2k/emulator"
)

func main() {
	var compile string
	var output string
	var save bool
	var quiet bool
	var verbose bool
	var maxSteps int

	flag.StringVar(&compile, "c", "", ".as file to assemble")
	flag.StringVar(&output, "o", "", ".mc file to write after assembly ('-' for stdout)")
	flag.BoolVar(&save, "s", false, "Assemble only, do not execute")
	flag.BoolVar(&quiet, "q", false, "Suppress per-step trace")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&maxSteps, "m", 1000000, "Step limit (0 = unbounded)")

	flag.Parse()

	prog := &cpu.Program{}

	if len(compile) != 0 {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(output) != 0 {
			ouf := os.Stdout
			if output != "-" {
				ouf, err = os.Create(output)
				if err != nil {
					log.Fatalf("%v: %v", output, err)
				}
				defer ouf.Close()
			}
			_, err = prog.WriteTo(ouf)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("usage: %v [-c source.as [-o output.mc]] [program.mc]", os.Args[0])
		}
		name := flag.Arg(0)

		inf, err := os.Open(name)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		defer inf.Close()

		words, err := cpu.ReadProgram(inf)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		prog = cpu.FromWords(words)
	}

	if save {
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = !quiet
	emu.MaxSteps = maxSteps

	if err := emu.Reset(); err != nil {
		log.Fatal(err)
	}
	if err := emu.Run(); err != nil {
		log.Fatal(err)
	}

	if _, err := emu.Report().WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
