package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"github.com/Alenthus/nestake/bus"
	"github.com/Alenthus/nestake/cartridge"
	"github.com/Alenthus/nestake/cpu"
	"github.com/Alenthus/nestake/ports"
)

func main() {
	app := &cli.App{
		Name:      "nestake",
		Usage:     "load an iNES ROM and run its CPU core",
		Version:   "v0.0.1",
		ArgsUsage: "<rom-path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "launch the interactive register/memory debugger",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "run the CPU and print an execution trace to stdout",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nestake:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.Args().Get(0)
	if path == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("rom path is required", 86)
	}

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	cart, err := cartridge.LoadCartridge(f)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	b := &bus.Bus{
		PPU:         &ports.NullPPU{},
		APU:         &ports.NullAPU{},
		Controller1: &ports.NullController{},
		Controller2: &ports.NullController{},
		Mapper:      cart,
	}
	machine := cpu.NewCpu(b)

	switch {
	case c.Bool("debug"):
		machine.Debug(nil, machine.PC)
		return nil

	case c.Bool("trace"):
		machine.SetDebug(true)
		machine.SetTraceSink(os.Stdout)
		for {
			if _, err := machine.Step(); err != nil {
				return cli.Exit(err.Error(), 1)
			}
		}

	default:
		printSummary(cart, machine)
		return nil
	}
}

// printSummary is the smoke-test default: parsed header, reset vector,
// and the first decoded instruction, then exit.
func printSummary(cart *cartridge.Cartridge, c *cpu.Cpu) {
	fmt.Printf("PRG banks: %d  CHR banks: %d  mapper: %d  mirroring: %v\n",
		cart.Header.PRGBanks, cart.Header.CHRBanks, cart.Mapper, cart.Mirroring)
	fmt.Printf("reset vector: $%04X\n", c.PC)

	op := c.Read(c.PC)
	instr, ok := cpu.Opcodes[op]
	if !ok {
		fmt.Printf("first opcode $%02X at $%04X is not a known instruction\n", op, c.PC)
		return
	}
	fmt.Printf("first instruction: %s ($%02X, %d bytes, %d cycles)\n",
		instr.Name, op, instr.Size, instr.Cycles)
}
