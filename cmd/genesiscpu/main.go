// Command genesiscpu drives the M68K and Z80 cores against a shared
// Genesis memory map: load a ROM, run both CPUs for a number of M68K
// cycles at the real 7:1 clock ratio, and print the resulting register
// state. It exists to exercise the bus and both cores end to end; it is
// not a full system emulator (no video, no audio output).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdrivecore/genesis-cpu/bus"
	"github.com/mdrivecore/genesis-cpu/m68k"
	"github.com/mdrivecore/genesis-cpu/z80"
)

func main() {
	var cycles int
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "genesiscpu [rom]",
		Short: "Run the M68K and Z80 cores against a cartridge image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], cycles, verbose)
		},
	}
	rootCmd.Flags().IntVar(&cycles, "cycles", 1000, "number of M68K cycles to run")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print register state after every step")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// z80Ratio is the approximate M68K:Z80 clock ratio on real hardware.
const z80Ratio = 7

func run(romPath string, targetCycles int, verbose bool) error {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	sysBus := bus.NewSystemBus(rom)
	cpu := m68k.New(sysBus)

	z80View := bus.NewZ80View(sysBus)
	sound := z80.New(z80View)

	m68kCycles := 0
	z80Deficit := 0

	for m68kCycles < targetCycles {
		step := cpu.Step()
		m68kCycles += step

		z80Budget := z80Deficit + step/z80Ratio
		spent := sound.StepCycles(z80Budget)
		z80Deficit = z80Budget - spent

		if verbose {
			r := cpu.Registers()
			fmt.Printf("m68k: PC=%08X SR=%04X cycles=%d\n", r.PC, r.SR, m68kCycles)
		}
	}

	r := cpu.Registers()
	zr := sound.Registers()
	fmt.Printf("M68K: PC=%08X SR=%04X D0=%08X A7=%08X cycles=%d\n",
		r.PC, r.SR, r.D[0], r.A[7], m68kCycles)
	fmt.Printf("Z80:  PC=%04X AF=%02X%02X SP=%04X cycles=%d\n",
		zr.PC, zr.A, zr.F, zr.SP, sound.Cycles())
	return nil
}
