package main

import (
	"context"
	"fmt"

	"github.com/go8080/i8080/host"
	"github.com/go8080/i8080/isa"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [rom]",
		Short: "load a ROM and free-run it to halt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := resolveROM(args)
			if err != nil {
				return err
			}
			r := host.New(host.NewOutSink(log))
			if err := r.LoadFile(rom); err != nil {
				return err
			}
			if flagTrace {
				if err := runTraced(r); err != nil {
					return fmt.Errorf("run: %w", err)
				}
			} else if err := r.Run(context.Background()); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			fmt.Printf("halted at PC=0x%04X A=0x%02X\n", r.CPU().PC, r.CPU().A)
			return nil
		},
	}
}

// runTraced steps one instruction at a time, logging the mnemonic about to
// execute. host.Runner.Run has no hook for this, so --trace bypasses it
// and drives Step directly from the CLI.
func runTraced(r *host.Runner) error {
	for !r.CPU().Halted() {
		pc := r.CPU().PC
		mem := r.CPU().Memory()
		in, _, err := isa.Decode(mem[pc:])
		if err == nil {
			log.WithField("pc", fmt.Sprintf("0x%04X", pc)).Debug(in.String())
		}
		if err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}
