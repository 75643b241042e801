package main

import (
	"fmt"
	"os"

	"github.com/go8080/i8080/isa"
	"github.com/spf13/cobra"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <rom>",
		Short: "print a full disassembly of a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, line := range isa.Disassemble(data) {
				fmt.Println(line.Text)
			}
			return nil
		},
	}
}
