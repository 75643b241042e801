// Command i8080 runs, disassembles, or single-steps an Intel 8080 program
// image using the host and cpu packages.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagTrace     bool
	flagConfig    string
	flagLogFormat string

	log = logrus.New()
	cfg runConfig
)

func main() {
	root := &cobra.Command{
		Use:   "i8080",
		Short: "Intel 8080 instruction-set emulator core",
	}
	root.PersistentFlags().BoolVar(&flagTrace, "trace", false, "log every decoded instruction at debug level")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "optional config file (default_rom, breakpoints, log_format)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log output format: text|json")

	cobra.OnInitialize(func() {
		var err error
		cfg, err = loadConfig(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "i8080: reading config %q: %v\n", flagConfig, err)
			os.Exit(1)
		}
		if cfg.LogFormat != "" && !root.PersistentFlags().Changed("log-format") {
			flagLogFormat = cfg.LogFormat
		}
		if flagLogFormat == "json" {
			log.SetFormatter(&logrus.JSONFormatter{})
		}
		if flagTrace {
			log.SetLevel(logrus.DebugLevel)
		}
	})

	root.AddCommand(newRunCmd(), newDisasmCmd(), newStepCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
