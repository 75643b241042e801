package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// runConfig holds the optional settings loadable from --config: a default
// ROM path so run/step can be invoked with no argument, a list of
// breakpoint addresses for step's continue command, and a default log
// format.
type runConfig struct {
	DefaultROM  string   `mapstructure:"default_rom"`
	Breakpoints []uint16 `mapstructure:"breakpoints"`
	LogFormat   string   `mapstructure:"log_format"`
}

// loadConfig reads path (TOML, YAML or JSON, inferred from its extension)
// into a runConfig. A missing path is not an error; it simply returns the
// zero value.
func loadConfig(path string) (runConfig, error) {
	var cfg runConfig
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveROM picks the ROM path from args if one was given, falling back to
// cfg.DefaultROM from the --config file. It errors if neither is set.
func resolveROM(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.DefaultROM != "" {
		return cfg.DefaultROM, nil
	}
	return "", fmt.Errorf("no ROM given and no default_rom set in --config")
}

// breakpointSet returns cfg.Breakpoints as a lookup set for the stepper's
// continue-to-breakpoint loop.
func (c runConfig) breakpointSet() map[uint16]bool {
	set := make(map[uint16]bool, len(c.Breakpoints))
	for _, addr := range c.Breakpoints {
		set[addr] = true
	}
	return set
}
