// Package config holds the settings of the led panel simulation.
// Defaults are overridden by an optional YAML file, which is overridden by the command line.
package config

import (
	"fmt"
	"ledlife/src/universe"
	"ledlife/src/view"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration
type Config struct {
	Interval      time.Duration `yaml:"interval"`
	TerminalPause time.Duration `yaml:"terminal_pause"`
	ShutdownStep  time.Duration `yaml:"shutdown_step"`
	MaxSteps      int           `yaml:"max_steps"`
	ChanceInit    int           `yaml:"chance_init"`
	Brightness    int           `yaml:"brightness"`
	Muted         bool          `yaml:"muted"`
	Seed          int64         `yaml:"seed"`

	Interactive  bool   `yaml:"interactive"`
	ConsoleStrip bool   `yaml:"console_strip"`
	Colors       bool   `yaml:"colors"`
	Listen       string `yaml:"listen"`
	ChannelOrder string `yaml:"channel_order"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	o := universe.DefaultUniverseOptions
	return Config{
		Interval:      o.Interval,
		TerminalPause: o.TerminalPause,
		ShutdownStep:  o.ShutdownStep,
		ChanceInit:    o.ChanceInit,
		Brightness:    o.Brightness,
		Muted:         o.Muted,
		ConsoleStrip:  true,
		Colors:        true,
		ChannelOrder:  "grb",
	}
}

// Load reads the YAML file at path on top of the defaults
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the ranges of all values
func (c Config) Validate() error {
	if c.Interval < 0 || c.TerminalPause < 0 || c.ShutdownStep < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must not be negative, got %d", c.MaxSteps)
	}
	if c.ChanceInit < 0 || c.ChanceInit > 100 {
		return fmt.Errorf("chance must be between 0 and 100, got %d", c.ChanceInit)
	}
	if c.Brightness < 1 || c.Brightness > 255 {
		return fmt.Errorf("%w: got %d", universe.ErrInvalidBrightness, c.Brightness)
	}
	if _, err := c.StripOrder(); err != nil {
		return err
	}
	return nil
}

// StripOrder returns the color channel order of the network strip
func (c Config) StripOrder() (view.ChannelOrder, error) {
	return view.ParseChannelOrder(c.ChannelOrder)
}

// UniverseOptions returns the options of the simulation part
func (c Config) UniverseOptions() *universe.Options {
	return &universe.Options{
		Interval:      c.Interval,
		TerminalPause: c.TerminalPause,
		ShutdownStep:  c.ShutdownStep,
		MaxSteps:      c.MaxSteps,
		ChanceInit:    c.ChanceInit,
		Brightness:    c.Brightness,
		Muted:         c.Muted,
		Seed:          c.Seed,
	}
}
