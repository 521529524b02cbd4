// Package config loads sbpcheck run configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/0x5844/sbpwave/internal/engine"
	"github.com/0x5844/sbpwave/internal/sbp"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	PDE       string          `toml:"pde"`
	Order     int             `toml:"order"`
	Grid      GridConfig      `toml:"grid"`
	Study     StudyConfig     `toml:"study"`
	Run       RunConfig       `toml:"run"`
	Advection AdvectionConfig `toml:"advection"`
}

type GridConfig struct {
	Lower float64 `toml:"lower"`
	Upper float64 `toml:"upper"`
	Procs [2]int  `toml:"procs"`
}

type StudyConfig struct {
	Sizes []int   `toml:"sizes"`
	Time  float64 `toml:"time"`
}

type RunConfig struct {
	Workers int `toml:"workers"`
}

type AdvectionConfig struct {
	A         float64 `toml:"a"`
	B         float64 `toml:"b"`
	Injection bool    `toml:"injection"`
	RStar     float64 `toml:"rstar"`
}

func Default() Config {
	return Config{
		PDE:   string(engine.Acowave),
		Order: 4,
		Grid: GridConfig{
			Lower: -1,
			Upper: 1,
			Procs: [2]int{2, 2},
		},
		Study: StudyConfig{
			Sizes: []int{51, 101, 201},
			Time:  0.15,
		},
		Advection: AdvectionConfig{
			A:         1.5,
			B:         -1,
			Injection: true,
			RStar:     0.1,
		},
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(doc, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch engine.PDE(strings.TrimSpace(c.PDE)) {
	case engine.Acowave, engine.Advection:
	default:
		return fmt.Errorf("%w: pde %q, want acowave or advection", ErrInvalid, c.PDE)
	}
	if !slices.Contains(sbp.Orders(), c.Order) {
		return fmt.Errorf("%w: order %d, want one of %v", ErrInvalid, c.Order, sbp.Orders())
	}
	if c.Grid.Upper <= c.Grid.Lower {
		return fmt.Errorf("%w: grid upper %g not above lower %g", ErrInvalid, c.Grid.Upper, c.Grid.Lower)
	}
	if c.Grid.Procs[0] < 1 || c.Grid.Procs[1] < 1 {
		return fmt.Errorf("%w: grid procs %v", ErrInvalid, c.Grid.Procs)
	}
	if len(c.Study.Sizes) == 0 {
		return fmt.Errorf("%w: study sizes empty", ErrInvalid)
	}
	for i, n := range c.Study.Sizes {
		if n < 2 {
			return fmt.Errorf("%w: study size[%d] = %d", ErrInvalid, i, n)
		}
		if i > 0 && n <= c.Study.Sizes[i-1] {
			return fmt.Errorf("%w: study sizes must increase, got %v", ErrInvalid, c.Study.Sizes)
		}
	}
	if c.Run.Workers < 0 {
		return fmt.Errorf("%w: run workers %d", ErrInvalid, c.Run.Workers)
	}
	if c.Advection.RStar <= 0 {
		return fmt.Errorf("%w: advection rstar %g", ErrInvalid, c.Advection.RStar)
	}
	return nil
}

// Options maps the configuration onto engine options for grid size n.
func (c Config) Options(n int) engine.Options {
	return engine.Options{
		PDE:       engine.PDE(strings.TrimSpace(c.PDE)),
		Order:     c.Order,
		N:         [2]int{n, n},
		Procs:     c.Grid.Procs,
		Lower:     c.Grid.Lower,
		Upper:     c.Grid.Upper,
		Workers:   c.Run.Workers,
		Velocity:  [2]float64{c.Advection.A, c.Advection.B},
		Injection: c.Advection.Injection,
	}
}
