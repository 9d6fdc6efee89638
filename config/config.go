/*
 * config.go, part of siesta-sfl.
 *
 * Copyright 2026 The siesta-sfl authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config reads the settings of a NEB run from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	neb "github.com/siesta-project/siesta-sfl"
	"github.com/siesta-project/siesta-sfl/opt"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Config contains all the settings of a run. Maps are given as
//comma-separated index:value pairs, for instance NEB_SPRINGS="1:0.2,4:0.3".
type Config struct {
	FIRE struct {
		Dt         float64         `env:"FIRE_DT" envDefault:"0.1"`
		DtMax      float64         `env:"FIRE_DT_MAX" envDefault:"1.0"`
		FInc       float64         `env:"FIRE_F_INC" envDefault:"1.1"`
		FDec       float64         `env:"FIRE_F_DEC" envDefault:"0.5"`
		Alpha      float64         `env:"FIRE_ALPHA" envDefault:"0.1"`
		FAlpha     float64         `env:"FIRE_F_ALPHA" envDefault:"0.99"`
		NMin       int             `env:"FIRE_N_MIN" envDefault:"5"`
		MaxDF      float64         `env:"FIRE_MAX_DF" envDefault:"0.1"`
		Tolerance  float64         `env:"FIRE_TOLERANCE" envDefault:"0.01"`
		Mass       float64         `env:"FIRE_MASS" envDefault:"1"`
		Masses     map[int]float64 `env:"FIRE_MASSES" envKeyValSeparator:":"`
		Correction string          `env:"FIRE_CORRECTION" envDefault:"global"`
		Direction  string          `env:"FIRE_DIRECTION" envDefault:"global"`

		//AtomicMasses replaces Mass and Masses by the masses of the elements.
		AtomicMasses bool `env:"FIRE_ATOMIC_MASSES" envDefault:"false"`
	}
	NEB struct {
		Images      int             `env:"NEB_IMAGES" envDefault:"7"`
		Spring      float64         `env:"NEB_SPRING" envDefault:"0.1"`
		Springs     map[int]float64 `env:"NEB_SPRINGS" envKeyValSeparator:":"`
		ClimbAfter  int             `env:"NEB_CLIMB_AFTER" envDefault:"10"` //negative disables climbing
		ClimbTol    float64         `env:"NEB_CLIMB_TOL" envDefault:"0"`
		Variant     string          `env:"NEB_VARIANT" envDefault:"cineb"`
		Temperature float64         `env:"NEB_TEMPERATURE" envDefault:"0"`
	}
	Run struct {
		MaxSweeps int `env:"RUN_MAX_SWEEPS" envDefault:"1000"`
		Workers   int `env:"RUN_WORKERS" envDefault:"1"`
	}
	Model struct {
		Scale   float64 `env:"MB_SCALE" envDefault:"0.1"`
		Command string  `env:"EVAL_COMMAND"` //if set, used instead of the Müller-Brown surface
	}
	Out struct {
		Dir    string   `env:"OUT_DIR" envDefault:"neb_out"`
		Plot   string   `env:"OUT_PLOT" envDefault:"profile.png"`
		Prec   int      `env:"OUT_PREC" envDefault:"4"`
		Series []string `env:"OUT_SERIES" envSeparator:","`
	}
	MetricsAddr string `env:"METRICS_ADDR"`
	Logging     struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"console"`
	}
}

//Load parses the environment into a new Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

//FIREOptions returns the FIRE parameters in c. They are validated when the integrator is built.
func (c *Config) FIREOptions() *opt.FIREOptions {
	f := c.FIRE
	return &opt.FIREOptions{
		Dt:         f.Dt,
		DtMax:      f.DtMax,
		FInc:       f.FInc,
		FDec:       f.FDec,
		Alpha:      f.Alpha,
		FAlpha:     f.FAlpha,
		NMin:       f.NMin,
		MaxDF:      f.MaxDF,
		Tolerance:  f.Tolerance,
		Masses:     v3.NewLookup(f.Mass, f.Masses),
		Correction: opt.Mode(strings.ToLower(f.Correction)),
		Direction:  opt.Mode(strings.ToLower(f.Direction)),
	}
}

//NEBOptions returns the chain options in c. It fails if the variant is not valid.
func (c *Config) NEBOptions() (*neb.Options, error) {
	n := c.NEB
	v, err := neb.VariantByName(strings.ToLower(n.Variant), n.Temperature)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	o := &neb.Options{
		Springs:    v3.NewLookup(n.Spring, n.Springs),
		ClimbAfter: n.ClimbAfter,
		ClimbTol:   n.ClimbTol,
		Variant:    v,
	}
	if n.ClimbAfter < 0 {
		o.ClimbAfter = neb.NoClimbing
	}
	return o, nil
}

//Logger builds a zap logger with the level and format (json or console) in c.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var zc zap.Config
	switch strings.ToLower(c.Logging.Format) {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
