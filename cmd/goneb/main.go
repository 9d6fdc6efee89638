/*
 * main.go, part of siesta-sfl.
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

//goneb computes a minimum energy path with the nudged elastic band method.
//By default, the path connects the two deepest minima of the Müller-Brown surface.
//Settings are read from the environment (see package config) and can be overridden
//with command line flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	neb "github.com/siesta-project/siesta-sfl"
	"github.com/siesta-project/siesta-sfl/config"
	"github.com/siesta-project/siesta-sfl/diag"
	"github.com/siesta-project/siesta-sfl/nebplot"
	"github.com/siesta-project/siesta-sfl/opt"
	"github.com/siesta-project/siesta-sfl/potential"
	"github.com/siesta-project/siesta-sfl/run"
	"github.com/siesta-project/siesta-sfl/traj/stf"
	v3 "github.com/siesta-project/siesta-sfl/v3"
	"github.com/siesta-project/siesta-sfl/xyz"
)

//PathFile is the name of the XYZ file with the final path, in the output directory.
const PathFile = "path.xyz"

//Atoms closer than this fraction of the sum of their covalent radii are reported.
const closeContact = 0.6

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := execute(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "goneb: %v\n", err)
		os.Exit(1)
	}
}

//flags overrides the values in cfg with those given in the command line.
func flags(cfg *config.Config, args []string, output io.Writer) (initial, final string, err error) {
	fs := flag.NewFlagSet("goneb", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.NEB.Images, "images", cfg.NEB.Images, "number of interior images")
	fs.Float64Var(&cfg.NEB.Spring, "spring", cfg.NEB.Spring, "spring constant")
	fs.StringVar(&cfg.NEB.Variant, "variant", cfg.NEB.Variant, "NEB variant: neb, cineb, dneb, twdneb, tcineb or tdneb")
	fs.Float64Var(&cfg.NEB.Temperature, "temperature", cfg.NEB.Temperature, "temperature (K) for the thermal variants")
	fs.IntVar(&cfg.NEB.ClimbAfter, "climb-after", cfg.NEB.ClimbAfter, "sweeps before the climbing image is allowed, negative disables it")
	fs.Float64Var(&cfg.FIRE.Tolerance, "tol", cfg.FIRE.Tolerance, "convergence threshold for the largest force")
	fs.IntVar(&cfg.Run.MaxSweeps, "sweeps", cfg.Run.MaxSweeps, "maximum number of sweeps")
	fs.IntVar(&cfg.Run.Workers, "workers", cfg.Run.Workers, "concurrent evaluations")
	fs.Float64Var(&cfg.Model.Scale, "scale", cfg.Model.Scale, "energy scale of the Müller-Brown surface")
	fs.StringVar(&cfg.Model.Command, "command", cfg.Model.Command, "external program giving energies and forces (replaces the Müller-Brown surface)")
	fs.StringVar(&cfg.Out.Dir, "out", cfg.Out.Dir, "output directory")
	fs.StringVar(&cfg.Out.Plot, "plot", cfg.Out.Plot, "name of the energy profile plot, in the output directory. Empty for no plot")
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "address to serve prometheus metrics on, for instance :9090")
	fs.StringVar(&initial, "initial", "", "xyz or stf file with the initial structure (first frame is used)")
	fs.StringVar(&final, "final", "", "xyz or stf file with the final structure (first frame is used)")
	fs.BoolVar(&cfg.FIRE.AtomicMasses, "masses", cfg.FIRE.AtomicMasses, "use the atomic masses of the elements in the initial structure")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	if fs.NArg() > 0 {
		return "", "", fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if (initial == "") != (final == "") {
		return "", "", fmt.Errorf("both -initial and -final must be given, or none")
	}
	if cfg.Model.Command != "" && initial == "" {
		return "", "", fmt.Errorf("an external program needs -initial and -final structures")
	}
	return initial, final, nil
}

//readFrame returns the element symbols and the coordinates of the first frame of the file
//name, which can be in the xyz or stf formats. stf files have no symbols, so the dummy
//symbol "X" is used for all atoms.
func readFrame(name string) ([]string, *v3.Matrix, error) {
	if strings.EqualFold(filepath.Ext(name), ".xyz") {
		frames, err := xyz.ReadFile(name)
		if err != nil {
			return nil, nil, err
		}
		return frames[0].Symbols, frames[0].Coords, nil
	}
	r, _, err := stf.New(name)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	c := v3.Zeros(r.Len())
	if err := r.Next(c); err != nil {
		return nil, nil, err
	}
	return dummies(c.NVecs()), c, nil
}

func dummies(n int) []string {
	s := make([]string, n)
	for i := range s {
		s[i] = "X"
	}
	return s
}

//endpoints returns the symbols and the initial and final structures.
func endpoints(initial, final string) ([]string, *v3.Matrix, *v3.Matrix, error) {
	if initial == "" {
		return dummies(1), potential.MBPoint(potential.MBMinimumA), potential.MBPoint(potential.MBMinimumB), nil
	}
	sym, i, err := readFrame(initial)
	if err != nil {
		return nil, nil, nil, err
	}
	_, f, err := readFrame(final)
	if err != nil {
		return nil, nil, nil, err
	}
	return sym, i, f, nil
}

func evaluator(cfg *config.Config) run.Evaluator {
	if cfg.Model.Command != "" {
		f := strings.Fields(cfg.Model.Command)
		return potential.NewCommand(f[0], f[1:]...)
	}
	return potential.NewMullerBrown(cfg.Model.Scale)
}

//serveMetrics starts an HTTP server with the metrics in reg. The returned function stops it.
func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) func() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("serving metrics", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown", zap.Error(err))
		}
	}
}

func execute(ctx context.Context, args []string, output io.Writer) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	initial, final, err := flags(cfg, args, output)
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	symbols, R0, R1, err := endpoints(initial, final)
	if err != nil {
		return err
	}
	images, err := neb.Interpolate(R0, R1, cfg.NEB.Images)
	if err != nil {
		return err
	}
	for i, img := range images {
		for _, c := range xyz.CloseContacts(symbols, img.R, closeContact) {
			log.Warn("atoms too close in the interpolated path", zap.Int("image", i), zap.Int("atom1", c.I), zap.Int("atom2", c.J), zap.Float64("distance", c.Distance))
		}
	}
	o, err := cfg.NEBOptions()
	if err != nil {
		return err
	}
	W, err := diag.New(cfg.Out.Dir, R0.NVecs(), &diag.Options{Prec: cfg.Out.Prec, Series: cfg.Out.Series, Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := W.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	o.Observer = W
	C, err := neb.NewChain(images, o)
	if err != nil {
		return err
	}
	fo := cfg.FIREOptions()
	if cfg.FIRE.AtomicMasses {
		if fo.Masses, err = xyz.Masses(symbols); err != nil {
			return err
		}
	}
	if _, err := opt.NewFIRE(fo); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	M, err := run.NewMetrics(reg)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		stop := serveMetrics(cfg.MetricsAddr, reg, log)
		defer stop()
	}

	D := &run.Driver{
		Chain:        C,
		Evaluator:    evaluator(cfg),
		NewOptimizer: opt.FIREFactory(fo),
		Logger:       log,
		Metrics:      M,
		MaxSweeps:    cfg.Run.MaxSweeps,
		Workers:      cfg.Run.Workers,
	}
	res, runErr := D.Run(ctx)
	if res.Profile != nil {
		barrier := 0.0
		for _, e := range res.Profile.DeltaE {
			if e > barrier {
				barrier = e
			}
		}
		log.Info("path", zap.Bool("converged", res.Converged), zap.Int("sweeps", res.Sweeps), zap.Float64("barrier", barrier))
		if err := xyz.WritePath(filepath.Join(cfg.Out.Dir, PathFile), symbols, C.Images()); err != nil {
			log.Warn("can't write the path", zap.Error(err))
		}
		if cfg.Out.Plot != "" {
			title := fmt.Sprintf("%s, sweep %d", C.Variant().Name(), res.Sweeps)
			if err := nebplot.EnergyProfile(res.Profile, title, filepath.Join(cfg.Out.Dir, cfg.Out.Plot)); err != nil {
				log.Warn("can't plot the energy profile", zap.Error(err))
			}
			if err := nebplot.Convergence(res.MaxForces, "Convergence", filepath.Join(cfg.Out.Dir, "convergence.png")); err != nil {
				log.Warn("can't plot the convergence", zap.Error(err))
			}
		}
	}
	if runErr != nil {
		return runErr
	}
	return W.Err()
}
