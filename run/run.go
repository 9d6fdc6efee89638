/*
 * run.go, part of siesta-sfl.
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

//Package run drives a NEB calculation: it asks an Evaluator for the energies and
//forces of the images, composes the NEB forces with a neb.Chain and moves each
//interior image with its own optimizer, one sweep at a time.
package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	neb "github.com/siesta-project/siesta-sfl"
	"github.com/siesta-project/siesta-sfl/opt"
)

//Evaluator computes the energy and forces for the coordinates of an image,
//setting its E and F fields. Evaluate may be called concurrently for different images.
type Evaluator interface {
	Evaluate(ctx context.Context, img *neb.Image) error
}

//EvaluatorFunc allows a function to be used as an Evaluator.
type EvaluatorFunc func(ctx context.Context, img *neb.Image) error

func (f EvaluatorFunc) Evaluate(ctx context.Context, img *neb.Image) error {
	return f(ctx, img)
}

//ErrNoSweeps is returned when the driver is not allowed to do any sweep.
var ErrNoSweeps = errors.New("run: MaxSweeps must be positive")

//Driver runs a NEB calculation on a Chain.
type Driver struct {
	Chain        *neb.Chain
	Evaluator    Evaluator
	NewOptimizer opt.Factory //called once per interior image
	Logger       *zap.Logger //nil means no logging
	Metrics      *Metrics    //may be nil
	MaxSweeps    int
	Workers      int //concurrent evaluations. 0 or 1 evaluates the images in order.

	optimizers []opt.Optimizer
}

//Result summarizes a run.
type Result struct {
	Sweeps    int
	Converged bool
	MaxForces []float64 //one per sweep
	Profile   *neb.SweepRecord
}

//Optimizer returns the optimizer for the interior image i, or nil
//if Run has not been called, or i is not an interior image.
func (D *Driver) Optimizer(i int) opt.Optimizer {
	if i < 1 || i > len(D.optimizers) {
		return nil
	}
	return D.optimizers[i-1]
}

func (D *Driver) check() error {
	switch {
	case D.Chain == nil:
		return fmt.Errorf("run: nil chain")
	case D.Evaluator == nil:
		return fmt.Errorf("run: nil evaluator")
	case D.NewOptimizer == nil:
		return fmt.Errorf("run: nil optimizer factory")
	case D.MaxSweeps <= 0:
		return ErrNoSweeps
	}
	return nil
}

//Run evaluates the endpoints once, then performs sweeps until every interior image has
//converged, MaxSweeps sweeps have been done, or ctx is done. In each sweep, all interior
//images are evaluated before any force is composed, and all of them are moved before the
//next evaluation. ctx is checked between sweeps, and passed to the evaluator.
//The returned Result is valid even when an error is returned.
func (D *Driver) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	if err := D.check(); err != nil {
		return res, err
	}
	log := D.Logger
	if log == nil {
		log = zap.NewNop()
	}
	C := D.Chain
	n := C.NImages()
	D.optimizers = make([]opt.Optimizer, n)
	for i := range D.optimizers {
		o, err := D.NewOptimizer()
		if err != nil {
			return res, fmt.Errorf("run: creating optimizer for image %d: %w", i+1, err)
		}
		D.optimizers[i] = o
	}
	if err := D.evaluate(ctx, []int{0, n + 1}); err != nil {
		return res, fmt.Errorf("run: endpoints: %w", err)
	}
	interior := make([]int, n)
	for i := range interior {
		interior[i] = i + 1
	}
	log.Info("starting NEB", zap.Int("images", n), zap.Int("atoms", C.NAtoms()), zap.String("variant", variantName(C)), zap.Int("max_sweeps", D.MaxSweeps))
	for s := 1; s <= D.MaxSweeps; s++ {
		if err := ctx.Err(); err != nil {
			log.Warn("run interrupted", zap.Int("sweep", s), zap.Error(err))
			return res, fmt.Errorf("run: before sweep %d: %w", s, err)
		}
		if err := D.evaluate(ctx, interior); err != nil {
			if interrupted(err) {
				log.Warn("run interrupted during evaluation", zap.Int("sweep", s), zap.Error(err))
			} else {
				log.Error("evaluation failed", zap.Int("sweep", s), zap.Error(err))
			}
			return res, fmt.Errorf("run: sweep %d: %w", s, err)
		}
		converged, err := D.step()
		if err != nil {
			return res, fmt.Errorf("run: sweep %d: %w", s, err)
		}
		res.Sweeps = s
		res.Profile = C.Profile()
		res.MaxForces = append(res.MaxForces, res.Profile.MaxForce)
		D.Metrics.sweep(res.Profile.MaxForce, converged)
		log.Info("sweep", zap.Int("sweep", s), zap.Int("iteration", C.Iteration()), zap.Float64("max_force", res.Profile.MaxForce), zap.Int("converged", converged))
		if converged == n {
			res.Converged = true
			log.Info("NEB converged", zap.Int("sweeps", s))
			return res, nil
		}
	}
	log.Warn("sweep limit reached", zap.Int("sweeps", D.MaxSweeps))
	return res, nil
}

//step composes the NEB force for each interior image, in order, and moves it.
//It returns the number of converged optimizers.
func (D *Driver) step() (int, error) {
	C := D.Chain
	converged := 0
	for i := 1; i <= C.NImages(); i++ {
		G, err := C.Force(i)
		if err != nil {
			return 0, err
		}
		img, _ := C.Image(i)
		o := D.optimizers[i-1]
		R, err := o.Optimize(img.R, G)
		if err != nil {
			return 0, fmt.Errorf("optimizing image %d: %w", i, err)
		}
		img.R.Copy(R)
		if o.Converged() {
			converged++
		}
	}
	return converged, nil
}

//evaluate runs the evaluator on the given images, at most Workers at a time.
//It returns when all of them are done.
func (D *Driver) evaluate(ctx context.Context, indexes []int) error {
	g, gctx := errgroup.WithContext(ctx)
	workers := D.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for _, i := range indexes {
		i := i
		img, err := D.Chain.Image(i)
		if err != nil {
			return err
		}
		g.Go(func() error {
			t := time.Now()
			if err := D.Evaluator.Evaluate(gctx, img); err != nil {
				return fmt.Errorf("evaluating image %d: %w", i, err)
			}
			D.Metrics.evaluation(time.Since(t).Seconds())
			D.Metrics.energy(i, img.E)
			return nil
		})
	}
	return g.Wait()
}

func variantName(C *neb.Chain) string {
	if C.Variant() == nil {
		return ""
	}
	return C.Variant().Name()
}

//interrupted returns true if err comes from a canceled or expired context.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
