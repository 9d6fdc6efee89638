/*
 * fire.go, part of siesta-sfl.
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

package opt

import (
	"math"

	"gonum.org/v1/gonum/floats"

	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//FIRE is a Fast Inertial Relaxation Engine. It moves a structure with a
//damped molecular dynamics, where the velocity is mixed toward the
//direction of the force while the power (force·velocity) stays positive,
//and the timestep adapts itself to how well that is going.
//The atom with index 1 is always kept fixed. A structure with a single atom
//has no atom 1, so nothing is fixed in it (the one-atom model surfaces move freely).
type FIRE struct {
	o FIREOptions

	v         *v3.Matrix
	dt        float64
	alpha     float64
	npos      int //consecutive steps with positive power
	iter      int
	converged bool
	weight    float64
}

//NewFIRE returns a FIRE integrator with the options in o (a copy is kept),
//or with DefaultFIREOptions() if o is nil.
func NewFIRE(o *FIREOptions) (*FIRE, error) {
	if o == nil {
		o = DefaultFIREOptions()
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	f := &FIRE{o: *o}
	if f.o.Masses == nil {
		f.o.Masses = v3.Uniform(1)
	}
	f.dt = o.Dt
	f.alpha = o.Alpha
	return f, nil
}

//FIREFactory returns a Factory producing FIRE integrators with the options o.
func FIREFactory(o *FIREOptions) Factory {
	return func() (Optimizer, error) {
		return NewFIRE(o)
	}
}

//Reset restores the timestep and the mixing coefficient to their initial
//values and brings the integrator out of the converged state.
func (f *FIRE) Reset() {
	f.dt = f.o.Dt
	f.alpha = f.o.Alpha
	f.converged = false
}

//Converged returns true once a force below the tolerance has been given to Optimize.
func (f *FIRE) Converged() bool { return f.converged }

//Dt returns the current timestep.
func (f *FIRE) Dt() float64 { return f.dt }

//Alpha returns the current mixing coefficient.
func (f *FIRE) Alpha() float64 { return f.alpha }

//Iterations returns the number of calls to Optimize so far.
func (f *FIRE) Iterations() int { return f.iter }

//PositivePower returns the number of consecutive steps with positive power.
func (f *FIRE) PositivePower() int { return f.npos }

//Weight returns |G·dF| for the last step, before the displacement was capped.
func (f *FIRE) Weight() float64 { return f.weight }

//Velocity returns a copy of the current velocity, or nil before the first step.
func (f *FIRE) Velocity() *v3.Matrix {
	if f.v == nil {
		return nil
	}
	return f.v.Clone()
}

//Optimize performs one FIRE step for the coordinates F under the force G,
//and returns the new coordinates. Once converged, it returns a copy of F.
func (f *FIRE) Optimize(F, G *v3.Matrix) (*v3.Matrix, error) {
	const c = "Optimize"
	if err := f.o.Correction.check(c, "correction"); err != nil {
		return nil, err
	}
	if err := f.o.Direction.check(c, "direction"); err != nil {
		return nil, err
	}
	n := G.NVecs()
	if F.NVecs() != n || (f.v != nil && f.v.NVecs() != n) {
		e := ErrShape
		e.deco = []string{c}
		return nil, e
	}
	masses := make([]float64, n)
	for i := range masses {
		masses[i] = f.o.Masses.Get(i)
		if masses[i] <= 0 {
			return nil, configErr(c, "atom %d has a non-positive mass %g", i, masses[i])
		}
	}
	if f.v == nil {
		f.v = v3.Zeros(n)
	}
	if floats.Max(Norm1D(G)) < f.o.Tolerance {
		f.converged = true
	}
	g := G.Clone()
	if n > 1 {
		g.VecView(1).Zero() //the fixed atom
	}
	acc := g.Clone()
	for i, m := range masses {
		if m != 1 {
			r := acc.VecView(i)
			r.Scale(1/m, r)
		}
	}
	dt0 := f.dt
	if FlatDot(g, f.v) > 0 {
		f.mix(g)
		if f.npos >= f.o.NMin {
			f.dt = math.Min(f.dt*f.o.FInc, f.o.DtMax)
			f.alpha *= f.o.FAlpha
		}
		f.npos++
	} else {
		f.v.Zero()
		//dt must stay positive
		f.dt = math.Max(f.dt*f.o.FDec, math.SmallestNonzeroFloat64)
		f.alpha = f.o.Alpha
		f.npos = 0
	}
	dF := v3.Zeros(n)
	dF.Scale(f.dt/2, acc)
	dF.Add(dF, f.v)
	dF.Scale(f.dt, dF)
	f.weight = math.Abs(FlatDot(g, dF))
	f.cap(dF)
	acc.Scale(dt0, acc)
	f.v.Add(f.v, acc)
	var ret *v3.Matrix
	if f.converged {
		ret = F.Clone()
	} else {
		ret = v3.Zeros(n)
		ret.Add(F, dF)
	}
	f.iter++
	return ret, nil
}

//mix turns the velocity toward the direction of the force g.
func (f *FIRE) mix(g *v3.Matrix) {
	a := f.alpha
	if f.o.Direction == Global {
		gn := g.Norm()
		if gn == 0 {
			return
		}
		t := v3.Zeros(g.NVecs())
		t.Scale(a*f.v.Norm()/gn, g)
		f.v.Scale(1-a, f.v)
		f.v.Add(f.v, t)
		return
	}
	gn := g.VecNorms()
	vn := f.v.VecNorms()
	t := v3.Zeros(1)
	for i := range gn {
		if gn[i] == 0 {
			continue
		}
		vi := f.v.VecView(i)
		t.Scale(a*vn[i]/gn[i], g.VecView(i))
		vi.Scale(1-a, vi)
		vi.Add(vi, t)
	}
}

//cap limits the displacement dF in place, according to the correction mode.
func (f *FIRE) cap(dF *v3.Matrix) {
	limit := f.o.MaxDF
	if f.o.Correction == Local {
		dF.Clamp(dF, -limit, limit)
		return
	}
	largest := dF.MaxVecNorm()
	if largest > limit {
		dF.Scale(limit/largest, dF)
	}
}
