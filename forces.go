/*
 * forces.go, part of siesta-sfl.
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

package neb

import (
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Parts contains everything computed for an interior image before the
//NEB force is composed. It is what a ForceVariant gets.
type Parts struct {
	Index          int
	Force          *v3.Matrix //the true force
	Tangent        *v3.Matrix
	Prev           *v3.Matrix //displacement from the previous image
	Next           *v3.Matrix //displacement to the next image
	Perpendicular  *v3.Matrix //true force minus its projection on the tangent
	Spring         *v3.Matrix //spring force along the tangent
	SpringConstant float64
	Curvature      float64 //true force along the tangent
	Climbing       bool    //whether the climbing correction applies to the image now
}

//Climbing returns true if the energy of image i exceeds those of both of its
//neighbors by more than the climbing tolerance. It doesn't consider the iteration count.
func (C *Chain) Climbing(i int) (bool, error) {
	if err := C.CheckIndex(i, false); err != nil {
		return false, errDecorate(err, "Climbing")
	}
	return C.climbing(i), nil
}

func (C *Chain) climbing(i int) bool {
	e := C.images[i].E
	return e-C.images[i-1].E > C.climbTol && e-C.images[i+1].E > C.climbTol
}

//climbingActive returns true if image i climbs in the current iteration.
func (C *Chain) climbingActive(i int) bool {
	return C.iter > C.climbAfter && C.climbing(i)
}

//SpringForce returns k[i]*(|R[i+1]-R[i]| - |R[i]-R[i-1]|) times the tangent at i.
func (C *Chain) SpringForce(i int) (*v3.Matrix, error) {
	if err := C.CheckIndex(i, false); err != nil {
		return nil, errDecorate(err, "SpringForce")
	}
	return springForce(C.Spring(i), C.displacement(i-1, i), C.displacement(i, i+1), C.tangent(i)), nil
}

func springForce(k float64, prev, next, tangent *v3.Matrix) *v3.Matrix {
	s := v3.Zeros(tangent.NVecs())
	s.Scale(k*(next.Norm()-prev.Norm()), tangent)
	return s
}

//PerpendicularForce returns the force on image i minus its projection on the
//tangent. If the tangent is zero, the force is returned unmodified.
func (C *Chain) PerpendicularForce(i int) (*v3.Matrix, error) {
	if err := C.CheckIndex(i, false); err != nil {
		return nil, errDecorate(err, "PerpendicularForce")
	}
	return perpendicular(C.images[i].F, C.tangent(i)), nil
}

//perpendicular returns F minus its projection on dir, or a copy of F if dir is zero.
func perpendicular(F, dir *v3.Matrix) *v3.Matrix {
	ret := F.Clone()
	if dir.Norm() == 0 {
		return ret
	}
	p := v3.Zeros(F.NVecs())
	p.Project(F, dir)
	ret.Sub(ret, p)
	return ret
}

//Curvature returns the component of the force on image i along the tangent.
func (C *Chain) Curvature(i int) (float64, error) {
	if err := C.CheckIndex(i, false); err != nil {
		return 0, errDecorate(err, "Curvature")
	}
	return v3.Dot(C.images[i].F, C.tangent(i)), nil
}

//parts computes everything a ForceVariant needs for the interior image i.
func (C *Chain) parts(i int) *Parts {
	img := C.images[i]
	p := &Parts{
		Index:          i,
		Force:          img.F.Clone(),
		Prev:           C.displacement(i-1, i),
		Next:           C.displacement(i, i+1),
		SpringConstant: C.Spring(i),
		Climbing:       C.climbingActive(i),
	}
	p.Tangent = tangentFrom(C.images[i-1].E, img.E, C.images[i+1].E, p.Prev, p.Next)
	p.Perpendicular = perpendicular(img.F, p.Tangent)
	p.Spring = springForce(p.SpringConstant, p.Prev, p.Next, p.Tangent)
	p.Curvature = v3.Dot(img.F, p.Tangent)
	return p
}

//NEBForce returns the NEB force for the interior image i, as composed by the
//configured variant. Unlike Force, it has no side effects.
func (C *Chain) NEBForce(i int) (*v3.Matrix, error) {
	if err := C.check(i); err != nil {
		return nil, errDecorate(err, "NEBForce")
	}
	return C.variant.Compose(C.parts(i)), nil
}

func (C *Chain) check(i int) error {
	if err := C.CheckIndex(i, false); err != nil {
		return err
	}
	if C.variant == nil {
		return newError(ConfigurationError, "check", "no NEB variant set")
	}
	return C.variant.Check()
}

//Force is the per-iteration entry point. It returns the NEB force for the interior
//image i. Image 1 starts a new sweep, increasing the iteration counter, so the images
//should be requested in order, once the evaluator has updated all of them.
//If an observer is set, it gets all the vectors computed for the image and, after the
//last interior image, the profile of the path.
func (C *Chain) Force(i int) (*v3.Matrix, error) {
	if err := C.check(i); err != nil {
		return nil, errDecorate(err, "Force")
	}
	if i == 1 {
		C.iter++
	}
	p := C.parts(i)
	f := C.variant.Compose(p)
	C.last[i] = f.Clone()
	if C.observer == nil {
		return f, nil
	}
	img := C.images[i]
	C.observer.ImageForces(&ImageRecord{
		Iteration:     C.iter,
		Index:         i,
		Energy:        img.E,
		Coords:        img.R.Clone(),
		Force:         p.Force,
		Perpendicular: p.Perpendicular,
		Spring:        p.Spring,
		NEB:           f.Clone(),
		Tangent:       p.Tangent,
		Prev:          p.Prev,
		Next:          p.Next,
	})
	if i == C.NImages() {
		C.observer.Sweep(C.Profile())
	}
	return f, nil
}
