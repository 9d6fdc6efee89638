/*
 * chain.go, part of siesta-sfl.
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
	"math"

	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Chain is the ordered sequence of images, initial (index 0), interior (1 to NImages())
//and final (NImages()+1). The number of images is fixed at construction.
type Chain struct {
	images     []*Image
	natoms     int
	springs    *v3.Lookup
	climbAfter int
	climbTol   float64
	variant    ForceVariant
	observer   Observer
	iter       int
	last       []*v3.Matrix //the last NEB force composed for each image
}

//NewChain returns a chain with the given images, which are not copied.
//All images must have the same number of atoms. Images with nil forces get
//zero forces. If o is nil, DefaultOptions() is used.
func NewChain(images []*Image, o *Options) (*Chain, error) {
	const c = "NewChain"
	if o == nil {
		o = DefaultOptions()
	}
	if len(images) < 2 {
		return nil, newError(ShapeMismatch, c, "a chain needs at least 2 images, got %d", len(images))
	}
	for i, v := range images {
		if v == nil || v.R == nil {
			return nil, newError(ShapeMismatch, c, "image %d has no coordinates", i)
		}
	}
	natoms := images[0].R.NVecs()
	for i, v := range images {
		if v.R.NVecs() != natoms {
			return nil, newError(ShapeMismatch, c, "image %d has %d atoms, image 0 has %d", i, v.R.NVecs(), natoms)
		}
		if v.F != nil && v.F.NVecs() != natoms {
			return nil, newError(ShapeMismatch, c, "image %d has %d forces for %d atoms", i, v.F.NVecs(), natoms)
		}
	}
	for _, v := range images {
		if v.F == nil {
			v.F = v3.Zeros(natoms)
		}
	}
	C := &Chain{
		images:     images,
		natoms:     natoms,
		springs:    o.Springs,
		climbAfter: o.ClimbAfter,
		climbTol:   o.ClimbTol,
		variant:    o.Variant,
		observer:   o.Observer,
		last:       make([]*v3.Matrix, len(images)),
	}
	if C.springs == nil {
		C.springs = v3.Uniform(DefaultSpring)
	}
	return C, nil
}

//Len returns the total number of images, including the endpoints.
func (C *Chain) Len() int { return len(C.images) }

//NImages returns the number of interior images.
func (C *Chain) NImages() int { return len(C.images) - 2 }

//NAtoms returns the number of atoms in each image.
func (C *Chain) NAtoms() int { return C.natoms }

//Iteration returns the number of sweeps started so far.
func (C *Chain) Iteration() int { return C.iter }

//Variant returns the force variant in use.
func (C *Chain) Variant() ForceVariant { return C.variant }

//Spring returns the spring constant for image i.
func (C *Chain) Spring(i int) float64 { return C.springs.Get(i) }

//CheckIndex returns an IndexOutOfRange error if i is not in [0, NImages()+1]
//when boundary is true, or in [1, NImages()] otherwise.
func (C *Chain) CheckIndex(i int, boundary bool) error {
	lo, hi := 1, C.NImages()
	if boundary {
		lo, hi = 0, C.NImages()+1
	}
	if i < lo || i > hi {
		return newError(IndexOutOfRange, "CheckIndex", "image %d not in [%d,%d]", i, lo, hi)
	}
	return nil
}

//Image returns the image with index i, which can be an endpoint.
func (C *Chain) Image(i int) (*Image, error) {
	if err := C.CheckIndex(i, true); err != nil {
		return nil, errDecorate(err, "Image")
	}
	return C.images[i], nil
}

//Images returns a slice with all the images. The slice is new, the images are not.
func (C *Chain) Images() []*Image {
	return append([]*Image(nil), C.images...)
}

//Displacement returns R[j]-R[i].
func (C *Chain) Displacement(i, j int) (*v3.Matrix, error) {
	if err := C.CheckIndex(i, true); err != nil {
		return nil, errDecorate(err, "Displacement")
	}
	if err := C.CheckIndex(j, true); err != nil {
		return nil, errDecorate(err, "Displacement")
	}
	return C.displacement(i, j), nil
}

func (C *Chain) displacement(i, j int) *v3.Matrix {
	d := v3.Zeros(C.natoms)
	d.Sub(C.images[j].R, C.images[i].R)
	return d
}

//ReactionCoordinate returns, for each image, the length of the path
//from the initial image, measured as the sum of the distances between consecutive images.
func (C *Chain) ReactionCoordinate() []float64 {
	ret := make([]float64, len(C.images))
	for i := 1; i < len(ret); i++ {
		ret[i] = ret[i-1] + C.displacement(i-1, i).Norm()
	}
	return ret
}

//Profile returns the summary of the path with the current energies and
//coordinates, and the last NEB forces computed by Force.
func (C *Chain) Profile() *SweepRecord {
	n := len(C.images)
	rec := &SweepRecord{
		Iteration:          C.iter,
		ReactionCoordinate: C.ReactionCoordinate(),
		Energy:             make([]float64, n),
		DeltaE:             make([]float64, n),
		Curvature:          make([]float64, n),
	}
	for i, v := range C.images {
		rec.Energy[i] = v.E
		rec.DeltaE[i] = v.E - C.images[0].E
		if i == 0 || i == n-1 {
			continue
		}
		rec.Curvature[i] = v3.Dot(v.F, C.tangent(i))
		if C.last[i] != nil {
			rec.MaxForce = math.Max(rec.MaxForce, C.last[i].MaxVecNorm())
		}
	}
	return rec
}
