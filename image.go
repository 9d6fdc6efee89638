/*
 * image.go, part of siesta-sfl.
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

import v3 "github.com/siesta-project/siesta-sfl/v3"

//Image is one atomic configuration along the path.
//R and F are updated in place by the evaluator and the optimizers, E only by the evaluator.
type Image struct {
	R *v3.Matrix //coordinates
	F *v3.Matrix //forces
	E float64    //energy
}

//NewImage returns an image with the coordinates R, zero forces and zero energy.
func NewImage(R *v3.Matrix) *Image {
	return &Image{R: R, F: v3.Zeros(R.NVecs())}
}

//Len returns the number of atoms in the image.
func (I *Image) Len() int {
	return I.R.NVecs()
}

//Interpolate returns n+2 images, initial, final, and n interior images
//placed evenly in the straight line between them.
func Interpolate(initial, final *v3.Matrix, n int) ([]*Image, error) {
	if initial.NVecs() != final.NVecs() {
		return nil, newError(ShapeMismatch, "Interpolate", "initial structure has %d atoms, final has %d", initial.NVecs(), final.NVecs())
	}
	if n < 0 {
		return nil, newError(ConfigurationError, "Interpolate", "negative number of images %d", n)
	}
	natoms := initial.NVecs()
	step := v3.Zeros(natoms)
	step.Sub(final, initial)
	step.Scale(1/float64(n+1), step)
	ret := make([]*Image, 0, n+2)
	ret = append(ret, NewImage(initial.Clone()))
	for i := 1; i <= n; i++ {
		R := v3.Zeros(natoms)
		R.Scale(float64(i), step)
		R.Add(R, initial)
		ret = append(ret, NewImage(R))
	}
	ret = append(ret, NewImage(final.Clone()))
	return ret, nil
}
