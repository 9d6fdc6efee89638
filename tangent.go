/*
 * tangent.go, part of siesta-sfl.
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

//Tangent returns the normalized tangent to the path at the interior image i.
//If the energy increases or decreases monotonically through i, the tangent points to
//the higher-energy neighbor. At extrema and plateaus, both displacements are mixed,
//weighted by the energy differences, so the tangent changes smoothly.
//A tangent that can't be normalized (because one of the displacements is zero)
//is returned as is.
func (C *Chain) Tangent(i int) (*v3.Matrix, error) {
	if err := C.CheckIndex(i, false); err != nil {
		return nil, errDecorate(err, "Tangent")
	}
	return C.tangent(i), nil
}

func (C *Chain) tangent(i int) *v3.Matrix {
	return tangentFrom(C.images[i-1].E, C.images[i].E, C.images[i+1].E, C.displacement(i-1, i), C.displacement(i, i+1))
}

//tangentFrom estimates the tangent from the energies of the previous, current and next images
//and the displacements prev (to the current image) and next (from the current image).
func tangentFrom(eprev, e, enext float64, prev, next *v3.Matrix) *v3.Matrix {
	t := v3.Zeros(prev.NVecs())
	switch {
	case eprev < e && e < enext:
		t.Unit(next)
	case eprev > e && e > enext:
		t.Unit(prev)
	default:
		dmax := math.Max(math.Abs(enext-e), math.Abs(eprev-e))
		dmin := math.Min(math.Abs(enext-e), math.Abs(eprev-e))
		wnext, wprev := dmin, dmax
		if enext > eprev {
			wnext, wprev = dmax, dmin
		}
		p := v3.Zeros(prev.NVecs())
		t.Scale(wnext, next)
		p.Scale(wprev, prev)
		t.Add(t, p)
		if next.Norm() == 0 || prev.Norm() == 0 {
			return t
		}
		t.Unit(t)
	}
	return t
}
