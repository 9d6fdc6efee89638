/*
 * tangent_test.go, part of siesta-sfl.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//bent returns a 3-image chain where atom 0 goes from the origin through p to (2,0,0).
func bent(p [3]float64, es []float64) *Chain {
	imgs := line([]float64{0, 0, 2}, es)
	for j, v := range p {
		imgs[1].R.Set(0, j, v)
	}
	C, _ := NewChain(imgs, nil)
	return C
}

func TestTangentIncreasing(Te *testing.T) {
	C := bent([3]float64{1, 1, 0}, []float64{0, 1, 2})
	t, err := C.Tangent(1)
	require.NoError(Te, err)
	next, _ := C.Displacement(1, 2)
	next.Unit(next)
	assert.True(Te, v3.EqualApprox(next, t, 1e-14))
	assert.InDelta(Te, 1.0, t.Norm(), 1e-14)
}

func TestTangentDecreasing(Te *testing.T) {
	C := bent([3]float64{1, 1, 0}, []float64{2, 1, 0})
	t, _ := C.Tangent(1)
	assert.InDeltaSlice(Te, []float64{1 / math.Sqrt2, 1 / math.Sqrt2, 0}, t.RawMatrix().Data[:3], 1e-14)
}

func TestTangentExtremum(Te *testing.T) {
	//a maximum with a lower previous image: next gets the largest weight.
	C := bent([3]float64{1, 1, 0}, []float64{0, 1, 0.5})
	t, _ := C.Tangent(1)
	want := []float64{1*1 + 0.5*1, -1*1 + 0.5*1, 0}
	n := math.Hypot(want[0], want[1])
	assert.InDeltaSlice(Te, []float64{want[0] / n, want[1] / n, 0}, t.RawMatrix().Data[:3], 1e-14)

	//equal neighbor energies fall in the mixed case, with prev weighted by dmax.
	C = bent([3]float64{1, 1, 0}, []float64{0, 1, 0})
	t, _ = C.Tangent(1)
	assert.InDeltaSlice(Te, []float64{1, 0, 0}, t.RawMatrix().Data[:3], 1e-14)

	//a minimum
	C = bent([3]float64{1, 1, 0}, []float64{1, 0, 3})
	t, _ = C.Tangent(1)
	want = []float64{3*1 + 1*1, 3*-1 + 1*1, 0}
	n = math.Hypot(want[0], want[1])
	assert.InDeltaSlice(Te, []float64{want[0] / n, want[1] / n, 0}, t.RawMatrix().Data[:3], 1e-14)
}

func TestTangentPlateau(Te *testing.T) {
	C := bent([3]float64{1, 1, 0}, []float64{1, 1, 1})
	t, _ := C.Tangent(1)
	assert.Zero(Te, t.Norm())
}

func TestTangentDegenerate(Te *testing.T) {
	//the interior image sits on the final one
	C := bent([3]float64{2, 0, 0}, []float64{0, 1, 2})
	t, _ := C.Tangent(1)
	assert.Zero(Te, t.Norm())

	//mixed case with a zero displacement: no normalization.
	C = bent([3]float64{2, 0, 0}, []float64{0, 1, 0.5})
	t, _ = C.Tangent(1)
	assert.InDeltaSlice(Te, []float64{1, 0, 0}, t.RawMatrix().Data[:3], 1e-14) //next is 0, prev*dmin=(2,0,0)*0.5

	//non-degenerate tangents always have unit norm
	for _, es := range [][]float64{{0, 1, 2}, {2, 1, 0}, {0, 1, 0.3}, {0.3, 1, 0}, {1, 0, 1}, {5, 5, 6}} {
		C = bent([3]float64{1, 0.3, -0.2}, es)
		t, _ = C.Tangent(1)
		assert.InDelta(Te, 1.0, t.Norm(), 1e-12, "%v", es)
	}
}
