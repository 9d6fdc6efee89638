/*
 * opt_test.go, part of siesta-sfl.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	v3 "github.com/siesta-project/siesta-sfl/v3"
)

func TestNorm1D(Te *testing.T) {
	A, _ := v3.NewMatrix([]float64{3, 4, 0, 0, 0, -2})
	assert.InDeltaSlice(Te, []float64{5, 2}, Norm1D(A), 1e-12)
	flat := mat.NewVecDense(3, []float64{-1, 2, -3})
	assert.Equal(Te, []float64{1, 2, 3}, Norm1D(flat))
}

func TestFlatDot(Te *testing.T) {
	A, _ := v3.NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	B, _ := v3.NewMatrix([]float64{1, 0, 0, 0, 0, 1})
	assert.InDelta(Te, 7.0, FlatDot(A, B), 1e-12)
	//the shapes don't matter, only the number of elements.
	C := mat.NewDense(2, 3, []float64{1, 1, 1, 1, 1, 1})
	D := mat.NewDense(3, 2, []float64{1, 1, 1, 1, 1, 1})
	assert.Equal(Te, 6.0, FlatDot(C, D))
	assert.Panics(Te, func() { FlatDot(A, mat.NewVecDense(2, nil)) })
}
