/*
 * v3_test.go, part of siesta-sfl.
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

package v3

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	_, err = NewMatrix(nil)
	assert.Error(Te, err)
	assert.Panics(Te, func() { A.VecView(2) })
}

func TestViews(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	View := A.VecView(1)
	View.Set(0, 0, 100)
	fmt.Println("View\n", A, "\n", View)
	assert.Equal(Te, 100.0, A.At(1, 0))
	sub := A.View(1, 2)
	assert.Equal(Te, 2, sub.NVecs())
	assert.Equal(Te, 7.0, sub.At(1, 0))
}

func TestArithmetic(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	B, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	C := Zeros(2)
	C.Sub(A, B)
	assert.InDeltaSlice(Te, []float64{0, 1, 2, 2, 3, 4}, C.RawMatrix().Data, 1e-12)
	C.Add(C, B)
	assert.True(Te, EqualApprox(A, C, 1e-12))
	C.Scale(-2, C)
	assert.Equal(Te, -12.0, C.At(1, 2))
	C.AddFloat(A, 4)
	assert.Equal(Te, 5.0, C.At(0, 0))
	C.Clamp(A, -2, 2.5)
	assert.InDeltaSlice(Te, []float64{1, 2, 2.5, 2.5, 2.5, 2.5}, C.RawMatrix().Data, 1e-12)
	D := Zeros(3)
	assert.Panics(Te, func() { D.Add(A, B) })
}

func TestDotNorm(Te *testing.T) {
	A, _ := NewMatrix([]float64{3, 0, 0, 0, 4, 0})
	B, _ := NewMatrix([]float64{1, 1, 1, 1, 1, 1})
	assert.InDelta(Te, 7.0, Dot(A, B), 1e-12)
	assert.InDelta(Te, 5.0, A.Norm(), 1e-12)
	assert.InDeltaSlice(Te, []float64{3, 4}, A.VecNorms(), 1e-12)
	assert.InDelta(Te, 4.0, A.MaxVecNorm(), 1e-12)
	//views share storage with their parent.
	assert.InDelta(Te, 3.0, Dot(A.VecView(0), B.VecView(1)), 1e-12)
}

func TestProjectUnit(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 0, 0, 0, 3})
	t, _ := NewMatrix([]float64{2, 0, 0, 0, 0, 0})
	P := Zeros(2)
	P.Project(A, t)
	assert.InDeltaSlice(Te, []float64{1, 0, 0, 0, 0, 0}, P.RawMatrix().Data, 1e-12)
	P.Project(A, Zeros(2))
	assert.Zero(Te, P.Norm())

	U := Zeros(2)
	assert.True(Te, U.Unit(A))
	assert.InDelta(Te, 1.0, U.Norm(), 1e-12)
	assert.InDelta(Te, 1/math.Sqrt(14), U.At(0, 0), 1e-12)
	assert.False(Te, U.Unit(Zeros(2)))
	assert.Zero(Te, U.Norm())
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	B := Zeros(3)
	cind := []int{1, 3, 5}
	B.SomeVecs(A, cind)
	assert.Equal(Te, 10.0, B.At(1, 0))
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	assert.Equal(Te, 55.0, A.At(3, 1))
	fmt.Println(A, "\n", B)
}

func TestLookup(Te *testing.T) {
	L := NewLookup(0.1, map[int]float64{2: 0.5})
	assert.Equal(Te, 0.1, L.Get(0))
	assert.Equal(Te, 0.5, L.Get(2))
	L.Set(7, 3)
	assert.Equal(Te, 2, L.Len())
	assert.Equal(Te, []float64{0.1, 0.1, 0.5}, L.Values(3))
	U := Uniform(1)
	assert.Equal(Te, 1.0, U.Get(1000))
	assert.Equal(Te, 0, U.Len())
	n := 0
	L.Each(func(i int, v float64) { n++ })
	assert.Equal(Te, 2, n)
}
