/*
 * gocoords.go, part of siesta-sfl.
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
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//METHODS

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//flat returns the elements of F as one slice, in row-major order.
//The slice shares storage with F whenever F is contiguous.
func (F *Matrix) flat() []float64 {
	raw := F.RawMatrix()
	if raw.Stride == raw.Cols {
		return raw.Data[:raw.Rows*raw.Cols]
	}
	ret := make([]float64, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		ret = append(ret, raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols]...)
	}
	return ret
}

//Dot returns the dot product of A and B, both considered as flat vectors
//of 3N elements. Panics if they don't have the same number of vectors.
func Dot(A, B *Matrix) float64 {
	sameShape(A, B)
	return floats.Dot(A.flat(), B.flat())
}

//Norm returns the euclidean norm of F considered as a flat vector.
func (F *Matrix) Norm() float64 {
	return mat.Norm(F.Dense, 2)
}

//VecNorms returns the norm of each vector in F. If dst is given and
//has enough room, it is used to store the result.
func (F *Matrix) VecNorms(dst ...[]float64) []float64 {
	n := F.NVecs()
	var ret []float64
	if len(dst) > 0 && len(dst[0]) >= n {
		ret = dst[0][:n]
	} else {
		ret = make([]float64, n)
	}
	row := make([]float64, 3)
	for i := 0; i < n; i++ {
		mat.Row(row, i, F.Dense)
		ret[i] = floats.Norm(row, 2)
	}
	return ret
}

//MaxVecNorm returns the largest norm among the vectors of F.
func (F *Matrix) MaxVecNorm() float64 {
	return floats.Max(F.VecNorms())
}

//Project puts in the receiver the projection of A onto the direction
//of onto, i.e. (A·onto/onto·onto)*onto. If onto is zero, the projection is undefined
//and the receiver is set to zero.
func (F *Matrix) Project(A, onto *Matrix) {
	sameShape(F, A, onto)
	oo := Dot(onto, onto)
	if oo == 0 {
		F.Zero()
		return
	}
	F.Scale(Dot(A, onto)/oo, onto)
}

//Unit puts in the receiver A divided by its norm. If A has zero norm
//the receiver just gets a copy of A. Returns whether A was normalized.
func (F *Matrix) Unit(A *Matrix) bool {
	if A.Dense != F.Dense {
		F.Copy(A)
	}
	norm := F.Norm()
	if norm == 0 {
		return false
	}
	F.Scale(1.0/norm, F)
	return true
}

//AddFloat puts in the receiver a matrix which elements are
//those of matrix A plus the float B.
func (F *Matrix) AddFloat(A *Matrix, B float64) {
	sameShape(F, A)
	F.Apply(func(i, j int, v float64) float64 { return v + B }, A.Dense)
}

//Clamp puts in the receiver A, with each element clamped to the [lo,hi] interval.
func (F *Matrix) Clamp(A *Matrix, lo, hi float64) {
	sameShape(F, A)
	F.Apply(func(i, j int, v float64) float64 { return math.Max(lo, math.Min(hi, v)) }, A.Dense)
}

//SetVecs sets the vectors with index n = each value on clist, in the receiver, to the
//n vector of A.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr < len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(val, j, A.At(key, j))
		}
	}
}

//SomeVecs puts in the receiver all the ith vectors of matrix A,
//where i are the numbers in clist. The vectors are in the same order
//than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense) //now row has a slice with the row i
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
			continue
		} else if i == r-1 {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2])
			continue
		} else {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
		}
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}
