/*
 * gonum.go, part of siesta-sfl.
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

//gonum.go contains most of what is needed for handling the gonum/mat types and facilities.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian components for one atom. The names of some functions in
//the library reflect this.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum Dense underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a Dense with 3 columns in a Matrix. Panics if A doesn't have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//data is used as backing storage, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l == 0 || l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d, or empty", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//VecView returns a view of the given vector of the matrix.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of r vectors of F, starting from the ith.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

//The following wrap the mat.Dense methods so the receiver and the
//arguments are unwrapped before gonum checks them for aliasing.

//Add puts A+B in the receiver.
func (F *Matrix) Add(A, B *Matrix) {
	sameShape(F, A, B)
	F.Dense.Add(A.Dense, B.Dense)
}

//Sub puts A-B in the receiver.
func (F *Matrix) Sub(A, B *Matrix) {
	sameShape(F, A, B)
	F.Dense.Sub(A.Dense, B.Dense)
}

//Scale puts c*A in the receiver.
func (F *Matrix) Scale(c float64, A *Matrix) {
	sameShape(F, A)
	F.Dense.Scale(c, A.Dense)
}

//MulElem puts the element-wise product of A and B in the receiver.
func (F *Matrix) MulElem(A, B *Matrix) {
	sameShape(F, A, B)
	F.Dense.MulElem(A.Dense, B.Dense)
}

//Copy copies A into the receiver. Panics if shapes differ.
func (F *Matrix) Copy(A *Matrix) {
	sameShape(F, A)
	F.Dense.Copy(A.Dense)
}

//Clone returns a newly allocated copy of F.
func (F *Matrix) Clone() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

//EqualApprox returns whether A and B have the same shape and their elements
//are all within tol of each other.
func EqualApprox(A, B *Matrix, tol float64) bool {
	return mat.EqualApprox(A.Dense, B.Dense, tol)
}

//sameShape panics with ErrShape unless all the given matrices have the
//same number of vectors.
func sameShape(ms ...*Matrix) {
	n := ms[0].NVecs()
	for _, v := range ms[1:] {
		if v.NVecs() != n {
			panic(ErrShape)
		}
	}
}

//Errors

//the same as neb.Error but avoids circular import.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//Error is the error type returned by the functions in this package that
//don't panic.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("siesta-sfl/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("siesta-sfl/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("siesta-sfl/v3: index out of range")
)
