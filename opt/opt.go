/*
 * opt.go, part of siesta-sfl.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Optimizer is the capability shared by all optimizers.
type Optimizer interface {
	//Reset brings the adaptive parameters of the optimizer back to their
	//initial values, keeping the configuration.
	Reset()

	//Optimize takes the coordinates F and the force G and returns
	//the new coordinates. F is not modified.
	Optimize(F, G *v3.Matrix) (*v3.Matrix, error)

	//Converged returns true once the force given to Optimize went below the
	//convergence tolerance.
	Converged() bool
}

//Factory returns a new, independent, Optimizer.
type Factory func() (Optimizer, error)

//Norm1D returns the norm of each row of A, i.e. one norm per atom. If A
//is a flat (single-column) vector, it returns the absolute value of each element.
func Norm1D(A mat.Matrix) []float64 {
	r, c := A.Dims()
	ret := make([]float64, r)
	if c == 1 {
		for i := range ret {
			ret[i] = math.Abs(A.At(i, 0))
		}
		return ret
	}
	row := make([]float64, c)
	for i := range ret {
		for j := range row {
			row[j] = A.At(i, j)
		}
		ret[i] = floats.Norm(row, 2)
	}
	return ret
}

//FlatDot flattens A and B in row-major order and returns their dot product.
//Panics if they don't have the same number of elements.
func FlatDot(A, B mat.Matrix) float64 {
	a := flatten(A)
	b := flatten(B)
	if len(a) != len(b) {
		panic(v3.ErrShape)
	}
	return floats.Dot(a, b)
}

func flatten(A mat.Matrix) []float64 {
	r, c := A.Dims()
	ret := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret = append(ret, A.At(i, j))
		}
	}
	return ret
}

//Errors

type errKind int

const (
	configuration errKind = iota + 1
	shape
)

//Error is the error type for this package. Errors can be compared to
//ErrConfiguration and ErrShape with errors.Is.
type Error struct {
	message  string
	deco     []string
	critical bool
	kind     errKind
}

var (
	ErrConfiguration = Error{message: "invalid optimizer configuration", kind: configuration, critical: true}
	ErrShape         = Error{message: "coordinates and force have different shapes", kind: shape, critical: true}
)

func (err Error) Error() string {
	if len(err.deco) > 0 {
		return fmt.Sprintf("opt: %s (in %v)", err.message, err.deco)
	}
	return "opt: " + err.message
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Is allows errors.Is to compare the error with the package's sentinels.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.kind == err.kind
}

func configErr(caller, format string, args ...interface{}) Error {
	return Error{fmt.Sprintf(format, args...), []string{caller}, true, configuration}
}
