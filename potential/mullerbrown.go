/*
 * mullerbrown.go, part of siesta-sfl.
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

package potential

import (
	"context"
	"math"

	neb "github.com/siesta-project/siesta-sfl"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Parameters of the Müller-Brown surface
//V(x,y) = sum_k A_k exp(a_k (x-x0_k)^2 + b_k (x-x0_k)(y-y0_k) + c_k (y-y0_k)^2)
var (
	mbA  = [4]float64{-200, -100, -170, 15}
	mba  = [4]float64{-1, -1, -6.5, 0.7}
	mbb  = [4]float64{0, 0, 11, 0.6}
	mbc  = [4]float64{-10, -10, -6.5, 0.7}
	mbx0 = [4]float64{1, 0, -0.5, -1}
	mby0 = [4]float64{0, 0.5, 1.5, 1}
)

//Stationary points of the (unscaled) Müller-Brown surface, as x, y pairs.
var (
	MBMinimumA = [2]float64{-0.558224, 1.441726} //E=-146.699517
	MBMinimumB = [2]float64{0.623499, 0.028038}  //E=-108.166724
	MBMinimumC = [2]float64{-0.050011, 0.466694} //E=-80.767818
	MBSaddle1  = [2]float64{-0.822002, 0.624313} //E=-40.664843, between A and C
	MBSaddle2  = [2]float64{0.212487, 0.292988}  //E=-72.248940, between C and B
)

//MullerBrown evaluates the Müller-Brown surface on the x and y coordinates of
//each atom, plus a harmonic well, 1/2 Kz z^2, on the z coordinate.
//The energy of an image is the sum over its atoms.
type MullerBrown struct {
	Scale float64 //multiplies energies and forces. 0 is taken as 1.
	Kz    float64
}

//NewMullerBrown returns a MullerBrown surface with energies multiplied by scale,
//and a harmonic constant of 1 on z.
func NewMullerBrown(scale float64) *MullerBrown {
	return &MullerBrown{Scale: scale, Kz: 1}
}

func (M *MullerBrown) scale() float64 {
	if M.Scale == 0 {
		return 1
	}
	return M.Scale
}

//At returns the energy and the force (minus the gradient) at the point x, y, z.
func (M *MullerBrown) At(x, y, z float64) (e float64, fx, fy, fz float64) {
	var gx, gy float64
	for k := 0; k < 4; k++ {
		dx := x - mbx0[k]
		dy := y - mby0[k]
		t := mbA[k] * math.Exp(mba[k]*dx*dx+mbb[k]*dx*dy+mbc[k]*dy*dy)
		e += t
		gx += t * (2*mba[k]*dx + mbb[k]*dy)
		gy += t * (mbb[k]*dx + 2*mbc[k]*dy)
	}
	s := M.scale()
	e = s*e + 0.5*M.Kz*z*z
	return e, -s * gx, -s * gy, -M.Kz * z
}

//Energy returns the energy for the coordinates R.
func (M *MullerBrown) Energy(R *v3.Matrix) float64 {
	var e float64
	for i := 0; i < R.NVecs(); i++ {
		ei, _, _, _ := M.At(R.At(i, 0), R.At(i, 1), R.At(i, 2))
		e += ei
	}
	return e
}

//Evaluate sets the energy and forces of img.
func (M *MullerBrown) Evaluate(ctx context.Context, img *neb.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if img.F == nil || img.F.NVecs() != img.R.NVecs() {
		img.F = v3.Zeros(img.R.NVecs())
	}
	var e float64
	for i := 0; i < img.R.NVecs(); i++ {
		ei, fx, fy, fz := M.At(img.R.At(i, 0), img.R.At(i, 1), img.R.At(i, 2))
		e += ei
		img.F.Set(i, 0, fx)
		img.F.Set(i, 1, fy)
		img.F.Set(i, 2, fz)
	}
	img.E = e
	return nil
}

//MBPoint returns the coordinates of a one-atom system at the point p, with z=0.
func MBPoint(p [2]float64) *v3.Matrix {
	R := v3.Zeros(1)
	R.Set(0, 0, p[0])
	R.Set(0, 1, p[1])
	return R
}
