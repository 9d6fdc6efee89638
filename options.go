/*
 * options.go, part of siesta-sfl.
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

const (
	//DefaultSpring is the spring constant for images without an explicit one.
	DefaultSpring = 0.1
	//NoClimbing as the ClimbAfter option disables the climbing image.
	NoClimbing = math.MaxInt
)

//Options contains the parameters for a Chain.
type Options struct {
	//Spring constant per image. Images without an explicit entry get the default
	//of the Lookup. If nil, DefaultSpring is used for all images.
	Springs *v3.Lookup

	//The climbing image correction is only considered once the iteration
	//counter of the chain is larger than ClimbAfter. NoClimbing disables it.
	ClimbAfter int

	//An image climbs when its energy exceeds that of both neighbors
	//by more than ClimbTol.
	ClimbTol float64

	//Variant selects how the NEB force is composed. It must be set before Force is called.
	Variant ForceVariant

	//Observer, if not nil, gets the intermediate results of every sweep.
	Observer Observer
}

//DefaultOptions returns options for a climbing image NEB with
//uniform springs, where climbing is allowed after 10 sweeps.
func DefaultOptions() *Options {
	return &Options{
		Springs:    v3.Uniform(DefaultSpring),
		ClimbAfter: 10,
		ClimbTol:   0,
		Variant:    NEB{},
	}
}
