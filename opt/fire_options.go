/*
 * fire_options.go, part of siesta-sfl.
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

import v3 "github.com/siesta-project/siesta-sfl/v3"

//Mode selects whether FIRE treats the system as a whole (Global) or
//atom by atom (Local) when mixing velocities or capping displacements.
type Mode string

const (
	Local  Mode = "local"
	Global Mode = "global"
)

//check returns a configuration error unless m is Local or Global.
func (m Mode) check(caller, what string) error {
	if m != Local && m != Global {
		return configErr(caller, "%s mode must be %q or %q, got %q", what, Local, Global, string(m))
	}
	return nil
}

//FIREOptions contains the parameters of the FIRE integrator.
type FIREOptions struct {
	Dt     float64 //initial timestep
	DtMax  float64 //the timestep never grows beyond this
	FInc   float64 //timestep increase factor
	FDec   float64 //timestep decrease factor
	Alpha  float64 //initial mixing coefficient
	FAlpha float64 //mixing coefficient decay factor
	NMin   int     //consecutive steps with positive power needed before accelerating

	MaxDF     float64 //largest displacement allowed in one step
	Tolerance float64 //convergence threshold on the largest per-atom force

	//Masses per atom. Atoms without an entry, or all atoms if Masses is nil, get unit mass.
	Masses *v3.Lookup

	Correction Mode //how the displacement is capped
	Direction  Mode //how the velocity is mixed toward the force
}

//DefaultFIREOptions returns the parameters recommended by Bitzek et al.,
//with a displacement cap suited for structures in Angstrom.
func DefaultFIREOptions() *FIREOptions {
	return &FIREOptions{
		Dt:         0.1,
		DtMax:      1.0,
		FInc:       1.1,
		FDec:       0.5,
		Alpha:      0.1,
		FAlpha:     0.99,
		NMin:       5,
		MaxDF:      0.1,
		Tolerance:  0.01,
		Masses:     v3.Uniform(1),
		Correction: Global,
		Direction:  Global,
	}
}

//validate returns the first problem found in O, or nil.
func (O *FIREOptions) validate() error {
	const c = "NewFIRE"
	switch {
	case O.Dt <= 0:
		return configErr(c, "initial timestep must be positive, got %g", O.Dt)
	case O.DtMax < O.Dt:
		return configErr(c, "maximum timestep %g smaller than the initial one %g", O.DtMax, O.Dt)
	case O.FInc < 1:
		return configErr(c, "timestep increase factor must be at least 1, got %g", O.FInc)
	case O.FDec <= 0 || O.FDec > 1:
		return configErr(c, "timestep decrease factor must be in (0,1], got %g", O.FDec)
	case O.Alpha < 0 || O.Alpha > 1:
		return configErr(c, "alpha must be in [0,1], got %g", O.Alpha)
	case O.FAlpha <= 0 || O.FAlpha > 1:
		return configErr(c, "alpha decay factor must be in (0,1], got %g", O.FAlpha)
	case O.NMin < 0:
		return configErr(c, "NMin can't be negative, got %d", O.NMin)
	case O.MaxDF <= 0:
		return configErr(c, "maximum displacement must be positive, got %g", O.MaxDF)
	case O.Tolerance < 0:
		return configErr(c, "tolerance can't be negative, got %g", O.Tolerance)
	}
	if err := O.Correction.check(c, "correction"); err != nil {
		return err
	}
	return O.Direction.check(c, "direction")
}
