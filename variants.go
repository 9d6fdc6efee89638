/*
 * variants.go, part of siesta-sfl.
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
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//BoltzmannEV is the Boltzmann constant in eV/K.
const BoltzmannEV = 8.617333262e-5

//NEB is the plain nudged elastic band: perpendicular force plus spring force.
//Images that climb get, instead, the true force with its component along the
//tangent inverted.
type NEB struct{}

func (NEB) Name() string { return "neb" }

func (NEB) Check() error { return nil }

func (NEB) Compose(p *Parts) *v3.Matrix {
	if p.Climbing {
		return climb(p)
	}
	return perpPlusSpring(p.Perpendicular, p)
}

//DNEB is the doubly nudged elastic band. On top of the NEB force, non-climbing
//images get the part of the spring force that is perpendicular to the
//perpendicular force.
type DNEB struct{}

func (DNEB) Name() string { return "dneb" }

func (DNEB) Check() error { return nil }

func (DNEB) Compose(p *Parts) *v3.Matrix {
	if p.Climbing {
		return climb(p)
	}
	f := perpPlusSpring(p.Perpendicular, p)
	f.Add(f, perpendicular(p.Spring, p.Perpendicular))
	return f
}

//WalesDNEB is the doubly nudged elastic band of Trygubenko and Wales, J. Chem. Phys. 120, 2082 (2004).
//The correction is built from the full spring force k(Next-Prev): its part
//perpendicular to the tangent, with the component along the perpendicular
//force removed.
type WalesDNEB struct{}

func (WalesDNEB) Name() string { return "twdneb" }

func (WalesDNEB) Check() error { return nil }

func (WalesDNEB) Compose(p *Parts) *v3.Matrix {
	if p.Climbing {
		return climb(p)
	}
	f := perpPlusSpring(p.Perpendicular, p)
	f.Add(f, doubleNudge(p))
	return f
}

//doubleNudge returns the Trygubenko-Wales correction for the image described by p.
func doubleNudge(p *Parts) *v3.Matrix {
	n := p.Force.NVecs()
	full := v3.Zeros(n)
	full.Sub(p.Next, p.Prev)
	full.Scale(p.SpringConstant, full)
	sperp := perpendicular(full, p.Tangent)
	//a zero perpendicular force gives no direction to remove.
	return perpendicular(sperp, p.Perpendicular)
}

//ThermalCINEB is a climbing image NEB where the perpendicular force of the
//non-climbing images is shifted by curvature*kB*T, an entropic correction for
//an effective temperature (in K).
type ThermalCINEB struct {
	Temperature float64
}

func (ThermalCINEB) Name() string { return "tcineb" }

func (T ThermalCINEB) Check() error { return checkTemperature(T.Temperature) }

func (T ThermalCINEB) Compose(p *Parts) *v3.Matrix {
	if p.Climbing {
		return climb(p)
	}
	return perpPlusSpring(thermalPerpendicular(p, T.Temperature), p)
}

//ThermalNEB is the temperature-dependent NEB. It always applies the
//correction of ThermalCINEB, and has no climbing image.
type ThermalNEB struct {
	Temperature float64
}

func (ThermalNEB) Name() string { return "tdneb" }

func (T ThermalNEB) Check() error { return checkTemperature(T.Temperature) }

func (T ThermalNEB) Compose(p *Parts) *v3.Matrix {
	return perpPlusSpring(thermalPerpendicular(p, T.Temperature), p)
}

func checkTemperature(t float64) error {
	if t < 0 {
		return newError(ConfigurationError, "Check", "negative temperature %g", t)
	}
	return nil
}

//thermalPerpendicular returns the perpendicular force minus curvature/beta,
//with beta=1/(kB*T), subtracted from every component.
func thermalPerpendicular(p *Parts, temperature float64) *v3.Matrix {
	ret := v3.Zeros(p.Force.NVecs())
	ret.AddFloat(p.Perpendicular, -p.Curvature*BoltzmannEV*temperature)
	return ret
}

//perpPlusSpring returns perp plus the spring force in p.
func perpPlusSpring(perp *v3.Matrix, p *Parts) *v3.Matrix {
	f := v3.Zeros(perp.NVecs())
	f.Add(perp, p.Spring)
	return f
}

//climb returns the true force with its component along the tangent inverted.
func climb(p *Parts) *v3.Matrix {
	proj := v3.Zeros(p.Force.NVecs())
	proj.Project(p.Force, p.Tangent)
	proj.Scale(2, proj)
	f := v3.Zeros(p.Force.NVecs())
	f.Sub(p.Force, proj)
	return f
}

//VariantByName returns the variant with the given name (as returned by Name).
//temperature is only used by the temperature-dependent variants.
func VariantByName(name string, temperature float64) (ForceVariant, error) {
	var v ForceVariant
	switch name {
	case "neb", "cineb":
		v = NEB{}
	case "dneb":
		v = DNEB{}
	case "twdneb":
		v = WalesDNEB{}
	case "tcineb":
		v = ThermalCINEB{temperature}
	case "tdneb":
		v = ThermalNEB{temperature}
	default:
		return nil, newError(ConfigurationError, "VariantByName", "unknown NEB variant %q", name)
	}
	if err := v.Check(); err != nil {
		return nil, errDecorate(err, "VariantByName")
	}
	return v, nil
}
