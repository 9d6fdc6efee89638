/*
 * interfaces.go, part of siesta-sfl.
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

import v3 "github.com/siesta-project/siesta-sfl/v3"

//ForceVariant composes the driving force of an interior image from the
//parts computed by the Chain. The variants in this package are NEB, DNEB,
//ThermalCINEB and ThermalNEB.
type ForceVariant interface {
	//Name returns a short name for the variant.
	Name() string

	//Check returns a ConfigurationError if the variant is not usable.
	Check() error

	//Compose returns the force for the image described by p. It must
	//not modify the matrices in p.
	Compose(p *Parts) *v3.Matrix
}

//Observer receives every intermediate vector computed for an image, and
//a summary of the whole path at the end of each sweep. It is meant for
//diagnostics, the numerical results never depend on it. The records
//and their matrices are not used by the Chain afterwards.
type Observer interface {
	//ImageForces is called once per image per sweep, by Chain.Force.
	ImageForces(rec *ImageRecord)

	//Sweep is called when the force for the last interior image
	//has been computed.
	Sweep(rec *SweepRecord)
}

//ImageRecord contains the vectors computed for one image in one sweep.
type ImageRecord struct {
	Iteration     int
	Index         int
	Energy        float64
	Coords        *v3.Matrix
	Force         *v3.Matrix //the force given by the evaluator
	Perpendicular *v3.Matrix
	Spring        *v3.Matrix
	NEB           *v3.Matrix //the composed force
	Tangent       *v3.Matrix
	Prev          *v3.Matrix //displacement from the previous image
	Next          *v3.Matrix //displacement to the next image
}

//SweepRecord summarizes the path after a sweep. All slices have one element per image,
//including the endpoints.
type SweepRecord struct {
	Iteration          int
	ReactionCoordinate []float64 //cumulative distance along the path, 0 for the initial image
	Energy             []float64
	DeltaE             []float64 //energy relative to the initial image
	Curvature          []float64 //force along the tangent, 0 for the endpoints
	MaxForce           float64   //largest per-atom norm of the NEB forces in the sweep
}

//multiObserver sends the records to several observers.
type multiObserver []Observer

//MultiObserver returns an Observer that passes every record to each of obs, in order.
func MultiObserver(obs ...Observer) Observer {
	return multiObserver(obs)
}

func (m multiObserver) ImageForces(rec *ImageRecord) {
	for _, o := range m {
		o.ImageForces(rec)
	}
}

func (m multiObserver) Sweep(rec *SweepRecord) {
	for _, o := range m {
		o.Sweep(rec)
	}
}
