/*
 * doc.go, part of siesta-sfl.
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

/*Package neb is the main package of siesta-sfl. It computes minimum energy paths between
two fixed atomic configurations with the Nudged Elastic Band (NEB) method.

The path is a Chain of Images: the fixed initial and final structures and
N interior images between them. Once per iteration, an external evaluator
(a DFT code, a force field, or one of the model potentials in the potential
package) fills the coordinates, energy and forces of every image. The Chain
then turns those raw forces into the NEB force for each interior image:
the component of the true force perpendicular to the local path tangent
plus a spring force along the tangent, with the climbing image,
doubly-nudged and temperature-dependent corrections available through
ForceVariant implementations. The NEB forces are given to one optimizer per
image (see the opt package) which returns the new coordinates.

	**Capabilities**

    Tangent estimation with the energy-weighted switching rule of
	Henkelman and Jónsson, J. Chem. Phys. 113, 9978 (2000).

    Spring forces with per-image spring constants.

    Plain NEB, climbing image NEB, doubly nudged elastic band (DNEB) and
	temperature-dependent variants.

    Linear interpolation of the initial path.

    An Observer interface to export every intermediate vector and a per-sweep
	energy profile (see the diag and nebplot packages).

The run package puts all of this together in a driver loop.
*/
package neb
