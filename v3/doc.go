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

/*Package v3 implements a Matrix type representing a row-major 3D matrix (i.e. a Nx3 matrix).
The v3.Matrix is used to represent per-atom vector fields in siesta-sfl: coordinates,
forces, velocities, path tangents and displacements between images.
It is based on gonum's (gonum.org/v1/gonum/mat) Dense type, with some additional restrictions
because of the fixed number of columns and with some additional functions that were found
useful for the nudged elastic band machinery.

Within the package a "vector" is a row, i.e. the 3 cartesian components for one atom.
Functions that operate on the whole matrix (Dot, Norm) treat it as a single flattened
vector of 3N components.

The package also provides Lookup, a sparse-or-uniform mapping from an index to
a value, used for per-image spring constants and per-atom masses.
*/
package v3
