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

/*Package opt contains the optimizers that move the images of a nudged elastic band.

All of them fulfill the Optimizer interface: they take the current coordinates of
an image and the force driving it, and return new coordinates. Each optimizer holds
its own state, so one instance is used per image. The package also provides the vector
helpers shared by every optimizer, Norm1D and FlatDot.

The only optimizer implemented here is FIRE, the Fast Inertial Relaxation Engine
of Bitzek et al., Phys. Rev. Lett. 97, 170201 (2006).
*/
package opt
