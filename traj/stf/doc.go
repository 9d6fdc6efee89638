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

/*Package stf implements the simple trajectory format, a compressed text format for sequences of
per-atom vector fields. siesta-sfl uses it to store the time series of coordinates, forces,
tangents and displacements of each image along a NEB run.
stf aims to produce reasonably small files and to be very easy to read and write, so readers/writers
can be easily implemented in other programming languages, while also being reasonably fast to write
and, especially, to read.

******************** Format Specification   ***************************************************

An STF file has the extension stf, and it is compressed with z-standard (zstd). Files which name
ends in 'z' (.stz) are compressed with gzip, 'r' (.str) with raw deflate, 'l' (.stl) with LZW.

A STF file may only contain ASCII symbols.

A STF file has a "header" starting in the first line, and ending with a line that starts with the
characters "**" followed by one or more spaces, and the number of vectors (atoms) per frame.

Each line of the header must be a pair key=value. The precision (an integer greater than 0,
see below) must be included in the header, with the corresponding key "prec". For example,
a 'precision' line could be:

prec=2

After the header, the file has one line per atom, per frame. Each line contains 3 integers,
corresponding to the x y and z components, respectively, and nothing more. Each
of these 3 numbers is the respective component multiplied by 10 to the
power of (precision), and rounded to make it an integer.

Each frame ends with a line starting with the character "*" (no whitespaces before). Anything
after the "*" in that line is ignored by this implementation.

The "**" sequence may only be used as a header termination, as described above and can not appear
anywhere else in the file.

***************************************************************************************************/
package stf
