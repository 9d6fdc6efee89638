/*
 * atomicdata.go, part of siesta-sfl.
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

package xyz

//Atomic masses, in atomic mass units, for assigning
//masses to the atoms read from XYZ files.
//"X" is a dummy atom, used for model systems.
var symbolMass = map[string]float64{
	"X":  1.0,
	"H":  1.008,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Ti": 47.87,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Ga": 69.72,
	"Ge": 72.63,
	"As": 74.92,
	"Se": 78.96,
	"Br": 79.904,
	"Pd": 106.42,
	"Ag": 107.87,
	"I":  126.90,
	"Pt": 195.08,
	"Au": 196.97,
}

//Covalent radii, in Angstrom, used to detect atoms that are too close to each
//other, which often happens in linearly interpolated paths.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Ti": 1.60,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.2,
	"Br": 1.2,
	"Pd": 1.39,
	"Ag": 1.45,
	"I":  1.39,
	"Pt": 1.36,
	"Au": 1.36,
}
