/*
 * lookup.go, part of siesta-sfl.
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

package v3

//Lookup maps an index (an atom, an image) to a value. Indexes without an
//explicit entry get the default value. The zero value is not usable, use NewLookup
//or Uniform.
type Lookup struct {
	def    float64
	values map[int]float64
}

//NewLookup returns a Lookup with the default def and, if given,
//the explicit entries in the first map of values. The map is copied.
func NewLookup(def float64, values ...map[int]float64) *Lookup {
	L := &Lookup{def: def, values: make(map[int]float64)}
	if len(values) > 0 {
		for k, v := range values[0] {
			L.values[k] = v
		}
	}
	return L
}

//Uniform returns a Lookup that gives v for every index.
func Uniform(v float64) *Lookup {
	return NewLookup(v)
}

//Get returns the value for index i.
func (L *Lookup) Get(i int) float64 {
	if v, ok := L.values[i]; ok {
		return v
	}
	return L.def
}

//Set sets an explicit value for index i.
func (L *Lookup) Set(i int, v float64) {
	L.values[i] = v
}

//Default returns the value given to indexes without an explicit entry.
func (L *Lookup) Default() float64 {
	return L.def
}

//Len returns the number of explicit entries.
func (L *Lookup) Len() int {
	return len(L.values)
}

//Values returns the values for the indexes 0 to n-1.
func (L *Lookup) Values(n int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = L.Get(i)
	}
	return ret
}

//Each calls f with every explicit entry. The order is not defined.
func (L *Lookup) Each(f func(i int, v float64)) {
	for k, v := range L.values {
		f(k, v)
	}
}
