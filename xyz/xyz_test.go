/*
 * xyz_test.go, part of siesta-sfl.
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

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neb "github.com/siesta-project/siesta-sfl"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

const water = `3
water molecule
O   0.000000  0.000000  0.117300
H   0.000000  0.757200 -0.469200
H   0.000000 -0.757200 -0.469200
`

func TestRead(Te *testing.T) {
	frames, err := Read(strings.NewReader(water + "\n" + water))
	require.NoError(Te, err)
	require.Len(Te, frames, 2)
	assert.Equal(Te, []string{"O", "H", "H"}, frames[1].Symbols)
	assert.Equal(Te, "water molecule", frames[0].Comment)
	assert.Equal(Te, -0.7572, frames[1].Coords.At(2, 1))

	//no final newline
	frames, err = Read(strings.NewReader(strings.TrimSpace(water)))
	require.NoError(Te, err)
	assert.Equal(Te, -0.4692, frames[0].Coords.At(2, 2))

	for _, bad := range []string{"", "three\n\n", "3\ncomment\nO 0 0 0\n", "1\nc\nH 0 0 x\n", water + "1\nc\nH 0 0 0\n"} {
		_, err = Read(strings.NewReader(bad))
		assert.Error(Te, err, "%q", bad)
	}
}

func TestWritePath(Te *testing.T) {
	frames, err := Read(strings.NewReader(water))
	require.NoError(Te, err)
	moved := frames[0].Coords.Clone()
	moved.AddFloat(moved, 1)
	images := []*neb.Image{neb.NewImage(frames[0].Coords), neb.NewImage(moved)}
	images[1].E = -0.5
	name := filepath.Join(Te.TempDir(), "path.xyz")
	require.NoError(Te, WritePath(name, frames[0].Symbols, images))
	back, err := ReadFile(name)
	require.NoError(Te, err)
	require.Len(Te, back, 2)
	assert.Equal(Te, "image=1 energy=-0.50000000", back[1].Comment)
	assert.True(Te, v3.EqualApprox(moved, back[1].Coords, 1e-6))

	err = WritePath(name, []string{"O"}, images)
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, name, e.FileName())

	_, err = ReadFile(filepath.Join(Te.TempDir(), "none.xyz"))
	assert.Error(Te, err)
	var b bytes.Buffer
	require.NoError(Te, Write(&b, []string{"X"}, v3.Zeros(1), "a\nb"))
	assert.Equal(Te, 3, strings.Count(b.String(), "\n"))
}

func TestMasses(Te *testing.T) {
	L, err := Masses([]string{"O", "H", "X"})
	require.NoError(Te, err)
	assert.Equal(Te, 16.0, L.Get(0))
	assert.Equal(Te, 1.008, L.Get(1))
	assert.Equal(Te, 1.0, L.Get(2))
	_, err = Masses([]string{"O", "Xx"})
	assert.Error(Te, err)
}

func TestCloseContacts(Te *testing.T) {
	frames, err := Read(strings.NewReader(water))
	require.NoError(Te, err)
	fr := frames[0]
	assert.Empty(Te, CloseContacts(fr.Symbols, fr.Coords, 0.5))
	//the O-H bonds are shorter than the sum of the covalent radii times 1.5
	c := CloseContacts(fr.Symbols, fr.Coords, 1.5)
	require.Len(Te, c, 2)
	assert.Equal(Te, 0, c[0].I)
	assert.InDelta(Te, 0.9578, c[0].Distance, 1e-3)
	//unknown elements are skipped
	assert.Empty(Te, CloseContacts([]string{"Q", "H", "H"}, fr.Coords, 1.5))
}
