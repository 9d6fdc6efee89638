/*
 * diag_test.go, part of siesta-sfl.
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

package diag

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neb "github.com/siesta-project/siesta-sfl"
	"github.com/siesta-project/siesta-sfl/traj/stf"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//chain returns a 4-image chain of 2 atoms with a bump in the energy,
//observed by W.
func chain(Te *testing.T, W neb.Observer) *neb.Chain {
	xs := []float64{0, 1, 2, 3}
	es := []float64{0, 1, 0.5, 0}
	imgs := make([]*neb.Image, len(xs))
	for i, x := range xs {
		R, err := v3.NewMatrix([]float64{x, 0.1 * x * x, 0, 0, 0, 0})
		require.NoError(Te, err)
		imgs[i] = neb.NewImage(R)
		imgs[i].E = es[i]
		imgs[i].F.Set(0, 0, -0.5)
		imgs[i].F.Set(0, 1, 0.25)
	}
	o := neb.DefaultOptions()
	o.Observer = W
	C, err := neb.NewChain(imgs, o)
	require.NoError(Te, err)
	return C
}

func sweeps(Te *testing.T, C *neb.Chain, n int) {
	for s := 0; s < n; s++ {
		for i := 1; i <= C.NImages(); i++ {
			_, err := C.Force(i)
			require.NoError(Te, err)
		}
	}
}

func TestWriter(Te *testing.T) {
	dir := filepath.Join(Te.TempDir(), "out")
	W, err := New(dir, 2, nil)
	require.NoError(Te, err)
	C := chain(Te, W)
	sweeps(Te, C, 3)
	require.NoError(Te, W.Close())
	require.NoError(Te, W.Close(), "Close is idempotent")

	for _, s := range AllSeries() {
		for i := 1; i <= 2; i++ {
			r, h, err := stf.New(W.FileName(s, i))
			require.NoError(Te, err, s)
			assert.Equal(Te, s, h["series"])
			frames := 0
			c := v3.Zeros(2)
			for {
				err = r.Next(c)
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(Te, err)
				frames++
			}
			assert.Equal(Te, 3, frames, s)
		}
	}
	//the last frame of the coordinates must be the coordinates of the image.
	r, _, err := stf.New(W.FileName(Coords, 1))
	require.NoError(Te, err)
	c := v3.Zeros(2)
	require.NoError(Te, r.Next(c))
	r.Close()
	img, _ := C.Image(1)
	assert.True(Te, v3.EqualApprox(img.R, c, 1e-4))

	f, err := os.Open(filepath.Join(dir, ProfileFile))
	require.NoError(Te, err)
	defer f.Close()
	rows, blanks := 0, 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		l := sc.Text()
		switch {
		case strings.HasPrefix(l, "#"):
		case strings.TrimSpace(l) == "":
			blanks++
		default:
			rows++
			assert.Len(Te, strings.Fields(l), 6)
		}
	}
	assert.Equal(Te, 12, rows)
	assert.Equal(Te, 3, blanks)
}

func TestWriterSeries(Te *testing.T) {
	dir := Te.TempDir()
	_, err := New(dir, 2, &Options{Prec: 3, Series: []string{"bogus"}})
	assert.Error(Te, err)
	_, err = New(dir, 0, nil)
	assert.Error(Te, err)
	_, err = New(dir, 2, &Options{Prec: 0})
	assert.Error(Te, err)

	W, err := New(dir, 2, &Options{Prec: 3, Series: []string{NEB, Tangent}})
	require.NoError(Te, err)
	sweeps(Te, chain(Te, W), 1)
	require.NoError(Te, W.Close())
	_, err = os.Stat(W.FileName(NEB, 2))
	assert.NoError(Te, err)
	_, err = os.Stat(W.FileName(Coords, 2))
	assert.True(Te, os.IsNotExist(err))
}

func TestWriterStickyError(Te *testing.T) {
	W, err := New(Te.TempDir(), 2, nil)
	require.NoError(Te, err)
	//a record with the wrong number of atoms makes the STF writer fail.
	W.ImageForces(&neb.ImageRecord{Index: 1, Coords: v3.Zeros(3)})
	require.Error(Te, W.Err())
	first := W.Err()
	W.ImageForces(&neb.ImageRecord{Index: 1, Coords: v3.Zeros(1)})
	assert.Equal(Te, first, W.Err())
	assert.Equal(Te, first, W.Close())
}
