/*
 * main_test.go, part of siesta-sfl.
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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siesta-project/siesta-sfl/config"
	"github.com/siesta-project/siesta-sfl/diag"
	"github.com/siesta-project/siesta-sfl/potential"
	"github.com/siesta-project/siesta-sfl/traj/stf"
	"github.com/siesta-project/siesta-sfl/xyz"
)

func TestFlags(Te *testing.T) {
	cfg, err := config.Load()
	require.NoError(Te, err)
	var out bytes.Buffer
	i, f, err := flags(cfg, []string{"-images", "3", "-variant", "dneb", "-out", "x"}, &out)
	require.NoError(Te, err)
	assert.Empty(Te, i)
	assert.Empty(Te, f)
	assert.Equal(Te, 3, cfg.NEB.Images)
	assert.Equal(Te, "dneb", cfg.NEB.Variant)
	assert.Equal(Te, "x", cfg.Out.Dir)

	_, _, err = flags(cfg, []string{"-initial", "a.stf"}, &out)
	assert.Error(Te, err)
	_, _, err = flags(cfg, []string{"-command", "siesta-wrapper"}, &out)
	assert.Error(Te, err)
	_, _, err = flags(cfg, []string{"extra"}, &out)
	assert.Error(Te, err)
	_, _, err = flags(cfg, []string{"-nope"}, &out)
	assert.Error(Te, err)
}

func TestEndpoints(Te *testing.T) {
	dir := Te.TempDir()
	sym, a, b, err := endpoints("", "")
	require.NoError(Te, err)
	assert.Equal(Te, []string{"X"}, sym)
	assert.Equal(Te, potential.MBMinimumA[0], a.At(0, 0))
	assert.Equal(Te, potential.MBMinimumB[1], b.At(0, 1))

	name := filepath.Join(dir, "ini.stf")
	w, err := stf.NewWriter(name, 1, map[string]string{"prec": "6"})
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(b))
	require.NoError(Te, w.Close())
	_, a2, b2, err := endpoints(name, name)
	require.NoError(Te, err)
	assert.InDelta(Te, b.At(0, 0), a2.At(0, 0), 1e-6)
	assert.InDelta(Te, b.At(0, 1), b2.At(0, 1), 1e-6)
	_, _, _, err = endpoints(name, filepath.Join(dir, "missing.stf"))
	assert.Error(Te, err)

	xname := filepath.Join(dir, "ini.xyz")
	require.NoError(Te, os.WriteFile(xname, []byte("2\nco\nC 0 0 0\nO 0 0 1.13\n"), 0o644))
	sym, a3, _, err := endpoints(xname, xname)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"C", "O"}, sym)
	assert.Equal(Te, 1.13, a3.At(1, 2))
}

func TestExecute(Te *testing.T) {
	dir := filepath.Join(Te.TempDir(), "out")
	Te.Setenv("LOG_LEVEL", "warn")
	args := []string{"-images", "5", "-sweeps", "20", "-out", dir, "-workers", "2"}
	require.NoError(Te, execute(context.Background(), args, os.Stderr))
	for _, name := range []string{diag.ProfileFile, PathFile, "profile.png", "convergence.png", "neb_001.stf", "tangent_005.stf"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(Te, err, name)
	}
	frames, err := xyz.ReadFile(filepath.Join(dir, PathFile))
	require.NoError(Te, err)
	assert.Len(Te, frames, 7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(Te, execute(ctx, args, os.Stderr), context.Canceled)
}
