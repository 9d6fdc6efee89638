/*
 * potential_test.go, part of siesta-sfl.
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

package potential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neb "github.com/siesta-project/siesta-sfl"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

func TestMullerBrownStationary(Te *testing.T) {
	M := NewMullerBrown(1)
	for _, c := range []struct {
		p [2]float64
		e float64
	}{
		{MBMinimumA, -146.699517},
		{MBMinimumB, -108.166724},
		{MBMinimumC, -80.767818},
		{MBSaddle1, -40.664843},
		{MBSaddle2, -72.248940},
	} {
		e, fx, fy, fz := M.At(c.p[0], c.p[1], 0)
		assert.InDelta(Te, c.e, e, 1e-5, "%v", c.p)
		assert.InDelta(Te, 0, fx, 0.01, "%v", c.p)
		assert.InDelta(Te, 0, fy, 0.01, "%v", c.p)
		assert.Zero(Te, fz)
	}
}

func TestMullerBrownForces(Te *testing.T) {
	M := &MullerBrown{Scale: 0.01, Kz: 2}
	h := 1e-6
	for _, p := range [][3]float64{{0, 0, 0}, {-0.3, 0.8, 0.2}, {0.5, 1.2, -0.4}, {-1, 1.5, 0}} {
		_, fx, fy, fz := M.At(p[0], p[1], p[2])
		ex1, _, _, _ := M.At(p[0]+h, p[1], p[2])
		ex0, _, _, _ := M.At(p[0]-h, p[1], p[2])
		ey1, _, _, _ := M.At(p[0], p[1]+h, p[2])
		ey0, _, _, _ := M.At(p[0], p[1]-h, p[2])
		ez1, _, _, _ := M.At(p[0], p[1], p[2]+h)
		ez0, _, _, _ := M.At(p[0], p[1], p[2]-h)
		assert.InDelta(Te, -(ex1-ex0)/(2*h), fx, 1e-5, "%v", p)
		assert.InDelta(Te, -(ey1-ey0)/(2*h), fy, 1e-5, "%v", p)
		assert.InDelta(Te, -(ez1-ez0)/(2*h), fz, 1e-5, "%v", p)
	}
}

func TestMullerBrownEvaluate(Te *testing.T) {
	M := NewMullerBrown(0)
	R, _ := v3.NewMatrix([]float64{MBMinimumA[0], MBMinimumA[1], 0, MBMinimumB[0], MBMinimumB[1], 1})
	img := &neb.Image{R: R}
	require.NoError(Te, M.Evaluate(context.Background(), img))
	assert.InDelta(Te, -146.699517-108.166724+0.5, img.E, 1e-4)
	assert.InDelta(Te, img.E, M.Energy(R), 1e-12)
	require.Equal(Te, 2, img.F.NVecs())
	assert.InDelta(Te, -1, img.F.At(1, 2), 1e-12)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(Te, M.Evaluate(ctx, img), context.Canceled)

	P := MBPoint(MBMinimumC)
	assert.Equal(Te, 1, P.NVecs())
	assert.Equal(Te, MBMinimumC[1], P.At(0, 1))
}

//The test binary itself acts as the external program when this variable is set.
const helperEnv = "SIESTA_SFL_HELPER_PROCESS"

func TestHelperProcess(Te *testing.T) {
	mode := os.Getenv(helperEnv)
	if mode == "" {
		return
	}
	switch mode {
	case "ok":
		//ignores the coordinates.
		fmt.Println("# energy")
		fmt.Println("-1.5")
		fmt.Println("0.1 0.2 0.3")
		fmt.Println("")
		fmt.Println("-0.1 -0.2 -0.3")
	case "short":
		fmt.Println("-1.5")
		fmt.Println("0.1 0.2 0.3")
	case "fail":
		fmt.Fprintln(os.Stderr, "no convergence")
		os.Exit(3)
	case "slow":
		time.Sleep(time.Minute)
	}
	os.Exit(0)
}

func helper(mode string) *Command {
	C := NewCommand(os.Args[0], "-test.run=TestHelperProcess")
	C.Env = append(os.Environ(), helperEnv+"="+mode)
	return C
}

func TestCommand(Te *testing.T) {
	R, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 1, 1})
	img := neb.NewImage(R)
	require.NoError(Te, helper("ok").Evaluate(context.Background(), img))
	assert.Equal(Te, -1.5, img.E)
	assert.InDelta(Te, -0.3, img.F.At(1, 2), 1e-12)

	img = neb.NewImage(R.Clone())
	err := helper("short").Evaluate(context.Background(), img)
	require.Error(Te, err)
	assert.Zero(Te, img.E, "the image is not modified on errors")
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, os.Args[0], e.Program())
	assert.True(Te, e.Critical())

	err = helper("fail").Evaluate(context.Background(), img)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "no convergence")
	var exit *exec.ExitError
	require.True(Te, errors.As(err, &exit))
	assert.Equal(Te, 3, exit.ExitCode())
}

func TestCommandCancel(Te *testing.T) {
	R, _ := v3.NewMatrix([]float64{0, 0, 0})
	img := neb.NewImage(R)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := helper("slow").Evaluate(ctx, img)
	require.Error(Te, err)
	assert.Less(Te, time.Since(start), 30*time.Second, "the program is killed")
	assert.ErrorIs(Te, err, context.DeadlineExceeded)
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.True(Te, e.Critical())

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	err = helper("ok").Evaluate(ctx, img)
	assert.ErrorIs(Te, err, context.Canceled)
	assert.Zero(Te, img.E)
}

func TestParseOutput(Te *testing.T) {
	_, _, err := parseOutput([]byte(""), 1)
	assert.Error(Te, err)
	_, _, err = parseOutput([]byte("1 2\n"), 1)
	assert.Error(Te, err)
	_, _, err = parseOutput([]byte("1\n1 2 x\n"), 1)
	assert.Error(Te, err)
	e, F, err := parseOutput([]byte("  2.5\n#forces\n1 2 3\n"), 1)
	require.NoError(Te, err)
	assert.Equal(Te, 2.5, e)
	assert.Equal(Te, 3.0, F.At(0, 2))
}
