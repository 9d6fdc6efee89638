/*
 * command.go, part of siesta-sfl.
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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	neb "github.com/siesta-project/siesta-sfl"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Command obtains the energy and forces of an image from an external program.
//The program gets in its standard input the number of atoms in the first line,
//followed by one line with the x y z coordinates of each atom.
//It must write to its standard output a line with the energy, followed by
//one line with the x y z components of the force on each atom. Empty lines
//and lines starting with '#' are ignored.
type Command struct {
	Path string
	Args []string
	Dir  string   //working directory of the program. If empty, the current one.
	Env  []string //if not nil, the environment of the program.
}

//NewCommand returns a Command that runs path with the given arguments.
func NewCommand(path string, args ...string) *Command {
	return &Command{Path: path, Args: args}
}

func (C *Command) input(R *v3.Matrix) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d\n", R.NVecs())
	for i := 0; i < R.NVecs(); i++ {
		fmt.Fprintf(&b, "%.10f %.10f %.10f\n", R.At(i, 0), R.At(i, 1), R.At(i, 2))
	}
	return b.Bytes()
}

//Evaluate runs the program for img and sets its energy and forces.
//img is only modified if the program runs and its output is correct.
//The program is killed if ctx is done before it finishes.
func (C *Command) Evaluate(ctx context.Context, img *neb.Image) error {
	natoms := img.R.NVecs()
	cmd := exec.CommandContext(ctx, C.Path, C.Args...)
	cmd.Dir = C.Dir
	cmd.Env = C.Env
	cmd.Stdin = bytes.NewReader(C.input(img.R))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			//the program was killed, what matters is why.
			err = ctx.Err()
		}
		msg := fmt.Sprintf("%s: %s", err.Error(), strings.TrimSpace(stderr.String()))
		return Error{message: msg, program: C.Path, deco: []string{"exec.Output", "Evaluate"}, critical: true, cause: err}
	}
	e, F, err := parseOutput(out, natoms)
	if err != nil {
		return errDecorate(Error{message: err.Error(), program: C.Path, deco: []string{"parseOutput"}, critical: true, cause: err}, "Evaluate")
	}
	img.E = e
	if img.F == nil || img.F.NVecs() != natoms {
		img.F = F
	} else {
		img.F.Copy(F)
	}
	return nil
}

func parseOutput(out []byte, natoms int) (float64, *v3.Matrix, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	var e float64
	data := make([]float64, 0, natoms*3)
	read := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if !read {
			if len(fields) != 1 {
				return 0, nil, fmt.Errorf("expected an energy, got %q", line)
			}
			var err error
			e, err = strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return 0, nil, fmt.Errorf("can't parse energy: %w", err)
			}
			read = true
			continue
		}
		if len(fields) != 3 {
			return 0, nil, fmt.Errorf("expected 3 force components, got %q", line)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("can't parse force: %w", err)
			}
			data = append(data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return 0, nil, err
	}
	if !read {
		return 0, nil, fmt.Errorf("no energy in output")
	}
	if len(data) != natoms*3 {
		return 0, nil, fmt.Errorf("forces for %d atoms given, %d expected", len(data)/3, natoms)
	}
	F, err := v3.NewMatrix(data)
	return e, F, err
}

//Error is the error type for the evaluators that run external programs.
type Error struct {
	message  string
	program  string
	deco     []string
	critical bool
	cause    error
}

func (err Error) Error() string {
	return fmt.Sprintf("potential: %s: %s", err.program, err.message)
}

//Program returns the name of the program that failed.
func (err Error) Program() string { return err.program }

//Decorate adds dec to the decoration slice and returns it.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical.
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the error that made the evaluation fail, if any.
func (err Error) Unwrap() error { return err.cause }

func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.deco = append(e.deco[:len(e.deco):len(e.deco)], caller)
	return e
}
