/*
 * diag.go, part of siesta-sfl.
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

//Package diag stores the intermediate results of a NEB run. It implements
//neb.Observer, writing one STF trajectory per image for each vector series,
//and a text table with the energy profile of the path after each sweep.
package diag

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	neb "github.com/siesta-project/siesta-sfl"
	"github.com/siesta-project/siesta-sfl/traj/stf"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Names of the vector series that can be written.
const (
	Coords        = "coords"
	Force         = "force"
	Perpendicular = "perp"
	Spring        = "spring"
	NEB           = "neb"
	Tangent       = "tangent"
	Prev          = "dprev"
	Next          = "dnext"
)

//ProfileFile is the name of the energy profile table in the output directory.
const ProfileFile = "profile.dat"

//AllSeries returns the names of all the vector series, in the order they are
//given in an ImageRecord.
func AllSeries() []string {
	return []string{Coords, Force, Perpendicular, Spring, NEB, Tangent, Prev, Next}
}

func field(rec *neb.ImageRecord, series string) *v3.Matrix {
	switch series {
	case Coords:
		return rec.Coords
	case Force:
		return rec.Force
	case Perpendicular:
		return rec.Perpendicular
	case Spring:
		return rec.Spring
	case NEB:
		return rec.NEB
	case Tangent:
		return rec.Tangent
	case Prev:
		return rec.Prev
	case Next:
		return rec.Next
	}
	return nil
}

//Options for a Writer.
type Options struct {
	Prec   int      //decimal places kept in the trajectories
	Series []string //series to write. If empty, all of them.
	Logger *zap.Logger
}

//DefaultOptions returns options to write all the series with 4 decimal places.
func DefaultOptions() *Options {
	return &Options{Prec: 4, Series: AllSeries(), Logger: zap.NewNop()}
}

type key struct {
	series string
	image  int
}

//Writer is a neb.Observer that writes the records it gets to files
//in a directory. Since Observer methods can't return errors, the first error found
//is kept, and no more files are written after it. It is returned by Err and Close.
type Writer struct {
	mu      sync.Mutex
	dir     string
	natoms  int
	prec    int
	series  map[string]bool
	files   map[key]*stf.StfW
	profile *os.File
	pb      *bufio.Writer
	log     *zap.Logger
	err     error
	closed  bool
}

//New returns a Writer for images of natoms atoms, creating the directory dir if needed.
func New(dir string, natoms int, o *Options) (*Writer, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if natoms <= 0 {
		return nil, fmt.Errorf("diag: invalid number of atoms %d", natoms)
	}
	if o.Prec <= 0 {
		return nil, fmt.Errorf("diag: invalid precision %d", o.Prec)
	}
	series := o.Series
	if len(series) == 0 {
		series = AllSeries()
	}
	W := &Writer{dir: dir, natoms: natoms, prec: o.Prec, series: make(map[string]bool), files: make(map[key]*stf.StfW), log: o.Logger}
	if W.log == nil {
		W.log = zap.NewNop()
	}
	valid := AllSeries()
	for _, s := range series {
		ok := false
		for _, v := range valid {
			if s == v {
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("diag: unknown series %q", s)
		}
		W.series[s] = true
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diag: creating output directory: %w", err)
	}
	var err error
	W.profile, err = os.Create(filepath.Join(dir, ProfileFile))
	if err != nil {
		return nil, fmt.Errorf("diag: %w", err)
	}
	W.pb = bufio.NewWriter(W.profile)
	fmt.Fprintf(W.pb, "#%9s %6s %14s %16s %16s %16s\n", "iteration", "image", "coordinate", "energy", "delta_e", "curvature")
	return W, nil
}

//FileName returns the name of the file where the given series for image i is written.
func (W *Writer) FileName(series string, i int) string {
	return filepath.Join(W.dir, fmt.Sprintf("%s_%03d.stf", series, i))
}

func (W *Writer) file(series string, i int) (*stf.StfW, error) {
	k := key{series, i}
	if f, ok := W.files[k]; ok {
		return f, nil
	}
	header := map[string]string{
		"prec":   strconv.Itoa(W.prec),
		"series": series,
		"image":  strconv.Itoa(i),
	}
	f, err := stf.NewWriter(W.FileName(series, i), W.natoms, header)
	if err != nil {
		return nil, err
	}
	W.files[k] = f
	return f, nil
}

func (W *Writer) fail(err error) {
	if W.err == nil {
		W.err = err
		W.log.Error("diagnostics disabled", zap.Error(err))
	}
}

//ImageForces writes every selected series of rec to its trajectory.
func (W *Writer) ImageForces(rec *neb.ImageRecord) {
	W.mu.Lock()
	defer W.mu.Unlock()
	if W.err != nil || W.closed {
		return
	}
	for _, s := range AllSeries() {
		if !W.series[s] {
			continue
		}
		m := field(rec, s)
		if m == nil {
			continue
		}
		f, err := W.file(s, rec.Index)
		if err != nil {
			W.fail(fmt.Errorf("diag: %w", err))
			return
		}
		if err := f.WNext(m); err != nil {
			W.fail(fmt.Errorf("diag: writing %s for image %d, iteration %d: %w", s, rec.Index, rec.Iteration, err))
			return
		}
	}
}

//Sweep appends the profile in rec to the profile table. Sweeps are separated by a blank line.
func (W *Writer) Sweep(rec *neb.SweepRecord) {
	W.mu.Lock()
	defer W.mu.Unlock()
	if W.err != nil || W.closed {
		return
	}
	for i := range rec.Energy {
		fmt.Fprintf(W.pb, "%10d %6d %14.6f %16.8f %16.8f %16.8f\n", rec.Iteration, i, rec.ReactionCoordinate[i], rec.Energy[i], rec.DeltaE[i], rec.Curvature[i])
	}
	if _, err := W.pb.WriteString("\n"); err != nil {
		W.fail(fmt.Errorf("diag: writing profile: %w", err))
		return
	}
	if err := W.pb.Flush(); err != nil {
		W.fail(fmt.Errorf("diag: writing profile: %w", err))
		return
	}
	W.log.Debug("sweep written", zap.Int("iteration", rec.Iteration), zap.Float64("max_force", rec.MaxForce))
}

//Err returns the first error found while writing, or nil.
func (W *Writer) Err() error {
	W.mu.Lock()
	defer W.mu.Unlock()
	return W.err
}

//Close closes all the files. It returns the first error found while writing or closing.
func (W *Writer) Close() error {
	W.mu.Lock()
	defer W.mu.Unlock()
	if W.closed {
		return W.err
	}
	W.closed = true
	for k, f := range W.files {
		if err := f.Close(); err != nil {
			W.fail(fmt.Errorf("diag: closing %s for image %d: %w", k.series, k.image, err))
		}
	}
	if err := W.pb.Flush(); err != nil {
		W.fail(fmt.Errorf("diag: writing profile: %w", err))
	}
	if err := W.profile.Close(); err != nil {
		W.fail(fmt.Errorf("diag: closing profile: %w", err))
	}
	return W.err
}
