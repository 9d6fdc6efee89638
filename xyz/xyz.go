/*
 * xyz.go, part of siesta-sfl.
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

//Package xyz reads and writes structures and paths in the XYZ format,
//and assigns per-atom data (masses, radii) from the element symbols.
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	neb "github.com/siesta-project/siesta-sfl"
	v3 "github.com/siesta-project/siesta-sfl/v3"
)

//Frame is one structure of an XYZ file.
type Frame struct {
	Symbols []string
	Comment string
	Coords  *v3.Matrix
}

//ReadFile reads all the frames in the XYZ file name.
func ReadFile(name string) ([]*Frame, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Open", "ReadFile"}, true}
	}
	defer f.Close()
	frames, err := Read(f)
	if err != nil {
		e, ok := err.(Error)
		if ok {
			e.filename = name
			return nil, errDecorate(e, "ReadFile")
		}
		return nil, err
	}
	return frames, nil
}

//Read reads all the frames in r. Every frame must have the same number of atoms.
func Read(r io.Reader) ([]*Frame, error) {
	xyz := bufio.NewReader(r)
	var frames []*Frame
	natoms := -1
	for {
		line, err := xyz.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			break
		}
		if err != nil && err != io.EOF {
			return nil, Error{err.Error(), "", []string{"Read"}, true}
		}
		if strings.TrimSpace(line) == "" {
			continue //blank lines between frames
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n <= 0 {
			return nil, Error{fmt.Sprintf("Ill formatted XYZ file: frame %d: bad atom number line %q", len(frames), strings.TrimSpace(line)), "", []string{"Read"}, true}
		}
		if natoms >= 0 && n != natoms {
			return nil, Error{fmt.Sprintf("Frame %d has %d atoms, previous frames have %d", len(frames), n, natoms), "", []string{"Read"}, true}
		}
		natoms = n
		fr, err := readFrame(xyz, n)
		if err != nil {
			return nil, Error{fmt.Sprintf("frame %d: %s", len(frames), err.Error()), "", []string{"readFrame", "Read"}, true}
		}
		frames = append(frames, fr)
	}
	if len(frames) == 0 {
		return nil, Error{"No frames in XYZ file", "", []string{"Read"}, true}
	}
	return frames, nil
}

func readFrame(xyz *bufio.Reader, natoms int) (*Frame, error) {
	comment, err := xyz.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("missing comment line")
	}
	fr := &Frame{Symbols: make([]string, natoms), Comment: strings.TrimRight(comment, "\r\n")}
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err := xyz.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("expected %d atoms, found %d", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line for atom %d ill formed", i)
		}
		fr.Symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("atom %d: %s", i, err.Error())
			}
		}
	}
	fr.Coords, _ = v3.NewMatrix(coords)
	return fr, nil
}

//Write writes coords, with the given symbols and comment, as an XYZ frame to w.
func Write(w io.Writer, symbols []string, coords *v3.Matrix, comment string) error {
	if len(symbols) != coords.NVecs() {
		return Error{fmt.Sprintf("%d symbols for %d atoms", len(symbols), coords.NVecs()), "", []string{"Write"}, true}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-4d\n%s\n", len(symbols), strings.ReplaceAll(comment, "\n", " "))
	for i, s := range symbols {
		fmt.Fprintf(bw, "%-2s  %12.6f %12.6f %12.6f\n", s, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	if err := bw.Flush(); err != nil {
		return Error{err.Error(), "", []string{"Write"}, true}
	}
	return nil
}

//WritePath writes every image in images as a frame of the XYZ file name, which will be
//created or overwritten. The comment line of each frame contains the image index and energy.
func WritePath(name string, symbols []string, images []*neb.Image) error {
	out, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"os.Create", "WritePath"}, true}
	}
	for i, img := range images {
		if err := Write(out, symbols, img.R, fmt.Sprintf("image=%d energy=%.8f", i, img.E)); err != nil {
			out.Close()
			e := err.(Error)
			e.filename = name
			return errDecorate(e, "WritePath")
		}
	}
	if err := out.Close(); err != nil {
		return Error{err.Error(), name, []string{"WritePath"}, true}
	}
	return nil
}

//Masses returns the atomic masses for symbols. It fails if a symbol is unknown.
func Masses(symbols []string) (*v3.Lookup, error) {
	L := v3.Uniform(1)
	for i, s := range symbols {
		m, ok := symbolMass[s]
		if !ok {
			return nil, Error{fmt.Sprintf("No mass for element %q (atom %d)", s, i), "", []string{"Masses"}, true}
		}
		L.Set(i, m)
	}
	return L, nil
}

//Contact is a pair of atoms closer than they should be.
type Contact struct {
	I, J     int
	Distance float64
}

//CloseContacts returns the pairs of atoms in coords closer than factor times the sum of their
//covalent radii. Atoms with unknown symbols are not checked.
func CloseContacts(symbols []string, coords *v3.Matrix, factor float64) []Contact {
	var ret []Contact
	d := v3.Zeros(1)
	for i := 0; i < coords.NVecs(); i++ {
		ri, ok := symbolCovrad[symbols[i]]
		if !ok {
			continue
		}
		for j := i + 1; j < coords.NVecs(); j++ {
			rj, ok := symbolCovrad[symbols[j]]
			if !ok {
				continue
			}
			d.Sub(coords.VecView(j), coords.VecView(i))
			dist := d.Norm()
			if dist < factor*(ri+rj) {
				ret = append(ret, Contact{i, j, dist})
			}
		}
	}
	return ret
}

//Errors

//Error is the error type for the xyz package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return "xyz: " + err.message
	}
	return fmt.Sprintf("xyz file %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the error is associated
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.deco = append(e.deco[:len(e.deco):len(e.deco)], caller)
	return e
}
