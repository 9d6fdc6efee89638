/*
 * stf.go, part of siesta-sfl.
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

package stf

import (
	"bufio"
	"compress/lzw"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	v3 "github.com/siesta-project/siesta-sfl/v3"
)

const (
	lzwLitwidth int = 8
	//DefaultPrec is the precision used when the header doesn't give one.
	DefaultPrec int = 2
)

//Write!

//StfW writes a STF trajectory.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	b         *bufio.Writer
	natoms    int
	filename  string
	writeable bool
	prec      int
	mult      float64
}

//NewWriter creates the file name and returns a handle to write frames of natoms vectors to it.
//header may contain any key=value pairs, including the precision "prec". Only the first
//header map is used.
func NewWriter(name string, natoms int, header map[string]string) (*StfW, error) {
	S := &StfW{natoms: natoms, filename: name, prec: DefaultPrec}
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("Invalid number of atoms %d", natoms), name, []string{"NewWriter"}, true}
	}
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			return nil, Error{fmt.Sprintf("Invalid precision %q", p), name, []string{"NewWriter"}, true}
		}
		S.prec = prec
	}
	S.mult = math.Pow(10, float64(S.prec))
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch format(name) {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	case 'r':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, flate.BestCompression) }
	default:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		}
	}
	S.h, err = AnyNewWriter(S.f)
	if err != nil {
		S.f.Close()
		return nil, Error{"Can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.b = bufio.NewWriter(S.h)
	//the keys are sorted so the files are reproducible.
	keys := make([]string, 0, len(header)+1)
	for k := range header {
		if k != "prec" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fmt.Fprintf(S.b, "prec=%d\n", S.prec)
	for _, k := range keys {
		fmt.Fprintf(S.b, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(S.b, "** %d\n", S.natoms)
	S.writeable = true
	return S, nil
}

//Len returns the number of vectors per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//WNext writes coord as the next frame.
func (S *StfW) WNext(coord *v3.Matrix) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var floats [3]float64
	for i := 0; i < v; i++ {
		floats[0] = coord.At(i, 0)
		floats[1] = coord.At(i, 1)
		floats[2] = coord.At(i, 2)
		if _, err := S.b.WriteString(coordsEncode(floats, S.mult)); err != nil {
			return Error{err.Error(), S.filename, []string{"WNext"}, true}
		}
	}
	if _, err := S.b.WriteString("*\n"); err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes and closes the trajectory. It can not be used after this call.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.b.Flush()
	if err2 := S.h.Close(); err == nil {
		err = err2
	}
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

func coordsEncode(f [3]float64, mult float64) string {
	return fmt.Sprintf("%d %d %d\n", int64(math.RoundToEven(f[0]*mult)), int64(math.RoundToEven(f[1]*mult)), int64(math.RoundToEven(f[2]*mult)))
}

//format returns the character selecting the compression for the file name.
func format(name string) byte {
	if name == "" {
		return 's'
	}
	return strings.ToLower(name)[len(name)-1]
}

//Read!

//StfR reads a STF trajectory.
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	mult     float64
	readable bool
}

//zstd.Decoder's Close doesn't return an error, so it needs an adapter
//to be an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the metadata in the header,
//and error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{natoms: -1, filename: name, prec: DefaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch format(name) {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case 'r':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	default:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdCloser{r}, nil
		}
	}
	S.dec, err = AnyNewReader(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.close()
				return nil, nil, Error{fmt.Sprintf("Can't read atom number from '%s'", str), name, []string{"New"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil {
				S.close()
				return nil, nil, Error{fmt.Sprintf("Can't read atom number from '%s': %s", nat[1], err.Error()), name, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.close()
			return nil, nil, Error{"Malformed header line: " + str, name, []string{"New"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			S.close()
			return nil, nil, Error{fmt.Sprintf("Invalid precision %q", p), name, []string{"New"}, true}
		}
		S.prec = prec
	}
	S.mult = math.Pow(10, float64(S.prec))
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

//Prec returns the precision of the trajectory, the number of decimal places kept.
func (S *StfR) Prec() int {
	return S.prec
}

func coordsDecode(str string, temp *[3]float64, mult float64) error {
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("Ill formated line in stf: %d fields: %s", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("Can't parse component %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / mult
	}
	return nil
}

//Next puts in the given matrix (c) the next frame of the trajectory. If c is nil, the frame
//is read and checked, but discarded. At the end of the trajectory, it returns an error
//that matches io.EOF (with errors.Is) and closes the handle.
func (S *StfR) Next(c *v3.Matrix) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	if c != nil && c.NVecs() != S.natoms {
		return Error{fmt.Sprintf("Matrix with %d vectors given for a %d-atom frame", c.NVecs(), S.natoms), S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		str, err := S.h.ReadString('\n')
		if err != nil {
			//EOF right at the beginning of a frame is just the end of the trajectory
			if err == io.EOF && i == 0 && str == "" {
				S.close()
				return newlastFrameError(S.filename, "Next")
			}
			return Error{ReadError + ": " + err.Error(), S.filename, []string{"Next"}, true}
		}
		if err := coordsDecode(strings.TrimSuffix(str, "\n"), &temp, S.mult); err != nil {
			return Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if c == nil {
			continue
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return Error{"Can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if s[0] != '*' {
		return Error{WrongFormat + ": wrong number of atoms in frame", S.filename, []string{"Next"}, true}
	}
	return nil
}

//Close closes the object, and marks it as unreadable
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.close()
}

func (S *StfR) close() {
	if S.dec != nil {
		S.dec.Close()
	}
	S.f.Close()
	S.readable = false
}

//Errors

//Error is the general structure for STF trajectory errors.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "stf") associated to the error
func (err Error) Format() string { return "stf" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

//lastFrameError is returned by Next at the end of the trajectory.
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing, it only marks the error as a normal end of trajectory.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "stf" }

//Is makes the error match io.EOF.
func (E lastFrameError) Is(target error) bool { return target == io.EOF }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) lastFrameError {
	return lastFrameError{fileName: filename, deco: []string{caller}}
}
