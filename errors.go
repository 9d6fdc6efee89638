/*
 * errors.go, part of siesta-sfl.
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

package neb

import "fmt"

//ErrorKind classifies the errors returned by this package.
type ErrorKind int

const (
	ShapeMismatch ErrorKind = iota + 1
	IndexOutOfRange
	ConfigurationError
)

func (k ErrorKind) String() string {
	switch k {
	case ShapeMismatch:
		return "shape mismatch"
	case IndexOutOfRange:
		return "index out of range"
	case ConfigurationError:
		return "configuration error"
	}
	return "unknown error"
}

//Error is the error type for the package. It can be compared with the
//ErrShapeMismatch, ErrIndexOutOfRange and ErrConfiguration values using errors.Is.
type Error struct {
	message  string
	kind     ErrorKind
	deco     []string
	critical bool
}

var (
	ErrShapeMismatch   = Error{message: "shape mismatch", kind: ShapeMismatch, critical: true}
	ErrIndexOutOfRange = Error{message: "index out of range", kind: IndexOutOfRange, critical: true}
	ErrConfiguration   = Error{message: "configuration error", kind: ConfigurationError, critical: true}
)

func newError(kind ErrorKind, caller, format string, args ...interface{}) Error {
	return Error{fmt.Sprintf(format, args...), kind, []string{caller}, true}
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("neb: %s: %s", err.kind, err.message)
	}
	return fmt.Sprintf("neb: %s in %v: %s", err.kind, err.deco, err.message)
}

//Kind returns the class of the error.
func (err Error) Kind() ErrorKind { return err.kind }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Is allows errors.Is to match errors of the same kind.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.kind == err.kind
}

//errDecorate adds the caller's name to err, if it is an Error. Other errors
//are returned unchanged.
func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.deco = append(e.deco[:len(e.deco):len(e.deco)], caller)
	return e
}
