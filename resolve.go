// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

import (
	"errors"
	"fmt"
	"math"
)

// Getter is the upstream object-resolution interface: the document layer
// (cross-reference table, object streams, decryption) that this module
// treats as an out-of-scope collaborator. Resolve and the GetXxx family are
// built on top of it.
type Getter interface {
	// Resolve reads the object identified by ref. Non-reference objects
	// passed through Resolve are returned unchanged by the package-level
	// Resolve function without calling this method.
	Resolve(ref Reference) (Object, error)
}

const maxRefDepth = 32

// Resolve dereferences obj if it is a Reference, following chains of
// references until a non-reference object is reached. Non-reference objects
// are returned unchanged. A reference cycle, or a chain longer than
// maxRefDepth, is reported as a *MalformedFileError rather than looping
// forever.
func Resolve(r Getter, obj Object) (Object, error) {
	ref, isReference := obj.(Reference)
	if !isReference {
		return obj, nil
	}
	if r == nil {
		return nil, errNilGetter
	}

	count := 0
	for {
		count++
		if count > maxRefDepth {
			return nil, &MalformedFileError{
				Err: fmt.Errorf("too many levels of indirection resolving %s", ref),
			}
		}

		next, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		ref, isReference = next.(Reference)
		if !isReference {
			return next, nil
		}
	}
}

func resolveAndCast[T Object](r Getter, obj Object) (x T, err error) {
	resolved, err := Resolve(r, obj)
	if err != nil {
		return x, err
	}
	if resolved == nil {
		return x, nil
	}
	if x, ok := resolved.(T); ok {
		return x, nil
	}
	return x, &MalformedFileError{
		Err: fmt.Errorf("expected %T but got %T", x, resolved),
	}
}

// GetArray, GetBoolean, GetDict, GetName, GetReal, GetStream, and GetString
// each resolve obj and assert the result has the named type. If obj
// resolves to nil, the zero value is returned without error.
var (
	GetArray   = resolveAndCast[Array]
	GetBoolean = resolveAndCast[Boolean]
	GetDict    = resolveAndCast[Dict]
	GetName    = resolveAndCast[Name]
	GetReal    = resolveAndCast[Real]
	GetStream  = resolveAndCast[*Stream]
	GetString  = resolveAndCast[String]
)

// GetInteger resolves obj and returns it as an Integer. A Real is rounded to
// the nearest integer; any other type is a *MalformedFileError.
func GetInteger(r Getter, obj Object) (Integer, error) {
	resolved, err := Resolve(r, obj)
	if err != nil || resolved == nil {
		return 0, err
	}
	switch x := resolved.(type) {
	case Integer:
		return x, nil
	case Real:
		return Integer(math.Round(float64(x))), nil
	default:
		return 0, &MalformedFileError{
			Err: fmt.Errorf("expected Integer but got %T", resolved),
		}
	}
}

// GetNumber resolves obj and returns it as a float64, accepting both
// Integer and Real.
func GetNumber(r Getter, obj Object) (float64, error) {
	resolved, err := Resolve(r, obj)
	if err != nil || resolved == nil {
		return 0, err
	}
	switch x := resolved.(type) {
	case Integer:
		return float64(x), nil
	case Real:
		return float64(x), nil
	default:
		return 0, &MalformedFileError{
			Err: fmt.Errorf("expected Number but got %T", resolved),
		}
	}
}

// GetFloatArray resolves obj as an Array and converts every element via
// GetNumber. A nil array resolves to a nil slice without error.
func GetFloatArray(r Getter, obj Object) ([]float64, error) {
	array, err := GetArray(r, obj)
	if err != nil || array == nil {
		return nil, err
	}
	result := make([]float64, len(array))
	for i, item := range array {
		num, err := GetNumber(r, item)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		result[i] = num
	}
	return result, nil
}

// CheckDictType checks that dict's "Type" entry, if present, equals
// wantType.
func CheckDictType(r Getter, dict Dict, wantType Name) error {
	haveType, err := GetName(r, dict["Type"])
	if err != nil {
		return err
	}
	if haveType != wantType && haveType != "" {
		return &MalformedFileError{
			Err: fmt.Errorf("expected dict type %q, got %q", wantType, haveType),
		}
	}
	return nil
}

// errNilGetter is returned by Resolve when called with a nil Getter on a
// Reference; resolving an indirect reference always requires a document.
var errNilGetter = errors.New("pdf: cannot resolve reference without a Getter")
