// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Object represents any PDF or content-stream object: the tagged-union
// PostScript value that the lexer, parser, and interpreter pass around.
//
// The concrete types implementing Object are Null, Boolean, Integer, Real,
// Name, Operator, String, Array, Dict, Reference, and *Stream.
type Object interface {
	// isObject is unexported so that Object can only be implemented by the
	// types in this package.
	isObject()
}

// Null is the PDF "null" object.
type Null struct{}

func (Null) isObject() {}

func (Null) String() string { return "null" }

// Boolean represents a PDF boolean ("true"/"false").
type Boolean bool

func (Boolean) isObject() {}

// Integer represents a PDF integer.
type Integer int64

func (Integer) isObject() {}

// Real represents a PDF real number.
type Real float64

func (Real) isObject() {}

// Name represents a PDF name object, e.g. "/Font". The leading slash is not
// part of the Go value.
type Name string

func (Name) isObject() {}

func (n Name) String() string { return "/" + string(n) }

// Operator represents a PostScript keyword: either a PDF structural
// delimiter token ("[", "]", "<<", ">>") or a content-stream operator
// ("BT", "Tj", "re", ...).
type Operator string

func (Operator) isObject() {}

func (op Operator) String() string { return string(op) }

// String represents a PDF string object, either a literal "(...)" string or
// a hex "<...>" string. Both forms decode to the same byte sequence, so the
// distinction is not retained past parsing.
type String []byte

func (String) isObject() {}

func (s String) String() string { return fmt.Sprintf("%q", []byte(s)) }

// Array represents a PDF array object.
type Array []Object

func (Array) isObject() {}

// Dict represents a PDF dictionary object. Insertion order is not
// significant.
type Dict map[Name]Object

func (Dict) isObject() {}

// Reference represents an indirect reference to another object, identified
// by object number and generation number.
type Reference struct {
	Number     uint32
	Generation uint16
}

func (Reference) isObject() {}

func (r Reference) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// NewReference constructs a Reference from an object number and generation.
func NewReference(number uint32, generation uint16) Reference {
	return Reference{Number: number, Generation: generation}
}

// IsZero reports whether r is the zero Reference, used as a sentinel for
// "no indirect object" (e.g. a descendant font recursed into without its
// own cache entry).
func (r Reference) IsZero() bool {
	return r.Number == 0 && r.Generation == 0
}

// Stream represents a PDF stream object: a dictionary together with a lazily
// decoded byte payload. The decoded byte cache is populated at most once via
// Decode, guarded by decodedOnce so concurrent readers of a shared, cached
// Stream never race.
//
// Filters are opaque byte transformers (ASCII85, ASCIIHex, LZW, RunLength,
// Flate, Arcfour, Rijndael, ...); this package never interprets their
// behaviour, only threads the declared chain through to whatever Filter
// implementation the caller supplies.
type Stream struct {
	Dict Dict

	// raw holds the stream's undecoded bytes. For streams synthesized from
	// inline images, this is the raw slurped payload.
	raw []byte

	decoded     []byte
	decodedOnce sync.Once
	decodeErr   error

	// Filters is the parsed /Filter + /DecodeParms pipeline, outermost
	// filter first (the order data passes through when decoding).
	Filters []Filter
}

// NewStream constructs a Stream from already-known raw bytes. This is the
// constructor used by the content-stream parser for both regular content
// streams and inline images.
func NewStream(dict Dict, raw []byte, filters ...Filter) *Stream {
	return &Stream{Dict: dict, raw: raw, Filters: filters}
}

func (*Stream) isObject() {}

// Raw returns the stream's undecoded byte payload.
func (s *Stream) Raw() []byte { return s.raw }

// Decode applies the stream's filter pipeline to the raw bytes, caching the
// result. It is safe to call concurrently and safe to call more than once;
// the filters run at most once per Stream.
func (s *Stream) Decode() ([]byte, error) {
	s.decodedOnce.Do(func() {
		data := s.raw
		for _, f := range s.Filters {
			r, err := f.Decode(bytes.NewReader(data))
			if err != nil {
				s.decodeErr = err
				return
			}
			decoded, err := io.ReadAll(r)
			if err != nil {
				s.decodeErr = err
				return
			}
			data = decoded
		}
		s.decoded = data
	})
	return s.decoded, s.decodeErr
}

// Filter is the black-box byte-transformer interface that a stream's
// /Filter chain is built from. Concrete filters (Flate, LZW, ASCII85, ...)
// are out of scope for this module: it only needs to invoke whatever
// implementation the caller plugs in.
type Filter interface {
	// Name is the filter's PDF name, e.g. "FlateDecode".
	Name() Name

	// Decode returns a reader producing the decoded bytes for r.
	Decode(r io.Reader) (io.Reader, error)
}
