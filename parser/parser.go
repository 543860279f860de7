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

// Package parser implements the generic PostScript stack-based object
// assembler: tokens from a token.Lexer are grouped into arrays and
// dictionaries. Subclasses (the content package) specialise single-keyword
// handling via a KeywordHook, without duplicating the bracket/dict
// assembly logic.
package parser

import (
	"fmt"
	"io"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/internal/diag"
	"github.com/dcoder/pdfcontent/token"
)

// ParseError reports a stack-assembly failure together with the byte
// position it occurred at.
type ParseError struct {
	Pos int64
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s (at byte %d)", e.Msg, e.Pos)
}

// KeywordHook lets a subclass intercept a keyword token before the default
// behaviour (push it as a plain pdf.Operator) runs. Returning ok=false falls
// through to the default behaviour.
type KeywordHook func(pos int64, kw pdf.Operator) (obj pdf.Object, ok bool, err error)

type contextKind byte

const (
	kindArray contextKind = 'a'
	kindDict  contextKind = 'd'
)

type contextEntry struct {
	startPos int64
	kind     contextKind
	marker   string // non-empty for subclass-defined markers, e.g. "inline"
	results  []pdf.Object
}

// Stack is the generic object parser built on top of a token.Lexer.
type Stack struct {
	Lenient     bool
	KeywordHook KeywordHook

	lex     *token.Lexer
	ctx     []*contextEntry
	outer   []pdf.Object
}

// NewStack returns a new Stack reading tokens from lex.
func NewStack(lex *token.Lexer) *Stack {
	return &Stack{lex: lex}
}

// Lexer returns the underlying token.Lexer, e.g. so a KeywordHook can read
// raw bytes directly from it (as content.Parser does for inline images).
func (s *Stack) Lexer() *token.Lexer { return s.lex }

// OpenMarker opens a new context with a subclass-defined marker kind (not
// 'a' or 'd'); the subclass is then responsible for closing it itself
// (typically from within its KeywordHook) via CloseMarker.
func (s *Stack) OpenMarker(pos int64, marker string) {
	s.ctx = append(s.ctx, &contextEntry{startPos: pos, marker: marker})
}

// CloseMarker closes the innermost context, which must have been opened via
// OpenMarker with the given marker name, and returns its accumulated
// results. It is an error to call this when the innermost context isn't
// that marker.
func (s *Stack) CloseMarker(marker string) ([]pdf.Object, error) {
	if len(s.ctx) == 0 || s.ctx[len(s.ctx)-1].marker != marker {
		return nil, &ParseError{Pos: s.lex.Pos(), Msg: fmt.Sprintf("no open %q context", marker)}
	}
	entry := s.ctx[len(s.ctx)-1]
	s.ctx = s.ctx[:len(s.ctx)-1]
	return entry.results, nil
}

// push appends obj to whichever result list is currently innermost.
func (s *Stack) push(obj pdf.Object) {
	if len(s.ctx) == 0 {
		s.outer = append(s.outer, obj)
		return
	}
	top := s.ctx[len(s.ctx)-1]
	top.results = append(top.results, obj)
}

// Next drives the lexer until the outermost result list has at least one
// entry, then pops and returns it (FIFO: the entry that became available
// first is returned first).
func (s *Stack) Next() (pdf.Object, error) {
	for len(s.outer) == 0 {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	obj := s.outer[0]
	copy(s.outer, s.outer[1:])
	s.outer = s.outer[:len(s.outer)-1]
	return obj, nil
}

// step reads a single token and updates the context/result stacks
// accordingly. It returns io.EOF once the lexer is exhausted and no partial
// context remains open.
func (s *Stack) step() error {
	pos, tok, err := s.lex.Next()
	if err != nil {
		if err == io.EOF && len(s.ctx) > 0 {
			return &ParseError{Pos: pos, Msg: "unexpected end of input inside array/dictionary"}
		}
		return err
	}

	switch kw := tok.(type) {
	case pdf.Operator:
		switch kw {
		case "[", "<<":
			kind := kindArray
			if kw == "<<" {
				kind = kindDict
			}
			s.ctx = append(s.ctx, &contextEntry{startPos: pos, kind: kind})
			return nil
		case "]":
			return s.closeArray(pos)
		case ">>":
			return s.closeDict(pos)
		default:
			return s.handleKeyword(pos, kw)
		}
	default:
		s.push(tok)
		return nil
	}
}

func (s *Stack) closeArray(pos int64) error {
	if len(s.ctx) == 0 || s.ctx[len(s.ctx)-1].kind != kindArray {
		return s.mismatch(pos, "]")
	}
	top := s.ctx[len(s.ctx)-1]
	s.ctx = s.ctx[:len(s.ctx)-1]
	s.push(pdf.Array(top.results))
	return nil
}

func (s *Stack) closeDict(pos int64) error {
	if len(s.ctx) == 0 || s.ctx[len(s.ctx)-1].kind != kindDict {
		return s.mismatch(pos, ">>")
	}
	top := s.ctx[len(s.ctx)-1]
	s.ctx = s.ctx[:len(s.ctx)-1]
	fail := func(err *ParseError) error {
		if s.Lenient {
			diag.Warn("parser: %v, discarding dictionary", err)
			return nil
		}
		return err
	}
	if len(top.results)%2 != 0 {
		return fail(&ParseError{Pos: top.startPos, Msg: "dictionary with odd number of entries"})
	}
	dict := pdf.Dict{}
	for i := 0; i < len(top.results); i += 2 {
		key, ok := top.results[i].(pdf.Name)
		if !ok {
			return fail(&ParseError{Pos: top.startPos, Msg: fmt.Sprintf("dictionary key is %T, not a name", top.results[i])})
		}
		dict[key] = top.results[i+1]
	}
	s.push(dict)
	return nil
}

func (s *Stack) mismatch(pos int64, tok string) error {
	err := &ParseError{Pos: pos, Msg: fmt.Sprintf("unexpected %q", tok)}
	if s.Lenient {
		diag.Warn("parser: %v", err)
		return nil
	}
	return err
}

func (s *Stack) handleKeyword(pos int64, kw pdf.Operator) error {
	if s.KeywordHook != nil {
		obj, ok, err := s.KeywordHook(pos, kw)
		if err != nil {
			return err
		}
		if ok {
			if obj != nil {
				s.push(obj)
			}
			return nil
		}
	}
	s.push(kw)
	return nil
}
