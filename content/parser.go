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

// Package content specialises the generic object parser for content
// streams: transparent concatenation of a page's possibly multi-part
// /Contents, and the BI/ID/EI inline-image trio.
package content

import (
	"bytes"
	"errors"
	"io"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/internal/diag"
	"github.com/dcoder/pdfcontent/parser"
	"github.com/dcoder/pdfcontent/token"
)

// ErrEndOfContent is the sentinel returned by Parser.Next once every part
// of the content stream has been exhausted. It is not an error condition;
// the page interpreter's dispatch loop treats it as ordinary termination.
var ErrEndOfContent = errors.New("content: end of content stream")

const inlineMarker = "inline"

// Parser wraps a parser.Stack configured to concatenate a page's
// /Contents parts transparently and to recognise inline images.
type Parser struct {
	Lenient bool

	mr        io.Reader
	stack     *parser.Stack
	pendingEI bool
}

// NewParser returns a Parser reading the concatenation of parts, with a
// single space inserted between parts so that no token can straddle a part
// boundary (PDF requires content-stream parts to be self-delimiting at
// token granularity).
func NewParser(parts []io.Reader) *Parser {
	readers := make([]io.Reader, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			readers = append(readers, bytes.NewReader([]byte{' '}))
		}
		readers = append(readers, p)
	}
	mr := io.MultiReader(readers...)

	p := &Parser{mr: mr}
	lex := token.NewLexer(mr)
	st := parser.NewStack(lex)
	st.KeywordHook = p.keywordHook
	p.stack = st
	return p
}

// applyLenient propagates p.Lenient to the underlying lexer and parser.
func (p *Parser) applyLenient() {
	p.stack.Lenient = p.Lenient
	p.stack.Lexer().Lenient = p.Lenient
}

// Next returns the next object from the content stream. At end of input it
// returns ErrEndOfContent instead of io.EOF.
func (p *Parser) Next() (pdf.Object, error) {
	if p.pendingEI {
		p.pendingEI = false
		return pdf.Operator("EI"), nil
	}
	p.applyLenient()
	obj, err := p.stack.Next()
	if err == io.EOF {
		return nil, ErrEndOfContent
	}
	return obj, err
}

// keywordHook implements the BI/ID/EI inline-image trio on top of the
// generic parser.Stack.
func (p *Parser) keywordHook(pos int64, kw pdf.Operator) (pdf.Object, bool, error) {
	switch kw {
	case "BI":
		p.stack.OpenMarker(pos, inlineMarker)
		return nil, true, nil

	case "ID":
		results, err := p.stack.CloseMarker(inlineMarker)
		if err != nil {
			return nil, false, err
		}
		if len(results)%2 != 0 {
			if p.Lenient {
				diag.Warn("content: inline image dictionary has odd arity, discarding extra entry")
				results = results[:len(results)-1]
			} else {
				return nil, false, &parser.ParseError{Pos: pos, Msg: "inline image dictionary has odd arity"}
			}
		}
		dict := pdf.Dict{}
		for i := 0; i < len(results); i += 2 {
			name, ok := results[i].(pdf.Name)
			if !ok {
				if p.Lenient {
					diag.Warn("content: inline image dictionary key is %T, not a name", results[i])
					continue
				}
				return nil, false, &parser.ParseError{Pos: pos, Msg: "inline image dictionary key is not a name"}
			}
			dict[name] = results[i+1]
		}

		payload, err := slurpInlineImage(p.stack.Lexer())
		if err != nil {
			return nil, false, err
		}
		stm := pdf.NewStream(dict, payload)

		// Synthesize (stream, EI) so the caller sees "EI" with one argument,
		// matching the ordinary one-keyword-many-args dispatch convention.
		// We can only return one object per hook invocation, so we push the
		// stream here; the terminating EI bytes were consumed by the slurp,
		// so the *next* Next() call returns the EI operator itself.
		p.pendingEI = true
		return stm, true, nil

	case "EI":
		if p.pendingEI {
			p.pendingEI = false
			return pdf.Operator("EI"), true, nil
		}
		// A stray EI with no preceding BI...ID is left for the page
		// interpreter, whose EI handler logs and ignores it since no
		// inline-image stream operand precedes it.
		return nil, false, nil
	}

	return nil, false, nil
}

// slurpInlineImage reads raw bytes directly from the lexer's underlying
// stream (bypassing tokenisation) up to the first occurrence of "EI" that
// is immediately followed by whitespace or EOF. There is no precondition
// on the byte preceding "E"; this one-sided rule is what lets an "EI" byte
// sequence embedded in binary image data pass through untouched, as long
// as it isn't itself followed by whitespace.
func slurpInlineImage(lex *token.Lexer) ([]byte, error) {
	// A single separator byte follows ID; the lexer stops in front of it,
	// so it is read here and dropped when it is whitespace (a
	// non-whitespace byte is kept as the first payload byte).
	first, err := lex.ReadRawByte()
	if err != nil {
		return nil, nil
	}

	var buf []byte
	if !isWhitespace(first) {
		buf = append(buf, first)
	}

	for {
		b, err := lex.ReadRawByte()
		if err != nil {
			// Ran off the end without finding a qualifying EI: tolerate it,
			// taking everything read so far as the payload.
			diag.Warn("content: inline image ran off end of input without a terminating EI")
			return stripTrailingNewline(buf), nil
		}

		if b == 'E' {
			i, err := lex.ReadRawByte()
			if err == nil && i == 'I' {
				after, err := lex.PeekRawByte()
				if err != nil || isWhitespace(after) {
					return stripTrailingNewline(buf), nil
				}
				// Not whitespace-delimited: not a real terminator. Put both
				// bytes back into the payload and keep scanning.
				buf = append(buf, b, i)
				continue
			}
			buf = append(buf, b)
			if err == nil {
				buf = append(buf, i)
			}
			continue
		}

		buf = append(buf, b)
	}
}

func isWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

// stripTrailingNewline removes a single trailing CR, LF, or CRLF from the
// slurped payload, per the ID/EI terminator rule.
func stripTrailingNewline(b []byte) []byte {
	n := len(b)
	if n >= 2 && b[n-2] == '\r' && b[n-1] == '\n' {
		return b[:n-2]
	}
	if n >= 1 && (b[n-1] == '\r' || b[n-1] == '\n') {
		return b[:n-1]
	}
	return b
}
