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

// Package token implements the PostScript-style byte-stream tokenizer
// shared by the object (COS) parser and the content-stream parser.
package token

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/internal/diag"
)

// LexError reports a lexing failure together with the byte offset it
// occurred at.
type LexError struct {
	Pos int64
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("token: %s (at byte %d)", e.Msg, e.Pos)
}

// Lexer turns a byte stream into a sequence of PostScript tokens. It
// maintains a small internal read-ahead buffer and byte-accurate position
// tracking (Line/Col) for diagnostics.
//
// In Lenient mode (the default is false / strict), a malformed token is
// logged via internal/diag and the lexer resynchronises by skipping to the
// next whitespace byte instead of returning an error.
type Lexer struct {
	Lenient bool

	line, col int

	src       io.Reader
	buf       []byte
	pos, used int
	ahead     []byte
	crSeen    bool
	bytePos   int64

	err error
}

// NewLexer returns a new Lexer reading from r.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		src: r,
		buf: make([]byte, 512),
	}
}

// Line returns the current 0-based line number, for diagnostics.
func (l *Lexer) Line() int { return l.line }

// Col returns the current 0-based column number, for diagnostics.
func (l *Lexer) Col() int { return l.col }

// Pos returns the byte offset of the next byte to be read.
func (l *Lexer) Pos() int64 { return l.bytePos }

// ReadRawByte consumes and returns the next raw input byte, bypassing
// tokenisation. It is used by the content-stream parser to slurp an
// inline image's binary payload between ID and EI.
func (l *Lexer) ReadRawByte() (byte, error) {
	return l.nextByte()
}

// PeekRawByte returns the next raw input byte without consuming it.
func (l *Lexer) PeekRawByte() (byte, error) {
	return l.peek()
}

// Next returns the next token from the input, together with the byte
// position of its first character. At end of input, it returns io.EOF.
func (l *Lexer) Next() (pos int64, tok pdf.Object, err error) {
	for {
		pos, tok, err = l.next()
		if err == nil {
			return pos, tok, nil
		}
		if err == io.EOF {
			return pos, nil, err
		}
		if !l.Lenient {
			return pos, nil, err
		}
		diag.Warn("token: %v, resynchronising", err)
		if resyncErr := l.resync(); resyncErr != nil {
			return pos, nil, resyncErr
		}
	}
}

// resync skips forward to the next whitespace byte (or EOF) after a lex
// error, so lenient-mode callers can keep making progress. It always
// consumes at least one byte, so a delimiter immediately following the
// error can't make it a no-op.
func (l *Lexer) resync() error {
	if _, err := l.nextByte(); err != nil {
		return err
	}
	for {
		b, err := l.peek()
		if err != nil {
			return err
		}
		if b <= 32 {
			return nil
		}
		l.nextByte()
	}
}

func (l *Lexer) next() (int64, pdf.Object, error) {
	if err := l.skipWhiteSpace(); err != nil {
		return l.bytePos, nil, err
	}
	startPos := l.bytePos

	b, err := l.peek()
	if err != nil {
		return startPos, nil, err
	}

	switch b {
	case '(':
		s, err := l.readString()
		return startPos, s, err
	case '<':
		bb := l.peekN(2)
		if string(bb) == "<<" {
			l.nextByte()
			l.nextByte()
			return startPos, pdf.Operator("<<"), nil
		}
		s, err := l.readHexString()
		return startPos, s, err
	case '>':
		bb := l.peekN(2)
		if string(bb) == ">>" {
			l.nextByte()
			l.nextByte()
			return startPos, pdf.Operator(">>"), nil
		}
		return startPos, nil, &LexError{Pos: startPos, Msg: "unexpected '>'"}
	case '[':
		l.nextByte()
		return startPos, pdf.Operator("["), nil
	case ']':
		l.nextByte()
		return startPos, pdf.Operator("]"), nil
	case '{':
		l.nextByte()
		return startPos, pdf.Operator("{"), nil
	case '}':
		l.nextByte()
		return startPos, pdf.Operator("}"), nil
	case '/':
		l.nextByte()
		name, err := l.readName()
		return startPos, name, err
	default:
		l.nextByte()
		opBytes := []byte{b}
		if class[b] == regular {
			for {
				b, err := l.peek()
				if err == io.EOF {
					break
				} else if err != nil {
					return startPos, nil, err
				}
				if class[b] != regular {
					break
				}
				l.nextByte()
				opBytes = append(opBytes, b)
			}
		}

		if num, ok := parseNumber(opBytes); ok {
			return startPos, num, nil
		}

		switch string(opBytes) {
		case "false":
			return startPos, pdf.Boolean(false), nil
		case "true":
			return startPos, pdf.Boolean(true), nil
		case "null":
			return startPos, pdf.Null{}, nil
		}

		return startPos, pdf.Operator(opBytes), nil
	}
}

func (l *Lexer) readString() (pdf.String, error) {
	startPos := l.bytePos
	if err := l.skipRequiredByte('('); err != nil {
		return nil, err
	}
	var res []byte
	depth := 1
	ignoreLF := false
	for {
		b, err := l.nextByte()
		if err != nil {
			if err == io.EOF {
				return nil, &LexError{Pos: startPos, Msg: "unterminated string"}
			}
			return nil, err
		}
		if ignoreLF && b == '\n' {
			ignoreLF = false
			continue
		}
		ignoreLF = false
		switch b {
		case '(':
			depth++
			res = append(res, b)
		case ')':
			depth--
			if depth == 0 {
				return pdf.String(res), nil
			}
			res = append(res, b)
		case '\\':
			b, err = l.nextByte()
			if err != nil {
				if err == io.EOF {
					return nil, &LexError{Pos: startPos, Msg: "unterminated string"}
				}
				return nil, err
			}
			switch b {
			case 'n':
				res = append(res, '\n')
			case 'r':
				res = append(res, '\r')
			case 't':
				res = append(res, '\t')
			case 'b':
				res = append(res, '\b')
			case 'f':
				res = append(res, '\f')
			case '(', ')', '\\':
				res = append(res, b)
			case '\n':
				// line continuation, nothing emitted
			case '\r':
				// line continuation; swallow an immediately following LF too
				ignoreLF = true
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := b - '0'
				for i := 0; i < 2; i++ {
					peeked, err := l.peek()
					if err == io.EOF {
						break
					} else if err != nil {
						return nil, err
					}
					if peeked < '0' || peeked > '7' {
						break
					}
					l.nextByte()
					oct = oct*8 + (peeked - '0')
				}
				res = append(res, oct)
			default:
				res = append(res, b)
			}
		case '\r':
			// bare CR or CRLF normalised to LF
			if peeked, err := l.peek(); err == nil && peeked == '\n' {
				l.nextByte()
			}
			res = append(res, '\n')
		default:
			res = append(res, b)
		}
	}
}

func (l *Lexer) readHexString() (pdf.String, error) {
	startPos := l.bytePos
	if err := l.skipRequiredByte('<'); err != nil {
		return nil, err
	}

	var res []byte
	first := true
	var hi byte
	for {
		b, err := l.nextByte()
		if err != nil {
			if err == io.EOF {
				return nil, &LexError{Pos: startPos, Msg: "unterminated hex string"}
			}
			return nil, err
		}
		if b == '>' {
			break
		}
		if b <= 32 {
			continue
		}
		var lo byte
		switch {
		case b >= '0' && b <= '9':
			lo = b - '0'
		case b >= 'A' && b <= 'F':
			lo = b - 'A' + 10
		case b >= 'a' && b <= 'f':
			lo = b - 'a' + 10
		default:
			return nil, &LexError{Pos: l.bytePos, Msg: fmt.Sprintf("invalid hex digit %q", b)}
		}
		if first {
			hi = lo << 4
			first = false
		} else {
			res = append(res, hi|lo)
			first = true
		}
	}
	if !first {
		// odd number of digits: pad the final nibble with 0
		res = append(res, hi)
	}
	return pdf.String(res), nil
}

// readName reads a PDF name, without the leading slash (already consumed).
func (l *Lexer) readName() (pdf.Name, error) {
	var name []byte
	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if b == '#' {
			l.nextByte()
			hi, err := l.hexDigit()
			if err != nil {
				return "", err
			}
			lo, err := l.hexDigit()
			if err != nil {
				return "", err
			}
			name = append(name, hi<<4|lo)
			continue
		}
		if class[b] != regular {
			break
		}
		l.nextByte()
		name = append(name, b)
	}
	return pdf.Name(name), nil
}

func (l *Lexer) hexDigit() (byte, error) {
	b, err := l.nextByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	default:
		return 0, &LexError{Pos: l.bytePos, Msg: fmt.Sprintf("invalid name escape %q", b)}
	}
}

func (l *Lexer) skipWhiteSpace() error {
	for {
		b, err := l.peek()
		if err != nil {
			return err
		}
		if b <= 32 {
			l.nextByte()
		} else if b == '%' {
			l.skipComment()
		} else {
			return nil
		}
	}
}

func (l *Lexer) skipComment() {
	if err := l.skipRequiredByte('%'); err != nil {
		return
	}
	for {
		b, err := l.peek()
		if err != nil || b == '\n' || b == '\r' {
			return
		}
		l.nextByte()
	}
}

func (l *Lexer) skipRequiredByte(expected byte) error {
	seen, err := l.nextByte()
	if err != nil {
		return err
	}
	if seen != expected {
		return &LexError{Pos: l.bytePos - 1, Msg: fmt.Sprintf("expected %q, got %q", expected, seen)}
	}
	return nil
}

func (l *Lexer) peek() (byte, error) {
	if len(l.ahead) == 0 {
		b, err := l.readByte()
		if err != nil {
			return 0, err
		}
		l.ahead = append(l.ahead, b)
	}
	return l.ahead[0], nil
}

func (l *Lexer) peekN(n int) []byte {
	for len(l.ahead) < n {
		b, err := l.readByte()
		if err != nil {
			return l.ahead
		}
		l.ahead = append(l.ahead, b)
	}
	return l.ahead[:n]
}

func (l *Lexer) nextByte() (byte, error) {
	var b byte
	if len(l.ahead) > 0 {
		b = l.ahead[0]
		copy(l.ahead, l.ahead[1:])
		l.ahead = l.ahead[:len(l.ahead)-1]
	} else {
		var err error
		b, err = l.readByte()
		if err != nil {
			return 0, err
		}
	}

	l.bytePos++
	if l.crSeen && b == '\n' {
		// ignore LF after CR for line counting purposes
	} else if b == '\n' || b == '\r' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.crSeen = b == '\r'

	return b, nil
}

func (l *Lexer) readByte() (byte, error) {
	for l.pos >= l.used {
		if err := l.refill(); err != nil {
			return 0, err
		}
	}
	b := l.buf[l.pos]
	l.pos++
	return b, nil
}

func (l *Lexer) refill() error {
	if l.err != nil {
		return l.err
	}
	l.used = copy(l.buf, l.buf[l.pos:l.used])
	l.pos = 0

	n, err := l.src.Read(l.buf[l.used:])
	l.used += n
	if err != nil {
		l.err = err
		if n > 0 {
			err = nil
		}
	}
	return err
}

func parseNumber(s []byte) (pdf.Object, bool) {
	if x, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return pdf.Integer(x), true
	}

	isSimple := len(s) > 0
	for i, c := range s {
		if i == 0 && (c == '+' || c == '-') {
			continue
		}
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			isSimple = false
			break
		}
	}

	if isSimple {
		if y, err := strconv.ParseFloat(string(s), 64); err == nil && !math.IsInf(y, 0) && !math.IsNaN(y) {
			return pdf.Real(y), true
		}
	}

	return nil, false
}

type characterClass byte

const (
	regular characterClass = iota
	space
	delimiter
)

var class = func() [256]characterClass {
	var c [256]characterClass
	for i := range c {
		c[i] = regular
	}
	for _, b := range []byte{0, '\t', '\n', '\f', '\r', ' '} {
		c[b] = space
	}
	for _, b := range []byte("()<>[]{}/%") {
		c[b] = delimiter
	}
	return c
}()
