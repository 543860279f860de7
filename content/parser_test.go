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

package content

import (
	"io"
	"strings"
	"testing"

	"github.com/dcoder/pdfcontent"
)

func drain(t *testing.T, p *Parser) []pdf.Object {
	t.Helper()
	var out []pdf.Object
	for {
		obj, err := p.Next()
		if err == ErrEndOfContent {
			return out
		}
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, obj)
	}
}

func TestSimpleOperators(t *testing.T) {
	p := NewParser([]io.Reader{strings.NewReader("1 0 0 RG\nq 0 0 100 100 re f Q")})
	objs := drain(t, p)
	if len(objs) == 0 {
		t.Fatal("expected some objects")
	}
	last := objs[len(objs)-1]
	if last != pdf.Operator("Q") {
		t.Errorf("last object = %v, want Q", last)
	}
}

func TestMultiPartConcatenation(t *testing.T) {
	// A part boundary falling mid-number must not merge "1" and "0" into
	// "10"; the inserted separator byte prevents that.
	p := NewParser([]io.Reader{strings.NewReader("1"), strings.NewReader("0 m")})
	objs := drain(t, p)
	if len(objs) != 3 {
		t.Fatalf("got %d objects, want 3 (1, 0, m): %v", len(objs), objs)
	}
	if objs[0] != pdf.Integer(1) || objs[1] != pdf.Integer(0) {
		t.Errorf("got %v, want separate 1 and 0", objs[:2])
	}
}

func TestInlineImage(t *testing.T) {
	src := "q BI /W 1 /H 1 /CS /G /BPC 8 ID \x80 EI Q"
	p := NewParser([]io.Reader{strings.NewReader(src)})
	objs := drain(t, p)

	var stm *pdf.Stream
	var sawEI bool
	for _, o := range objs {
		if s, ok := o.(*pdf.Stream); ok {
			stm = s
		}
		if o == pdf.Operator("EI") {
			sawEI = true
		}
	}
	if stm == nil {
		t.Fatal("no inline image stream produced")
	}
	if !sawEI {
		t.Error("expected an EI operator token after the stream")
	}
	if stm.Dict["W"] != pdf.Integer(1) || stm.Dict["H"] != pdf.Integer(1) {
		t.Errorf("dict = %v", stm.Dict)
	}
	if got := stm.Raw(); string(got) != "\x80 " {
		t.Errorf("payload = %q, want %q", got, "\x80 ")
	}
}

func TestInlineImageEIInsidePayloadIsNotTerminator(t *testing.T) {
	// "EI" embedded in binary data without surrounding whitespace must be
	// treated as payload, not as the terminator.
	src := "BI /L 0 ID \x01EI\x02 EI"
	p := NewParser([]io.Reader{strings.NewReader(src)})
	objs := drain(t, p)

	var stm *pdf.Stream
	for _, o := range objs {
		if s, ok := o.(*pdf.Stream); ok {
			stm = s
		}
	}
	if stm == nil {
		t.Fatal("no inline image stream produced")
	}
	if got := string(stm.Raw()); got != "\x01EI\x02 " {
		t.Errorf("payload = %q, want %q", got, "\x01EI\x02 ")
	}
}
