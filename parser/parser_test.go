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

package parser

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/token"
)

func parseAll(t *testing.T, src string) []pdf.Object {
	t.Helper()
	st := NewStack(token.NewLexer(strings.NewReader(src)))
	var out []pdf.Object
	for {
		obj, err := st.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, obj)
	}
	return out
}

func TestArray(t *testing.T) {
	got := parseAll(t, "[1 2 [3 4] 5]")
	want := []pdf.Object{
		pdf.Array{pdf.Integer(1), pdf.Integer(2), pdf.Array{pdf.Integer(3), pdf.Integer(4)}, pdf.Integer(5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("array mismatch (-want +got):\n%s", diff)
	}
}

func TestDict(t *testing.T) {
	got := parseAll(t, "<< /A 1 /B (x) >>")
	want := []pdf.Object{
		pdf.Dict{"A": pdf.Integer(1), "B": pdf.String("x")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dict mismatch (-want +got):\n%s", diff)
	}
}

func TestOddDictIsError(t *testing.T) {
	st := NewStack(token.NewLexer(strings.NewReader("<< /A 1 /B >>")))
	_, err := st.Next()
	var perr *ParseError
	if err == nil {
		t.Fatal("expected a ParseError for an odd-arity dict")
	}
	if !okAs(err, &perr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestNonNameDictKeyIsError(t *testing.T) {
	st := NewStack(token.NewLexer(strings.NewReader("<< 1 2 >>")))
	_, err := st.Next()
	if err == nil {
		t.Fatal("expected a ParseError for a non-name dict key")
	}
}

func TestTopLevelObjectsInterleaveKeywords(t *testing.T) {
	got := parseAll(t, "1 2 Tj 3")
	want := []pdf.Object{pdf.Integer(1), pdf.Integer(2), pdf.Operator("Tj"), pdf.Integer(3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func okAs(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}
