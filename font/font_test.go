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

package font

import (
	"testing"

	"github.com/dcoder/pdfcontent"
)

func collect(f Font, s pdf.String) ([]int, []float64) {
	var codes []int
	var widths []float64
	for c, w := range f.Decode(s) {
		codes = append(codes, c)
		widths = append(widths, w)
	}
	return codes, widths
}

func TestType1Decode(t *testing.T) {
	f := DefaultType1()
	codes, widths := collect(f, pdf.String("AB"))
	if len(codes) != 2 || codes[0] != 'A' || codes[1] != 'B' {
		t.Errorf("codes = %v", codes)
	}
	if widths[0] != 0.5 {
		t.Errorf("width = %v, want 0.5", widths[0])
	}
}

func TestCIDFontDecodeTwoByte(t *testing.T) {
	f, err := NewCIDFont(pdf.Dict{"Subtype": pdf.Name("CIDFontType2")})
	if err != nil {
		t.Fatal(err)
	}
	codes, _ := collect(f, pdf.String{0x00, 0x41, 0x00, 0x42})
	if len(codes) != 2 || codes[0] != 0x41 || codes[1] != 0x42 {
		t.Errorf("codes = %v", codes)
	}
}

func TestType3CapturesFontMatrixAndCharProcs(t *testing.T) {
	spec := pdf.Dict{
		"FontMatrix": pdf.Array{pdf.Real(0.001), pdf.Integer(0), pdf.Integer(0), pdf.Real(0.001), pdf.Integer(0), pdf.Integer(0)},
		"CharProcs":  pdf.Dict{"A": pdf.NewStream(pdf.Dict{}, nil)},
	}
	f, err := NewType3(spec)
	if err != nil {
		t.Fatal(err)
	}
	if f.FontMatrix != [6]float64{0.001, 0, 0, 0.001, 0, 0} {
		t.Errorf("FontMatrix = %v", f.FontMatrix)
	}
	if _, ok := f.CharProcs["A"]; !ok {
		t.Error("CharProcs[A] missing")
	}
}

func TestCheckFontDictRejectsWrongType(t *testing.T) {
	err := CheckFontDict(pdf.Dict{"Type": pdf.Name("Bogus")})
	if err == nil {
		t.Fatal("expected a SpecError")
	}
	if _, ok := err.(*SpecError); !ok {
		t.Errorf("got %T, want *SpecError", err)
	}
}

func TestIdentityCMapDecode(t *testing.T) {
	var codes []int
	for c, _ := range IdentityCMap.Decode(pdf.String{0x00, 0x41}) {
		codes = append(codes, c)
	}
	if len(codes) != 1 || codes[0] != 0x41 {
		t.Errorf("codes = %v", codes)
	}
}
