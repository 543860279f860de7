// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
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

package color

import (
	"testing"

	"github.com/dcoder/pdfcontent"
)

type nilGetter struct{}

func (nilGetter) Resolve(ref pdf.Reference) (pdf.Object, error) { return pdf.Null{}, nil }

func TestResolvePredefined(t *testing.T) {
	sp, err := Resolve(nilGetter{}, "DeviceRGB", nil)
	if err != nil {
		t.Fatal(err)
	}
	if sp != DeviceRGB {
		t.Errorf("got %v, want DeviceRGB", sp)
	}
}

func TestResolveArrayIndexed(t *testing.T) {
	csDict := pdf.Dict{
		"CS0": pdf.Array{pdf.Name("Indexed"), pdf.Name("DeviceRGB"), pdf.Integer(255), pdf.String("")},
	}
	sp, err := Resolve(nilGetter{}, "CS0", csDict)
	if err != nil {
		t.Fatal(err)
	}
	if sp.Kind != KindIndexed || sp.NumComps != 1 {
		t.Errorf("got %+v", sp)
	}
	if sp.Underlying != DeviceRGB {
		t.Errorf("underlying = %v, want DeviceRGB", sp.Underlying)
	}
}

func TestResolveUnknownFallsBackToDeviceGray(t *testing.T) {
	csDict := pdf.Dict{}
	sp, err := Resolve(nilGetter{}, "Bogus", csDict)
	if err == nil {
		t.Error("expected an error for an unrecognised color space")
	}
	if sp != DeviceGray {
		t.Errorf("expected fallback to DeviceGray, got %v", sp)
	}
}

func TestNewValueChecksComponentCount(t *testing.T) {
	_, err := NewValue(DeviceRGB, []float64{1, 0})
	if err == nil {
		t.Error("expected ErrWrongComponentCount")
	}
	v, err := NewValue(DeviceRGB, []float64{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Comps) != 3 {
		t.Errorf("got %d components, want 3", len(v.Comps))
	}
}
