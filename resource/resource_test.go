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

package resource

import (
	"testing"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/font"
)

type nilGetter struct{}

func (nilGetter) Resolve(ref pdf.Reference) (pdf.Object, error) { return pdf.Null{}, nil }

// mapGetter resolves references against a fixed table, simulating the
// document layer for DescendantFonts entries that are indirect references
// (the common case real-world Type0 fonts use).
type mapGetter map[pdf.Reference]pdf.Object

func (g mapGetter) Resolve(ref pdf.Reference) (pdf.Object, error) { return g[ref], nil }

func TestGetFontCachesByRef(t *testing.T) {
	m := NewManager(nil)
	ref := pdf.NewReference(7, 0)
	spec := pdf.Dict{"Type": pdf.Name("Font"), "Subtype": pdf.Name("Type1")}

	f1, err := m.GetFont(nilGetter{}, ref, spec)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := m.GetFont(nilGetter{}, ref, pdf.Dict{"Type": pdf.Name("Font"), "Subtype": pdf.Name("TrueType")})
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Error("expected cached font to be returned regardless of the second call's spec")
	}
}

func TestGetFontFallsBackOnSpecError(t *testing.T) {
	m := NewManager(nil)
	f, err := m.GetFont(nilGetter{}, pdf.Reference{}, pdf.Dict{"Type": pdf.Name("NotAFont")})
	if err != nil {
		t.Fatal(err)
	}
	if f.Subtype() != "Type1" {
		t.Errorf("expected fallback to default Type1, got %v", f.Subtype())
	}
}

func TestGetFontType0RecursesIntoDescendant(t *testing.T) {
	m := NewManager(nil)
	spec := pdf.Dict{
		"Type":    pdf.Name("Font"),
		"Subtype": pdf.Name("Type0"),
		"Encoding": pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{
			pdf.Dict{"Type": pdf.Name("Font"), "Subtype": pdf.Name("CIDFontType2")},
		},
	}
	f, err := m.GetFont(nilGetter{}, pdf.Reference{}, spec)
	if err != nil {
		t.Fatal(err)
	}
	if f.Subtype() != "CIDFontType2" {
		t.Errorf("got %v, want CIDFontType2", f.Subtype())
	}
}

func TestGetFontType0RecursesIntoIndirectDescendant(t *testing.T) {
	m := NewManager(nil)
	descRef := pdf.NewReference(9, 0)
	getter := mapGetter{
		descRef: pdf.Dict{"Type": pdf.Name("Font"), "Subtype": pdf.Name("CIDFontType0")},
	}
	spec := pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"Encoding":        pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{descRef},
	}
	f, err := m.GetFont(getter, pdf.Reference{}, spec)
	if err != nil {
		t.Fatal(err)
	}
	if f.Subtype() != "CIDFontType0" {
		t.Errorf("got %v, want CIDFontType0 (descendant resolved through the Getter)", f.Subtype())
	}
}

func TestGetProcSetDropsUnrecognised(t *testing.T) {
	m := NewManager(nil)
	got := m.GetProcSet(pdf.Array{pdf.Name("PDF"), pdf.Name("Bogus"), pdf.Name("Text")})
	if len(got) != 2 || got[0] != "PDF" || got[1] != "Text" {
		t.Errorf("got %v", got)
	}
}

func TestColorSpaceFallsBackToDeviceGray(t *testing.T) {
	m := NewManager(nil)
	sp, err := m.ColorSpace(nilGetter{}, "Bogus", pdf.Dict{})
	if err != nil {
		t.Fatal(err)
	}
	if sp == nil || sp.Name != "DeviceGray" {
		t.Errorf("got %v", sp)
	}
}

var _ font.CMapDatabase = (*fakeCMapDB)(nil)

type fakeCMapDB struct{}

func (fakeCMapDB) Get(name pdf.Name) (font.CMap, bool) { return nil, false }

func TestGetCMapNonStrictMissFallsBackToIdentity(t *testing.T) {
	m := NewManager(fakeCMapDB{})
	cm, err := m.GetCMap("Bogus-Encoding", false)
	if err != nil {
		t.Fatal(err)
	}
	if cm != font.IdentityCMap {
		t.Error("expected IdentityCMap fallback")
	}
}

func TestGetCMapStrictMissIsError(t *testing.T) {
	m := NewManager(fakeCMapDB{})
	_, err := m.GetCMap("Bogus-Encoding", true)
	if err == nil {
		t.Error("expected an error in strict mode")
	}
}
