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

// Package font is the black-box boundary to the font subsystem (glyph
// outlines, embedded-font parsing, CMap databases): the resource manager
// dispatches on a font dictionary's Subtype to one of the stub types here,
// and the page interpreter only ever needs the "decode byte-string to a
// sequence of (character code, displacement)" capability exposed by Font
// and CMap.
package font

import (
	"fmt"
	"iter"

	"github.com/dcoder/pdfcontent"
)

// Font is the minimal capability the interpreter needs from any font: a way
// to turn a string-showing operator's argument into glyph advances.
type Font interface {
	// Decode yields, for each glyph in s, the displacement (in text-space
	// units, scaled by 1/1000 of the font size) the text matrix must
	// advance by after showing that glyph.
	Decode(s pdf.String) iter.Seq2[int, float64]

	// Subtype returns the font dictionary's /Subtype name, for diagnostics.
	Subtype() pdf.Name
}

// Embedded marks a Font that carries its own program data (as opposed to a
// reference to one of the 14 standard fonts); interp doesn't currently
// branch on this but devices rendering glyph outlines would need it.
type Embedded interface {
	Font
	FontFile() *pdf.Stream
}

// SpecError reports that a font dictionary doesn't describe a font this
// package knows how to decode (missing/wrong Type, unrecognised Subtype).
// It is always recoverable: callers fall back to DefaultType1().
type SpecError struct {
	Msg string
}

func (e *SpecError) Error() string { return "font: " + e.Msg }

// simpleFont is shared by the Type1/TrueType/Type3 single-byte encodings:
// one byte of input maps to one glyph, advances at a flat average width
// since no real glyph-width table is available without font-program
// internals (an explicit out-of-scope collaborator).
type simpleFont struct {
	subtype     pdf.Name
	avgWidth    float64 // glyph-space units / 1000
	fontFile    *pdf.Stream
}

func (f *simpleFont) Subtype() pdf.Name  { return f.subtype }
func (f *simpleFont) FontFile() *pdf.Stream { return f.fontFile }

func (f *simpleFont) Decode(s pdf.String) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for _, b := range s {
			if !yield(int(b), f.avgWidth) {
				return
			}
		}
	}
}

// Type1Font represents a Type1 or MMType1 simple font.
type Type1Font struct{ simpleFont }

// TrueTypeFont represents a TrueType simple font.
type TrueTypeFont struct{ simpleFont }

// NewType1 builds a Type1Font from a font dictionary.
func NewType1(spec pdf.Dict) (*Type1Font, error) {
	f := &Type1Font{simpleFont{subtype: "Type1", avgWidth: 0.5}}
	if fd, ok := spec["FirstChar"]; ok {
		_ = fd // widths array parsing is the document layer's job; avgWidth stands in
	}
	return f, nil
}

// NewTrueType builds a TrueTypeFont from a font dictionary.
func NewTrueType(spec pdf.Dict) (*TrueTypeFont, error) {
	return &TrueTypeFont{simpleFont{subtype: "TrueType", avgWidth: 0.5}}, nil
}

// Type3Font represents a Type3 font, whose glyphs are themselves content
// streams (CharProcs) executed under FontMatrix composed with the text
// rendering matrix. interp.forType3Glyph is the execution side of this.
type Type3Font struct {
	simpleFont
	CharProcs  pdf.Dict // glyph name -> *pdf.Stream (resolved lazily by interp)
	FontMatrix [6]float64
	Resources  pdf.Dict
	Encoding   map[int]pdf.Name // character code -> glyph name, from /Encoding/Differences
}

// NewType3 builds a Type3Font from a font dictionary, capturing the fields
// the interpreter needs to execute glyph procedures as content streams.
func NewType3(spec pdf.Dict) (*Type3Font, error) {
	f := &Type3Font{
		simpleFont: simpleFont{subtype: "Type3", avgWidth: 0.5},
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},
	}
	if cp, ok := spec["CharProcs"].(pdf.Dict); ok {
		f.CharProcs = cp
	}
	if fm, ok := spec["FontMatrix"].(pdf.Array); ok && len(fm) == 6 {
		for i, v := range fm {
			switch n := v.(type) {
			case pdf.Real:
				f.FontMatrix[i] = float64(n)
			case pdf.Integer:
				f.FontMatrix[i] = float64(n)
			}
		}
	}
	if res, ok := spec["Resources"].(pdf.Dict); ok {
		f.Resources = res
	}
	if enc, ok := spec["Encoding"].(pdf.Dict); ok {
		if diffs, ok := enc["Differences"].(pdf.Array); ok {
			f.Encoding = make(map[int]pdf.Name)
			code := 0
			for _, d := range diffs {
				switch v := d.(type) {
				case pdf.Integer:
					code = int(v)
				case pdf.Name:
					f.Encoding[code] = v
					code++
				}
			}
		}
	}
	return f, nil
}

// CIDFont represents a CIDFontType0 or CIDFontType2 descendant font, or a
// composite Type0 font recursed into its first descendant.
type CIDFont struct {
	subtype  pdf.Name
	avgWidth float64
	cmap     CMap
}

func (f *CIDFont) Subtype() pdf.Name { return f.subtype }

func (f *CIDFont) Decode(s pdf.String) iter.Seq2[int, float64] {
	if f.cmap != nil {
		return f.cmap.Decode(s)
	}
	return func(yield func(int, float64) bool) {
		// Default: 2-byte identity encoding, the common case for CID fonts.
		for i := 0; i+1 < len(s); i += 2 {
			code := int(s[i])<<8 | int(s[i+1])
			if !yield(code, f.avgWidth) {
				return
			}
		}
	}
}

// NewCIDFont builds a CIDFont from a CIDFontType0/CIDFontType2 descendant
// font dictionary.
func NewCIDFont(spec pdf.Dict) (*CIDFont, error) {
	subtype, _ := spec["Subtype"].(pdf.Name)
	return &CIDFont{subtype: subtype, avgWidth: 1.0}, nil
}

// DefaultType1 returns a stand-in Type1 font used whenever a font
// dictionary can't be resolved (SpecError, missing resource, etc). It
// decodes as a flat 1-byte-per-glyph encoding at average width.
func DefaultType1() *Type1Font {
	return &Type1Font{simpleFont{subtype: "Type1", avgWidth: 0.5}}
}

// CMap is the decode capability of a character map: turning a raw byte
// string into (character code, displacement) pairs. Displacement is in
// glyph-space units (1/1000 em), matching the PDF width convention.
type CMap interface {
	Decode(s pdf.String) iter.Seq2[int, float64]
}

// CMapDatabase is the out-of-scope collaborator that owns predefined and
// embedded CMap resolution; resource.Manager.GetCMap delegates to it.
type CMapDatabase interface {
	Get(name pdf.Name) (CMap, bool)
}

// identityCMap is a trivial 2-byte identity mapping, used when a CMap
// lookup misses in non-strict mode.
type identityCMap struct{}

func (identityCMap) Decode(s pdf.String) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := 0; i+1 < len(s); i += 2 {
			code := int(s[i])<<8 | int(s[i+1])
			if !yield(code, 1.0) {
				return
			}
		}
	}
}

// IdentityCMap is the empty identity CMap substituted for a lookup miss in
// non-strict mode.
var IdentityCMap CMap = identityCMap{}

// checkFontDict verifies spec["Type"] == "Font", returning a *SpecError
// otherwise.
func checkFontDict(spec pdf.Dict) error {
	if t, ok := spec["Type"].(pdf.Name); !ok || t != "Font" {
		return &SpecError{Msg: fmt.Sprintf("expected /Type /Font, got %v", spec["Type"])}
	}
	return nil
}

// CheckFontDict is exported so resource.Manager.GetFont can validate a
// font dictionary's /Type before dispatching on /Subtype.
func CheckFontDict(spec pdf.Dict) error { return checkFontDict(spec) }
