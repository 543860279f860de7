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

// Package graphics implements the value-semantic graphics and text state
// the page interpreter mutates and snapshots as it executes a content
// stream.
package graphics

import (
	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/color"
	"github.com/dcoder/pdfcontent/font"
	"github.com/dcoder/pdfcontent/matrix"
)

// State is the PDF graphics state: everything q/Q push and pop other than
// the text state, which is tracked separately and reset on BT.
type State struct {
	LineWidth         float64
	LineCap           int
	LineJoin          int
	MiterLimit        float64
	DashPattern       []float64
	DashPhase         float64
	RenderingIntent   pdf.Name
	FlatnessTolerance float64
	CTM               matrix.Matrix

	StrokeColor color.Value
	FillColor   color.Value

	// ExtGState-derived tracking: gs merges recognized keys into state
	// for tracking purposes even though painting itself ignores them.
	StrokeAlpha float64 // /CA
	FillAlpha   float64 // /ca
	BlendMode   pdf.Name // /BM
}

// NewState returns the PDF imaging model's initial graphics state.
func NewState() *State {
	return &State{
		LineWidth:         1,
		MiterLimit:        10,
		FlatnessTolerance: 1,
		CTM:               matrix.Identity,
		StrokeColor:       color.DefaultValue,
		FillColor:         color.DefaultValue,
		StrokeAlpha:       1,
		FillAlpha:         1,
	}
}

// Clone returns a deep-enough copy that mutating the original afterwards
// never mutates the copy: scalar and [6]float64 fields copy automatically,
// but DashPattern's backing slice needs an explicit copy.
func (s *State) Clone() *State {
	c := *s
	if s.DashPattern != nil {
		c.DashPattern = append([]float64(nil), s.DashPattern...)
	}
	return &c
}

// TextState is the PDF text state. BT resets only Tm and Tlm (to
// identity); the other fields persist across BT/ET, per the imaging model.
type TextState struct {
	Font     pdf.Name
	FontObj  font.Font
	FontSize float64

	CharSpacing   float64
	WordSpacing   float64
	HorizScaling  float64 // percent, default 100
	Leading       float64 // stored un-negated; T* advances by (0, -Leading)
	RenderMode    int
	Rise          float64

	Tm  matrix.Matrix
	Tlm matrix.Matrix
}

// NewTextState returns the PDF imaging model's initial text state.
func NewTextState() *TextState {
	return &TextState{
		HorizScaling: 100,
		Tm:           matrix.Identity,
		Tlm:          matrix.Identity,
	}
}

// Clone returns a copy; TextState has no slice/pointer fields needing a
// deep copy beyond FontObj (shared, immutable once constructed).
func (t *TextState) Clone() *TextState {
	c := *t
	return &c
}
