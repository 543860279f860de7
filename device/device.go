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

// Package device is the abstract sink the page
// interpreter emits rendering events to. Devices are free to discard any
// of these; device.Base gives a no-op starting point.
package device

import (
	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/graphics"
	"github.com/dcoder/pdfcontent/matrix"
	"github.com/dcoder/pdfcontent/page"
)

// Device receives the ordered stream of rendering events the page
// interpreter produces while executing a page's content streams.
type Device interface {
	BeginPage(page *page.Info, ctm matrix.Matrix) error
	EndPage(page *page.Info) error
	BeginFigure(name string, bbox [4]float64, m matrix.Matrix) error
	EndFigure(name string) error
	SetCTM(ctm matrix.Matrix) error
	PaintPath(gs *graphics.State, stroke, fill, evenOdd bool, path *graphics.Path) error
	RenderString(ts *graphics.TextState, tj []pdf.Object) error
	RenderImage(name string, stm *pdf.Stream) error
	BeginTag(tag pdf.Name, props pdf.Dict) error
	EndTag() error
	DoTag(tag pdf.Name, props pdf.Dict) error
}

// Base is an embeddable no-op Device: every method returns nil. A device
// that only cares about, say, RenderString embeds Base and overrides that
// one method.
type Base struct{}

func (Base) BeginPage(*page.Info, matrix.Matrix) error                        { return nil }
func (Base) EndPage(*page.Info) error                                         { return nil }
func (Base) BeginFigure(string, [4]float64, matrix.Matrix) error              { return nil }
func (Base) EndFigure(string) error                                           { return nil }
func (Base) SetCTM(matrix.Matrix) error                                       { return nil }
func (Base) PaintPath(*graphics.State, bool, bool, bool, *graphics.Path) error { return nil }
func (Base) RenderString(*graphics.TextState, []pdf.Object) error             { return nil }
func (Base) RenderImage(string, *pdf.Stream) error                            { return nil }
func (Base) BeginTag(pdf.Name, pdf.Dict) error                                { return nil }
func (Base) EndTag() error                                                    { return nil }
func (Base) DoTag(pdf.Name, pdf.Dict) error                                   { return nil }

var _ Device = Base{}
