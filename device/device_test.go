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

package device_test

import (
	"testing"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/device"
	"github.com/dcoder/pdfcontent/graphics"
	"github.com/dcoder/pdfcontent/matrix"
	"github.com/dcoder/pdfcontent/page"
)

// TestBaseIsNoOp verifies every Base method accepts arbitrary (including
// nil) arguments and returns nil, so that embedding devices only need to
// override the events they actually care about.
func TestBaseIsNoOp(t *testing.T) {
	var d device.Device = device.Base{}

	if err := d.BeginPage(&page.Info{}, matrix.Identity); err != nil {
		t.Error(err)
	}
	if err := d.EndPage(&page.Info{}); err != nil {
		t.Error(err)
	}
	if err := d.BeginFigure("Fm0", [4]float64{}, matrix.Identity); err != nil {
		t.Error(err)
	}
	if err := d.EndFigure("Fm0"); err != nil {
		t.Error(err)
	}
	if err := d.SetCTM(matrix.Identity); err != nil {
		t.Error(err)
	}
	if err := d.PaintPath(graphics.NewState(), true, true, false, &graphics.Path{}); err != nil {
		t.Error(err)
	}
	if err := d.RenderString(graphics.NewTextState(), nil); err != nil {
		t.Error(err)
	}
	if err := d.RenderImage("Im0", pdf.NewStream(pdf.Dict{}, nil)); err != nil {
		t.Error(err)
	}
	if err := d.BeginTag("Span", nil); err != nil {
		t.Error(err)
	}
	if err := d.EndTag(); err != nil {
		t.Error(err)
	}
	if err := d.DoTag("Span", nil); err != nil {
		t.Error(err)
	}
}
