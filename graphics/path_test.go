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

package graphics

import "testing"

func TestPathRectProducesFourSegmentsAndClose(t *testing.T) {
	p := &Path{}
	p.Rect(1, 2, 10, 20)
	if len(p.Segments) != 5 {
		t.Fatalf("got %d segments, want 5", len(p.Segments))
	}
	kinds := []SegKind{SegMoveTo, SegLineTo, SegLineTo, SegLineTo, SegClose}
	for i, k := range kinds {
		if p.Segments[i].Kind != k {
			t.Errorf("segment %d kind = %v, want %v", i, p.Segments[i].Kind, k)
		}
	}
	x, y, ok := p.CurrentPoint()
	if !ok || x != 1 || y != 22 {
		t.Errorf("CurrentPoint = (%v,%v,%v), want (1,22,true) (close leaves last segment's point)", x, y, ok)
	}
}

func TestPathEmptyAndClear(t *testing.T) {
	p := &Path{}
	if !p.Empty() {
		t.Fatal("new path should be empty")
	}
	p.MoveTo(0, 0)
	p.LineTo(5, 5)
	if p.Empty() {
		t.Fatal("path with segments should not be empty")
	}
	p.Clear()
	if !p.Empty() {
		t.Fatal("path should be empty after Clear")
	}
}

func TestPathCurrentPointOnEmptyPath(t *testing.T) {
	p := &Path{}
	if _, _, ok := p.CurrentPoint(); ok {
		t.Error("CurrentPoint on empty path should report ok=false")
	}
}

func TestPathCurveTo(t *testing.T) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.CurveTo(1, 1, 2, 2, 3, 3)
	seg := p.Segments[1]
	if seg.Kind != SegCurveTo || seg.X1 != 1 || seg.Y1 != 1 || seg.X2 != 2 || seg.Y2 != 2 || seg.X != 3 || seg.Y != 3 {
		t.Errorf("CurveTo segment = %+v, want control points (1,1)/(2,2) and endpoint (3,3)", seg)
	}
}
