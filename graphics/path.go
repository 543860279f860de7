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

// SegKind tags a Segment's operator.
type SegKind int

const (
	SegMoveTo SegKind = iota
	SegLineTo
	SegCurveTo
	SegClose
)

// Segment is one entry of a Path. For SegCurveTo, X1,Y1/X2,Y2 are the two
// Bezier control points and X,Y the endpoint; v/y content-stream shorthands
// are normalised to this full form by the caller (for v the current point
// fills in the first control point, for y the endpoint doubles as the
// second).
type Segment struct {
	Kind       SegKind
	X, Y       float64
	X1, Y1     float64
	X2, Y2     float64
}

// Path is an ordered sequence of path-construction segments, accumulated
// by m/l/c/v/y/h/re and cleared after a paint operator or n.
type Path struct {
	Segments []Segment
}

// MoveTo appends a moveto segment, starting a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: SegMoveTo, X: x, Y: y})
}

// LineTo appends a lineto segment.
func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: SegLineTo, X: x, Y: y})
}

// CurveTo appends a full cubic Bezier segment.
func (p *Path) CurveTo(x1, y1, x2, y2, x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: SegCurveTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

// Close appends a closepath segment.
func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Kind: SegClose})
}

// Rect appends the four-segment rectangle re draws: a subpath moveto the
// corner, two sides, and an implicit close.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return len(p.Segments) == 0 }

// Clear resets the path to empty, keeping the backing array.
func (p *Path) Clear() { p.Segments = p.Segments[:0] }

// CurrentPoint returns the path's current point: the endpoint of the last
// segment that is not a closepath (a closepath carries no point of its
// own). It is used to fill in the omitted control point of the v
// shorthand curve. ok is false when the path has no such segment.
func (p *Path) CurrentPoint() (x, y float64, ok bool) {
	for i := len(p.Segments) - 1; i >= 0; i-- {
		if s := p.Segments[i]; s.Kind != SegClose {
			return s.X, s.Y, true
		}
	}
	return 0, 0, false
}
