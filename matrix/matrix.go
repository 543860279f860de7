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

// Package matrix implements the 2x3 affine matrix arithmetic shared by the
// graphics state and the page interpreter.
package matrix

import "math"

// Matrix represents a 2x3 affine transformation matrix (a, b, c, d, e, f),
// corresponding to the row-vector transform
//
//	[x' y' 1] = [x y 1] * | a b 0 |
//	                      | c d 0 |
//	                      | e f 1 |
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translate returns the matrix for a translation by (dx, dy).
func Translate(dx, dy float64) Matrix {
	return Matrix{1, 0, 0, 1, dx, dy}
}

// Scale returns the matrix for scaling by (sx, sy).
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns the matrix for a counter-clockwise rotation by angle
// radians.
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{c, s, -s, c, 0, 0}
}

// Mul returns the matrix representing "first apply A (the receiver), then
// apply M": Mul computes A.Mul(M) = A ∘ M in the sense that for a CTM
// update "cm a b c d e f" with given=A, old=M, the new CTM is A.Mul(M).
//
// Explicitly, for A=(a,b,c,d,e,f) and M=(A,B,C,D,E,F):
//
//	A.Mul(M) = (aA+bC, aB+bD, cA+dC, cB+dD, eA+fC+E, eB+fD+F)
func (A Matrix) Mul(M Matrix) Matrix {
	return Matrix{
		A[0]*M[0] + A[1]*M[2],
		A[0]*M[1] + A[1]*M[3],
		A[2]*M[0] + A[3]*M[2],
		A[2]*M[1] + A[3]*M[3],
		A[4]*M[0] + A[5]*M[2] + M[4],
		A[4]*M[1] + A[5]*M[3] + M[5],
	}
}

// Apply transforms the point (x, y) by M, using the row-vector convention
// (x, y, 1) * M.
func (M Matrix) Apply(x, y float64) (float64, float64) {
	return M[0]*x + M[2]*y + M[4], M[1]*x + M[3]*y + M[5]
}

// Det returns the determinant of the linear part of M.
func (M Matrix) Det() float64 {
	return M[0]*M[3] - M[1]*M[2]
}

// Inv returns the inverse of M. If M is singular, Inv returns the zero
// Matrix.
func (M Matrix) Inv() Matrix {
	det := M.Det()
	if det == 0 {
		return Matrix{}
	}
	a, b, c, d, e, f := M[0], M[1], M[2], M[3], M[4], M[5]
	ia := d / det
	ib := -b / det
	ic := -c / det
	id := a / det
	ie := -(e*ia + f*ic)
	ifv := -(e*ib + f*id)
	return Matrix{ia, ib, ic, id, ie, ifv}
}
