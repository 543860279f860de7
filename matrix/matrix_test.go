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

package matrix

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var testMatrices = []Matrix{
	Identity,
	{2, 3, 4, 5, 6, 7},
	Translate(-0.5, 0.5),
	Translate(1, 2),
	Scale(0.5, 0.5),
	Scale(2, 1),
	Scale(-1, -1),
	Rotate(0.1),
	Rotate(math.Pi / 2),
	Rotate(math.Pi),
}

func TestIdentity(t *testing.T) {
	for i, A := range testMatrices {
		t.Run(fmt.Sprintf("mat%d", i), func(t *testing.T) {
			if d := cmp.Diff(A, A.Mul(Identity)); d != "" {
				t.Error(d)
			}
			if d := cmp.Diff(A, Identity.Mul(A)); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestAssociativity(t *testing.T) {
	A := Translate(1, 2)
	B := Scale(2, 3)
	C := Rotate(0.3)
	left := A.Mul(B).Mul(C)
	right := A.Mul(B.Mul(C))
	if d := cmp.Diff(left, right, cmpopts.EquateApprox(1e-9, 1e-9)); d != "" {
		t.Error(d)
	}
}

func TestInverse(t *testing.T) {
	for i, A := range testMatrices {
		t.Run(fmt.Sprintf("mat%d", i), func(t *testing.T) {
			Ainv := A.Inv()
			if d := cmp.Diff(Identity, Ainv.Mul(A), cmpopts.EquateApprox(1e-6, 1e-6)); d != "" {
				t.Error(d)
			}
			if d := cmp.Diff(Identity, A.Mul(Ainv), cmpopts.EquateApprox(1e-6, 1e-6)); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestApply(t *testing.T) {
	m := Translate(10, 20)
	x, y := m.Apply(1, 1)
	if x != 11 || y != 21 {
		t.Errorf("Apply = (%g, %g), want (11, 21)", x, y)
	}
}

func TestCTMConvention(t *testing.T) {
	// "cm a b c d e f" computes new_ctm = given.Mul(old_ctm).
	old := Translate(10, 20)
	given := Scale(2, 2)
	ctm := given.Mul(old)
	x, y := ctm.Apply(1, 1)
	// scale then translate: (2,2) + (10,20) = (12,22)
	if x != 12 || y != 22 {
		t.Errorf("cm composition = (%g, %g), want (12, 22)", x, y)
	}
}
