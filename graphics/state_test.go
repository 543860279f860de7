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

func TestCloneIsIndependent(t *testing.T) {
	gs := NewState()
	gs.DashPattern = []float64{1, 2, 3}
	clone := gs.Clone()
	clone.DashPattern[0] = 99
	if gs.DashPattern[0] == 99 {
		t.Error("mutating the clone's DashPattern mutated the original")
	}

	clone.LineWidth = 42
	if gs.LineWidth == 42 {
		t.Error("mutating the clone mutated the original's scalar field")
	}
}

func TestStackPushPop(t *testing.T) {
	st := NewStack()
	gs := NewState()
	ts := NewTextState()

	gs.LineWidth = 3
	st.Push(gs, ts)
	gs.LineWidth = 5 // mutate after push; must not affect the saved snapshot

	snap, ok := st.Pop()
	if !ok {
		t.Fatal("Pop on non-empty stack failed")
	}
	if snap.GS.LineWidth != 3 {
		t.Errorf("restored LineWidth = %v, want 3", snap.GS.LineWidth)
	}
}

func TestStackOverflowIsIgnored(t *testing.T) {
	st := &Stack{MaxDepth: 2}
	gs := NewState()
	ts := NewTextState()
	st.Push(gs, ts)
	st.Push(gs, ts)
	st.Push(gs, ts) // dropped
	if st.Depth() != 2 {
		t.Errorf("depth = %d, want 2", st.Depth())
	}
}

func TestStackUnderflowIsIgnored(t *testing.T) {
	st := NewStack()
	_, ok := st.Pop()
	if ok {
		t.Error("Pop on empty stack should report ok=false")
	}
}
