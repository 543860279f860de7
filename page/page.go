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

// Package page holds PageInfo, the minimal upstream shape interp.PageSource
// produces. It is split out from interp so that device can depend on it
// without importing interp (which depends on device) -- interp re-exports
// it as interp.PageInfo.
package page

import "github.com/dcoder/pdfcontent"

// Info is the minimal page shape the interpreter needs: the full
// Page/PDFDocument/page-tree walk is the out-of-scope document layer.
type Info struct {
	MediaBox  [4]float64
	Rotate    int
	Resources pdf.Dict
	Contents  pdf.Object
}
