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

package interp

import (
	"context"
	"iter"

	"github.com/dcoder/pdfcontent"
)

// PageSource is the upstream document layer's minimal contract: something
// that can produce PageInfo values and report whether extraction is
// permitted. The full page-tree walk, cross-reference resolution, and
// security-handler permission check are the out-of-scope document layer;
// interp only consumes this interface.
type PageSource interface {
	// Pages iterates the document's pages in order. The iterator stops
	// early if the consuming loop breaks, or if ctx is cancelled.
	Pages(ctx context.Context) iter.Seq[*PageInfo]

	// IsExtractable reports whether the document's permissions (as
	// determined by the upstream security handler) allow text/graphics
	// extraction. ProcessAll checks it before iterating Pages and returns
	// pdf.ErrExtractionForbidden when it is false; ProcessPage does not
	// check it, so callers driving ProcessPage directly check it themselves.
	IsExtractable() bool
}

// ProcessAll runs ProcessPage over every page src produces, in order,
// stopping at the first error (including ctx cancellation) and returning
// it together with the 0-based index of the page that failed, or (-1, nil)
// if every page succeeded.
func ProcessAll(ctx context.Context, ip *Interpreter, src PageSource) (int, error) {
	if !src.IsExtractable() {
		return -1, pdf.ErrExtractionForbidden
	}
	i := 0
	for pg := range src.Pages(ctx) {
		if err := ip.ProcessPage(ctx, pg); err != nil {
			return i, err
		}
		i++
	}
	return -1, nil
}
