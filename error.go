// Package pdfcontent is a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"errors"
	"strconv"
)

// ErrExtractionForbidden is raised by an upstream Getter before page
// iteration starts, when the document's security handler disallows text
// extraction. The interpreter never raises this itself; it is the caller's
// decision whether to proceed anyway.
var ErrExtractionForbidden = errors.New("pdf: text extraction forbidden by document permissions")

// MalformedFileError indicates that an object read from the document does
// not have the shape a caller expected (wrong type, missing required key,
// too many levels of indirection, ...). Operator handlers in the
// content-stream interpreter catch this error, log it, and skip or
// substitute a default rather than aborting the page.
type MalformedFileError struct {
	Err error
	Pos int64
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "malformed PDF object" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// IsMalformed reports whether err is, or wraps, a *MalformedFileError.
func IsMalformed(err error) bool {
	var target *MalformedFileError
	return errors.As(err, &target)
}
