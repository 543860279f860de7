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

// Command pdfextract is a thin demonstration driver for the interp/device
// API. It reads a single raw content-stream file (the cross-reference
// parser and page tree are the out-of-scope document layer, so there is no
// real PDF file to open here), wraps it in a minimal in-memory page, and
// dumps the text it finds to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/device"
	"github.com/dcoder/pdfcontent/graphics"
	"github.com/dcoder/pdfcontent/internal/diag"
	"github.com/dcoder/pdfcontent/interp"
	"github.com/dcoder/pdfcontent/resource"
)

// arena is the in-memory pdf.Getter fixture this driver uses in place of a
// real cross-reference table: a content stream built by this command never
// contains indirect references, so Resolve is never actually exercised, but
// the interpreter's API requires a Getter regardless.
type arena map[pdf.Reference]pdf.Object

func (a arena) Resolve(ref pdf.Reference) (pdf.Object, error) {
	if obj, ok := a[ref]; ok {
		return obj, nil
	}
	return pdf.Null{}, nil
}

// textDumper is a device.Device that only cares about text: every other
// event is the inherited device.Base no-op.
type textDumper struct {
	device.Base
	out io.Writer
}

func (d *textDumper) RenderString(_ *graphics.TextState, tj []pdf.Object) error {
	var b strings.Builder
	for _, item := range tj {
		if s, ok := item.(pdf.String); ok {
			b.Write(s)
		}
	}
	if b.Len() > 0 {
		fmt.Fprintln(d.out, b.String())
	}
	return nil
}

func main() {
	var (
		inPath  string
		verbose bool
		width   float64
		height  float64
	)
	flag.StringVar(&inPath, "in", "", "path to a raw content-stream file (required)")
	flag.BoolVar(&verbose, "v", false, "log warnings emitted by the interpreter's lenient error handling")
	flag.Float64Var(&width, "width", 612, "page width, in PDF user-space units")
	flag.Float64Var(&height, "height", 792, "page height, in PDF user-space units")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pdfextract -in FILE")
		os.Exit(2)
	}

	if verbose {
		diag.SetLogger(func(level diag.Level, msg string) {
			log.Printf("[%s] %s", level, msg)
		})
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdfextract:", err)
		os.Exit(1)
	}

	pg := &interp.PageInfo{
		MediaBox:  [4]float64{0, 0, width, height},
		Rotate:    0,
		Resources: pdf.Dict{},
		Contents:  pdf.NewStream(pdf.Dict{}, data),
	}

	dev := &textDumper{out: os.Stdout}
	mgr := resource.NewManager(nil)
	ip := interp.NewInterpreter(arena{}, mgr, dev, interp.DefaultOptions())

	if err := ip.ProcessPage(context.Background(), pg); err != nil {
		fmt.Fprintln(os.Stderr, "pdfextract:", err)
		os.Exit(1)
	}
}
