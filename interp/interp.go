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

// Package interp is the page interpreter. It reads
// a page's content streams through the content package, maintains the
// graphics/text state machine, and emits rendering events to a
// device.Device.
package interp

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/color"
	"github.com/dcoder/pdfcontent/content"
	"github.com/dcoder/pdfcontent/device"
	"github.com/dcoder/pdfcontent/font"
	"github.com/dcoder/pdfcontent/graphics"
	"github.com/dcoder/pdfcontent/internal/diag"
	"github.com/dcoder/pdfcontent/matrix"
	"github.com/dcoder/pdfcontent/page"
	"github.com/dcoder/pdfcontent/resource"
)

// PageInfo is re-exported from package page so that callers can write
// interp.PageInfo; it is defined in page to avoid an import cycle between
// interp and device (both of which need the type, and interp imports
// device).
type PageInfo = page.Info

// Path and Segment are re-exported from package graphics for the same
// reason: device.PaintPath needs the type without importing interp.
type Path = graphics.Path
type Segment = graphics.Segment

const (
	SegMoveTo  = graphics.SegMoveTo
	SegLineTo  = graphics.SegLineTo
	SegCurveTo = graphics.SegCurveTo
	SegClose   = graphics.SegClose
)

// maxMarkedContentDepth caps BMC/BDC nesting, guarding against adversarial
// or cyclic marked-content structure in a malformed content stream.
const maxMarkedContentDepth = 64

// Options configures an Interpreter.
type Options struct {
	Caching               bool // default true
	MaxGraphicsStackDepth int  // default 256
	MaxArgStackDepth      int  // default 64
	Lenient               bool // default true
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Caching:               true,
		MaxGraphicsStackDepth: 256,
		MaxArgStackDepth:      64,
		Lenient:               true,
	}
}

// Interpreter executes a page's content streams, mutating its own
// per-invocation graphics/text state and emitting events to Device.
type Interpreter struct {
	Device    device.Device
	Resources *resource.Manager
	Options   Options

	getter pdf.Getter

	gs    *graphics.State
	ts    *graphics.TextState
	stack *graphics.Stack
	path  *graphics.Path

	argStack []pdf.Object

	resourcesDict pdf.Dict
	fontMap       map[pdf.Name]font.Font
	xobjMap       map[pdf.Name]*pdf.Stream
	csMap         map[pdf.Name]*color.Space
	propMap       map[pdf.Name]pdf.Dict
	extGStateMap  map[pdf.Name]pdf.Dict

	parser *content.Parser

	inTextObject       bool
	markedContentDepth int
	inlineImageCounter int
}

// NewInterpreter returns an Interpreter reading objects through getter,
// caching fonts in mgr, and sending events to dev.
func NewInterpreter(getter pdf.Getter, mgr *resource.Manager, dev device.Device, opts Options) *Interpreter {
	return &Interpreter{
		Device:    dev,
		Resources: mgr,
		Options:   opts,
		getter:    getter,
	}
}

// initialCTM computes the CTM mapping PDF default user space to device
// space for the given rotate value, per the rotate/CTM table.
func initialCTM(mediaBox [4]float64, rotate int) matrix.Matrix {
	x0, y0, x1, y1 := mediaBox[0], mediaBox[1], mediaBox[2], mediaBox[3]
	switch ((rotate % 360) + 360) % 360 {
	case 90:
		return matrix.Matrix{0, -1, 1, 0, -y0, x1}
	case 180:
		return matrix.Matrix{-1, 0, 0, -1, x1, y1}
	case 270:
		return matrix.Matrix{0, 1, -1, 0, y1, -x0}
	default:
		return matrix.Matrix{1, 0, 0, 1, -x0, -y0}
	}
}

// ProcessPage computes the initial CTM from the page's MediaBox/Rotate,
// opens it on the device, renders its content streams, and closes it.
func (ip *Interpreter) ProcessPage(ctx context.Context, pg *PageInfo) error {
	ctm := initialCTM(pg.MediaBox, pg.Rotate)

	if err := ip.Device.BeginPage(pg, ctm); err != nil {
		return err
	}

	renderErr := ip.RenderContents(ctx, pg.Resources, pg.Contents, ctm)

	if err := ip.Device.EndPage(pg); err != nil && renderErr == nil {
		renderErr = err
	}
	return renderErr
}

// RenderContents initialises a fresh state machine and executes
// contentsObj (a single stream or an array of streams) under the given
// resources dictionary and starting CTM.
func (ip *Interpreter) RenderContents(ctx context.Context, resources pdf.Dict, contentsObj pdf.Object, ctm matrix.Matrix) error {
	parts, err := contentStreamsOf(ip.getter, contentsObj)
	if err != nil {
		return err
	}
	return ip.runContent(ctx, resources, parts, ctm)
}

// runContent is the shared setup/execute body for both a top-level page
// and a recursively rendered Form XObject or Type3 glyph procedure.
func (ip *Interpreter) runContent(ctx context.Context, resources pdf.Dict, parts []io.Reader, ctm matrix.Matrix) error {
	ip.setupResources(resources)

	ip.gs = graphics.NewState()
	ip.gs.CTM = ctm
	ip.ts = graphics.NewTextState()
	ip.stack = graphics.NewStack()
	if ip.Options.MaxGraphicsStackDepth > 0 {
		ip.stack.MaxDepth = ip.Options.MaxGraphicsStackDepth
	}
	ip.path = &graphics.Path{}
	ip.argStack = nil
	ip.inTextObject = false
	ip.markedContentDepth = 0

	p := content.NewParser(parts)
	p.Lenient = ip.Options.Lenient
	ip.parser = p

	return ip.execute(ctx)
}

// contentStreamsOf resolves a page's /Contents entry (a single stream
// reference, a direct stream, or an array of either) into a slice of
// readers over each part's decoded bytes.
func contentStreamsOf(r pdf.Getter, obj pdf.Object) ([]io.Reader, error) {
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var streams []*pdf.Stream
	switch v := resolved.(type) {
	case *pdf.Stream:
		streams = append(streams, v)
	case pdf.Array:
		for _, entry := range v {
			stm, err := pdf.GetStream(r, entry)
			if err != nil {
				diag.Warn("interp: skipping unresolvable /Contents entry: %v", err)
				continue
			}
			streams = append(streams, stm)
		}
	case pdf.Null:
		// A page with no content streams at all; nothing to render.
	default:
		return nil, fmt.Errorf("interp: /Contents has unexpected type %T", resolved)
	}

	readers := make([]io.Reader, 0, len(streams))
	for _, stm := range streams {
		data, err := stm.Decode()
		if err != nil {
			diag.Warn("interp: failed to decode content stream: %v", err)
			continue
		}
		readers = append(readers, bytes.NewReader(data))
	}
	return readers, nil
}

func (ip *Interpreter) setupResources(resources pdf.Dict) {
	ip.resourcesDict = resources
	ip.fontMap = make(map[pdf.Name]font.Font)
	ip.xobjMap = make(map[pdf.Name]*pdf.Stream)
	ip.csMap = make(map[pdf.Name]*color.Space)
	ip.propMap = make(map[pdf.Name]pdf.Dict)
	ip.extGStateMap = make(map[pdf.Name]pdf.Dict)

	for name, sp := range color.Predefined {
		ip.csMap[pdf.Name(name)] = sp
	}

	if resources == nil {
		return
	}
	if xo, err := pdf.GetDict(ip.getter, resources["XObject"]); err == nil {
		for name, obj := range xo {
			if stm, err := pdf.GetStream(ip.getter, obj); err == nil {
				ip.xobjMap[name] = stm
			}
		}
	}
	if props, err := pdf.GetDict(ip.getter, resources["Properties"]); err == nil {
		for name, obj := range props {
			if d, err := pdf.GetDict(ip.getter, obj); err == nil {
				ip.propMap[name] = d
			}
		}
	}
	if eg, err := pdf.GetDict(ip.getter, resources["ExtGState"]); err == nil {
		for name, obj := range eg {
			if d, err := pdf.GetDict(ip.getter, obj); err == nil {
				ip.extGStateMap[name] = d
			}
		}
	}
}

// execute drives the content-stream parser, dispatching operators until
// ErrEndOfContent or a context cancellation.
func (ip *Interpreter) execute(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		obj, err := ip.parser.Next()
		if err == content.ErrEndOfContent {
			return nil
		}
		if err != nil {
			diag.Warn("interp: content stream parse error, stopping early: %v", err)
			return nil
		}

		if op, ok := obj.(pdf.Operator); ok {
			ip.dispatch(ctx, op)
			continue
		}

		ip.pushArg(obj)
	}
}

func (ip *Interpreter) pushArg(obj pdf.Object) {
	max := ip.Options.MaxArgStackDepth
	if max <= 0 {
		max = 64
	}
	if len(ip.argStack) >= max {
		diag.Warn("interp: argument stack overflow, dropping oldest operand")
		ip.argStack = ip.argStack[1:]
	}
	ip.argStack = append(ip.argStack, obj)
}

func (ip *Interpreter) popArgs(n int) ([]pdf.Object, bool) {
	if len(ip.argStack) < n {
		diag.Warn("interp: operand underflow, need %d have %d", n, len(ip.argStack))
		ip.argStack = ip.argStack[:0]
		return nil, false
	}
	start := len(ip.argStack) - n
	args := ip.argStack[start:]
	ip.argStack = ip.argStack[:start]
	return args, true
}

func numberOf(obj pdf.Object) (float64, bool) {
	switch v := obj.(type) {
	case pdf.Integer:
		return float64(v), true
	case pdf.Real:
		return float64(v), true
	default:
		return 0, false
	}
}
