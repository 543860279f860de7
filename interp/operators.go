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
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dcoder/pdfcontent"
	"github.com/dcoder/pdfcontent/color"
	"github.com/dcoder/pdfcontent/font"
	"github.com/dcoder/pdfcontent/internal/diag"
	"github.com/dcoder/pdfcontent/matrix"
)

// opHandler implements one content-stream operator. args has exactly
// entry.arity elements, in the order they were pushed (leftmost argument
// first), except for variableArity entries, which receive the whole
// current argument stack.
type opHandler func(ip *Interpreter, ctx context.Context, args []pdf.Object) error

// variableArity marks an opEntry whose operand count isn't fixed (the
// colour-setting operators SC/sc/SCN/scn, whose arity depends on the
// current colour space's component count).
const variableArity = -1

type opEntry struct {
	arity   int
	handler opHandler
}

// opTable is built once at package init, rather than using reflection-based
// operator dispatch.
var opTable map[string]opEntry

func init() {
	opTable = map[string]opEntry{
		// graphics state
		"q":  {0, opQ},
		"Q":  {0, opQPop},
		"cm": {6, opCM},
		"w":  {1, opLineWidth},
		"J":  {1, opLineCap},
		"j":  {1, opLineJoin},
		"M":  {1, opMiterLimit},
		"d":  {2, opDash},
		"ri": {1, opRenderingIntent},
		"i":  {1, opFlatness},
		"gs": {1, opExtGState},

		// path construction
		"m":  {2, opMoveTo},
		"l":  {2, opLineTo},
		"c":  {6, opCurveTo},
		"v":  {4, opCurveToV},
		"y":  {4, opCurveToY},
		"h":  {0, opClosePath},
		"re": {4, opRect},

		// path painting
		"S":   {0, opStroke},
		"s":   {0, opCloseStroke},
		"f":   {0, opFillNonZero},
		"F":   {0, opFillNonZero},
		"f_a": {0, opFillEvenOdd},
		"B":   {0, opFillStrokeNonZero},
		"B_a": {0, opFillStrokeEvenOdd},
		"b":   {0, opCloseFillStrokeNonZero},
		"b_a": {0, opCloseFillStrokeEvenOdd},
		"n":   {0, opNoPaint},

		// clipping (no-ops: no rasteriser, no clip-region tracking)
		"W":   {0, opNoop},
		"W_a": {0, opNoop},

		// colour
		"CS":  {1, opStrokeColorSpace},
		"cs":  {1, opFillColorSpace},
		"SC":  {variableArity, opStrokeColorComponents},
		"sc":  {variableArity, opFillColorComponents},
		"SCN": {variableArity, opStrokeColorComponents},
		"scn": {variableArity, opFillColorComponents},
		"G":   {1, opStrokeGray},
		"g":   {1, opFillGray},
		"RG":  {3, opStrokeRGB},
		"rg":  {3, opFillRGB},
		"K":   {4, opStrokeCMYK},
		"k":   {4, opFillCMYK},

		// text object
		"BT": {0, opBeginText},
		"ET": {0, opEndText},

		// text state
		"Tc": {1, opCharSpacing},
		"Tw": {1, opWordSpacing},
		"Tz": {1, opHorizScaling},
		"TL": {1, opLeading},
		"Tf": {2, opSetFont},
		"Tr": {1, opRenderMode},
		"Ts": {1, opRise},

		// text positioning
		"Td":  {2, opTextMove},
		"TD":  {2, opTextMoveSetLeading},
		"Tm":  {6, opSetTextMatrix},
		"T_a": {0, opNextLine},

		// text showing
		"Tj":  {1, opShowText},
		"TJ":  {1, opShowTextArray},
		"_q":  {1, opNextLineShowText},
		"_w":  {3, opSetSpacingNextLineShowText},

		// marked content
		"MP":  {1, opMarkedContentPoint},
		"DP":  {2, opMarkedContentPointProps},
		"BMC": {1, opBeginMarkedContent},
		"BDC": {2, opBeginMarkedContentProps},
		"EMC": {0, opEndMarkedContent},

		// XObjects
		"Do": {1, opDo},

		// inline images: the content package synthesizes (stream, "EI")
		"EI": {1, opInlineImage},

		// compatibility
		"BX": {0, opNoop},
		"EX": {0, opNoop},
	}
}

// normalizeOpName maps the few operator names that aren't valid Go map
// keys in their raw spelling-free form into the opTable's naming scheme:
// a trailing '*' becomes "_a", and the bare quote operators become "_w"/
// "_q".
func normalizeOpName(raw string) string {
	switch raw {
	case `"`:
		return "_w"
	case "'":
		return "_q"
	}
	if strings.HasSuffix(raw, "*") {
		return raw[:len(raw)-1] + "_a"
	}
	return raw
}

// dispatch normalises kw, looks it up in opTable, pops its arguments off
// the FIFO argument stack, and invokes its handler. Unknown operators and
// operand underflow are logged and treated as a no-op; operator failures
// are logged and otherwise ignored (nothing inside an operator
// aborts the page).
func (ip *Interpreter) dispatch(ctx context.Context, kw pdf.Operator) {
	name := normalizeOpName(string(kw))
	entry, ok := opTable[name]
	if !ok {
		diag.Warn("interp: unknown operator %q", kw)
		ip.argStack = ip.argStack[:0]
		return
	}

	var args []pdf.Object
	if entry.arity == variableArity {
		args = ip.argStack
		ip.argStack = nil
	} else {
		args, ok = ip.popArgs(entry.arity)
		if !ok {
			return
		}
	}

	if err := entry.handler(ip, ctx, args); err != nil {
		diag.Warn("interp: operator %q failed: %v", kw, err)
	}
}

// --- graphics state ---

func opQ(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.stack.Push(ip.gs, ip.ts)
	return nil
}

func opQPop(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	if snap, ok := ip.stack.Pop(); ok {
		ip.gs = snap.GS
		ip.ts = snap.TS
	}
	return nil
}

func opCM(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	var m matrix.Matrix
	for i, a := range args {
		n, _ := numberOf(a)
		m[i] = n
	}
	ip.gs.CTM = m.Mul(ip.gs.CTM)
	return ip.Device.SetCTM(ip.gs.CTM)
}

func opLineWidth(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.gs.LineWidth, _ = numberOf(args[0])
	return nil
}

func opLineCap(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	n, _ := numberOf(args[0])
	ip.gs.LineCap = int(n)
	return nil
}

func opLineJoin(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	n, _ := numberOf(args[0])
	ip.gs.LineJoin = int(n)
	return nil
}

func opMiterLimit(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.gs.MiterLimit, _ = numberOf(args[0])
	return nil
}

func opDash(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	arr, _ := args[0].(pdf.Array)
	dash := make([]float64, 0, len(arr))
	for _, v := range arr {
		if n, ok := numberOf(v); ok {
			dash = append(dash, n)
		}
	}
	ip.gs.DashPattern = dash
	ip.gs.DashPhase, _ = numberOf(args[1])
	return nil
}

func opRenderingIntent(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	if nm, ok := args[0].(pdf.Name); ok {
		ip.gs.RenderingIntent = nm
	}
	return nil
}

func opFlatness(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.gs.FlatnessTolerance, _ = numberOf(args[0])
	return nil
}

func opExtGState(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	name, _ := args[0].(pdf.Name)
	d, ok := ip.extGStateMap[name]
	if !ok {
		diag.Warn("interp: ExtGState %q not found", name)
		return nil
	}
	if lw, ok := numberOf(d["LW"]); ok {
		ip.gs.LineWidth = lw
	}
	if ca, ok := numberOf(d["ca"]); ok {
		ip.gs.FillAlpha = ca
	}
	if sa, ok := numberOf(d["CA"]); ok {
		ip.gs.StrokeAlpha = sa
	}
	if bm, ok := d["BM"].(pdf.Name); ok {
		ip.gs.BlendMode = bm
	}
	return nil
}

// --- path construction ---

func opMoveTo(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	x, _ := numberOf(args[0])
	y, _ := numberOf(args[1])
	ip.path.MoveTo(x, y)
	return nil
}

func opLineTo(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	x, _ := numberOf(args[0])
	y, _ := numberOf(args[1])
	ip.path.LineTo(x, y)
	return nil
}

func opCurveTo(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	vals := make([]float64, 6)
	for i, a := range args {
		vals[i], _ = numberOf(a)
	}
	ip.path.CurveTo(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	return nil
}

func opCurveToV(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	x2, _ := numberOf(args[0])
	y2, _ := numberOf(args[1])
	x3, _ := numberOf(args[2])
	y3, _ := numberOf(args[3])
	x1, y1, ok := ip.path.CurrentPoint()
	if !ok {
		x1, y1 = 0, 0
	}
	ip.path.CurveTo(x1, y1, x2, y2, x3, y3)
	return nil
}

func opCurveToY(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	x1, _ := numberOf(args[0])
	y1, _ := numberOf(args[1])
	x3, _ := numberOf(args[2])
	y3, _ := numberOf(args[3])
	ip.path.CurveTo(x1, y1, x3, y3, x3, y3)
	return nil
}

func opClosePath(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.path.Close()
	return nil
}

func opRect(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	vals := make([]float64, 4)
	for i, a := range args {
		vals[i], _ = numberOf(a)
	}
	ip.path.Rect(vals[0], vals[1], vals[2], vals[3])
	return nil
}

// --- path painting ---

func (ip *Interpreter) paint(stroke, fill, evenOdd bool) error {
	err := ip.Device.PaintPath(ip.gs, stroke, fill, evenOdd, ip.path)
	ip.path.Clear()
	return err
}

func opStroke(ip *Interpreter, _ context.Context, _ []pdf.Object) error { return ip.paint(true, false, false) }
func opCloseStroke(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.path.Close()
	return ip.paint(true, false, false)
}
func opFillNonZero(ip *Interpreter, _ context.Context, _ []pdf.Object) error { return ip.paint(false, true, false) }
func opFillEvenOdd(ip *Interpreter, _ context.Context, _ []pdf.Object) error { return ip.paint(false, true, true) }
func opFillStrokeNonZero(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	return ip.paint(true, true, false)
}
func opFillStrokeEvenOdd(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	return ip.paint(true, true, true)
}
func opCloseFillStrokeNonZero(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.path.Close()
	return ip.paint(true, true, false)
}
func opCloseFillStrokeEvenOdd(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.path.Close()
	return ip.paint(true, true, true)
}
func opNoPaint(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.path.Clear()
	return nil
}

func opNoop(*Interpreter, context.Context, []pdf.Object) error { return nil }

// --- colour ---

func (ip *Interpreter) resolveColorSpace(name pdf.Name) *color.Space {
	if sp, ok := ip.csMap[name]; ok {
		return sp
	}
	csDict, _ := pdf.GetDict(ip.getter, ip.resourcesDict["ColorSpace"])
	sp, _ := ip.Resources.ColorSpace(ip.getter, name, csDict)
	ip.csMap[name] = sp
	return sp
}

func defaultComponents(sp *color.Space) []float64 {
	n := sp.NumComponents()
	comps := make([]float64, n)
	if sp.Kind == color.KindCMYK {
		comps[n-1] = 1 // black in DeviceCMYK is (0,0,0,1)
	}
	return comps
}

func opStrokeColorSpace(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	name, _ := args[0].(pdf.Name)
	sp := ip.resolveColorSpace(name)
	ip.gs.StrokeColor = color.Value{Space: sp, Comps: defaultComponents(sp)}
	return nil
}

func opFillColorSpace(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	name, _ := args[0].(pdf.Name)
	sp := ip.resolveColorSpace(name)
	ip.gs.FillColor = color.Value{Space: sp, Comps: defaultComponents(sp)}
	return nil
}

func colorArgsToValue(sp *color.Space, args []pdf.Object) color.Value {
	var comps []float64
	var patternName string
	for _, a := range args {
		if nm, ok := a.(pdf.Name); ok {
			patternName = string(nm)
			continue
		}
		if n, ok := numberOf(a); ok {
			comps = append(comps, n)
		}
	}
	return color.Value{Space: sp, Comps: comps, Pattern: patternName}
}

func opStrokeColorComponents(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	sp := ip.gs.StrokeColor.Space
	if sp == nil {
		sp = color.DeviceGray
	}
	ip.gs.StrokeColor = colorArgsToValue(sp, args)
	return nil
}

func opFillColorComponents(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	sp := ip.gs.FillColor.Space
	if sp == nil {
		sp = color.DeviceGray
	}
	ip.gs.FillColor = colorArgsToValue(sp, args)
	return nil
}

func opStrokeGray(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	v, _ := numberOf(args[0])
	ip.gs.StrokeColor = color.Gray(v)
	return nil
}
func opFillGray(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	v, _ := numberOf(args[0])
	ip.gs.FillColor = color.Gray(v)
	return nil
}
func opStrokeRGB(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	r, _ := numberOf(args[0])
	g, _ := numberOf(args[1])
	b, _ := numberOf(args[2])
	ip.gs.StrokeColor = color.RGB(r, g, b)
	return nil
}
func opFillRGB(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	r, _ := numberOf(args[0])
	g, _ := numberOf(args[1])
	b, _ := numberOf(args[2])
	ip.gs.FillColor = color.RGB(r, g, b)
	return nil
}
func opStrokeCMYK(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	c, _ := numberOf(args[0])
	m, _ := numberOf(args[1])
	y, _ := numberOf(args[2])
	k, _ := numberOf(args[3])
	ip.gs.StrokeColor = color.CMYK(c, m, y, k)
	return nil
}
func opFillCMYK(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	c, _ := numberOf(args[0])
	m, _ := numberOf(args[1])
	y, _ := numberOf(args[2])
	k, _ := numberOf(args[3])
	ip.gs.FillColor = color.CMYK(c, m, y, k)
	return nil
}

// --- text object ---

func opBeginText(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.ts.Tm = matrix.Identity
	ip.ts.Tlm = matrix.Identity
	ip.inTextObject = true
	return nil
}

func opEndText(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.inTextObject = false
	return nil
}

// --- text state ---

func opCharSpacing(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.ts.CharSpacing, _ = numberOf(args[0])
	return nil
}
func opWordSpacing(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.ts.WordSpacing, _ = numberOf(args[0])
	return nil
}
func opHorizScaling(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.ts.HorizScaling, _ = numberOf(args[0])
	return nil
}

// opLeading implements TL. Leading is stored exactly as given (not
// negated); T* (and ' and ") advance by (0, -Leading) to reproduce the PDF
// imaging model's downward line advance.
func opLeading(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.ts.Leading, _ = numberOf(args[0])
	return nil
}

func (ip *Interpreter) lookupFont(name pdf.Name) font.Font {
	if f, ok := ip.fontMap[name]; ok {
		return f
	}
	fontsDict, _ := pdf.GetDict(ip.getter, ip.resourcesDict["Font"])
	entry, ok := fontsDict[name]
	if !ok {
		diag.Warn("interp: font resource %q not found", name)
		f := font.DefaultType1()
		ip.fontMap[name] = f
		return f
	}
	ref, _ := entry.(pdf.Reference)
	spec, err := pdf.GetDict(ip.getter, entry)
	if err != nil {
		diag.Warn("interp: font resource %q is not a dictionary: %v", name, err)
		f := font.DefaultType1()
		ip.fontMap[name] = f
		return f
	}
	f, err := ip.Resources.GetFont(ip.getter, ref, spec)
	if err != nil {
		f = font.DefaultType1()
	}
	ip.fontMap[name] = f
	return f
}

func opSetFont(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	name, _ := args[0].(pdf.Name)
	size, _ := numberOf(args[1])
	ip.ts.Font = name
	ip.ts.FontSize = size
	ip.ts.FontObj = ip.lookupFont(name)
	return nil
}

func opRenderMode(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	n, _ := numberOf(args[0])
	ip.ts.RenderMode = int(n)
	return nil
}
func opRise(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	ip.ts.Rise, _ = numberOf(args[0])
	return nil
}

// --- text positioning ---

func opTextMove(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	tx, _ := numberOf(args[0])
	ty, _ := numberOf(args[1])
	ip.ts.Tlm = matrix.Translate(tx, ty).Mul(ip.ts.Tlm)
	ip.ts.Tm = ip.ts.Tlm
	return nil
}

func opTextMoveSetLeading(ip *Interpreter, ctx context.Context, args []pdf.Object) error {
	ty, _ := numberOf(args[1])
	ip.ts.Leading = ty
	return opTextMove(ip, ctx, args)
}

func opSetTextMatrix(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	var m matrix.Matrix
	for i, a := range args {
		m[i], _ = numberOf(a)
	}
	ip.ts.Tm = m
	ip.ts.Tlm = m
	return nil
}

func opNextLine(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	ip.ts.Tlm = matrix.Translate(0, -ip.ts.Leading).Mul(ip.ts.Tlm)
	ip.ts.Tm = ip.ts.Tlm
	return nil
}

// --- text showing ---

func (ip *Interpreter) advanceForString(ctx context.Context, s pdf.String) {
	f := ip.ts.FontObj
	if f == nil {
		f = font.DefaultType1()
	}
	scale := ip.ts.HorizScaling / 100
	t3, isType3 := f.(*font.Type3Font)
	for code, w := range f.Decode(s) {
		if isType3 {
			ip.showType3Glyph(ctx, t3, code)
		}
		ws := 0.0
		if code == 32 {
			ws = ip.ts.WordSpacing
		}
		tx := (w/1000*ip.ts.FontSize + ip.ts.CharSpacing + ws) * scale
		ip.ts.Tm = matrix.Translate(tx, 0).Mul(ip.ts.Tm)
	}
}

// showType3Glyph looks up the glyph procedure for code via the font's
// Encoding and executes it as a miniature content stream.
func (ip *Interpreter) showType3Glyph(ctx context.Context, t3 *font.Type3Font, code int) {
	name, ok := t3.Encoding[code]
	if !ok {
		return
	}
	proc, err := pdf.GetStream(ip.getter, t3.CharProcs[name])
	if err != nil || proc == nil {
		return
	}
	fm := matrix.Matrix(t3.FontMatrix)
	if err := ip.forType3Glyph(ctx, proc, fm, t3.Resources); err != nil {
		diag.Warn("interp: Type3 glyph %q failed: %v", name, err)
	}
}

func (ip *Interpreter) advanceForAdjustment(adj float64) {
	scale := ip.ts.HorizScaling / 100
	tx := -adj / 1000 * ip.ts.FontSize * scale
	ip.ts.Tm = matrix.Translate(tx, 0).Mul(ip.ts.Tm)
}

func (ip *Interpreter) showText(ctx context.Context, items []pdf.Object) error {
	if err := ip.Device.RenderString(ip.ts, items); err != nil {
		return err
	}
	for _, item := range items {
		switch v := item.(type) {
		case pdf.String:
			ip.advanceForString(ctx, v)
		case pdf.Integer:
			ip.advanceForAdjustment(float64(v))
		case pdf.Real:
			ip.advanceForAdjustment(float64(v))
		}
	}
	return nil
}

func opShowText(ip *Interpreter, ctx context.Context, args []pdf.Object) error {
	return ip.showText(ctx, args)
}

func opShowTextArray(ip *Interpreter, ctx context.Context, args []pdf.Object) error {
	arr, _ := args[0].(pdf.Array)
	return ip.showText(ctx, arr)
}

func opNextLineShowText(ip *Interpreter, ctx context.Context, args []pdf.Object) error {
	if err := opNextLine(ip, ctx, nil); err != nil {
		return err
	}
	return ip.showText(ctx, args)
}

func opSetSpacingNextLineShowText(ip *Interpreter, ctx context.Context, args []pdf.Object) error {
	aw, _ := numberOf(args[0])
	ac, _ := numberOf(args[1])
	ip.ts.WordSpacing = aw
	ip.ts.CharSpacing = ac
	if err := opNextLine(ip, ctx, nil); err != nil {
		return err
	}
	return ip.showText(ctx, args[2:])
}

// --- marked content ---

func (ip *Interpreter) resolveProps(obj pdf.Object) pdf.Dict {
	switch v := obj.(type) {
	case pdf.Name:
		return ip.propMap[v]
	case pdf.Dict:
		return v
	default:
		return nil
	}
}

func opMarkedContentPoint(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	tag, _ := args[0].(pdf.Name)
	return ip.Device.DoTag(tag, nil)
}

func opMarkedContentPointProps(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	tag, _ := args[0].(pdf.Name)
	return ip.Device.DoTag(tag, ip.resolveProps(args[1]))
}

func opBeginMarkedContent(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	if ip.markedContentDepth >= maxMarkedContentDepth {
		diag.Warn("interp: marked-content nesting exceeds %d, ignoring BMC", maxMarkedContentDepth)
		return nil
	}
	ip.markedContentDepth++
	tag, _ := args[0].(pdf.Name)
	return ip.Device.BeginTag(tag, nil)
}

func opBeginMarkedContentProps(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	if ip.markedContentDepth >= maxMarkedContentDepth {
		diag.Warn("interp: marked-content nesting exceeds %d, ignoring BDC", maxMarkedContentDepth)
		return nil
	}
	ip.markedContentDepth++
	tag, _ := args[0].(pdf.Name)
	return ip.Device.BeginTag(tag, ip.resolveProps(args[1]))
}

func opEndMarkedContent(ip *Interpreter, _ context.Context, _ []pdf.Object) error {
	if ip.markedContentDepth == 0 {
		diag.Warn("interp: unbalanced EMC, ignoring")
		return nil
	}
	ip.markedContentDepth--
	return ip.Device.EndTag()
}

// --- XObjects ---

func opDo(ip *Interpreter, ctx context.Context, args []pdf.Object) error {
	name, _ := args[0].(pdf.Name)
	stm, ok := ip.xobjMap[name]
	if !ok {
		diag.Warn("interp: xobject %q not found", name)
		return nil
	}
	subtype, _ := stm.Dict["Subtype"].(pdf.Name)
	switch subtype {
	case "Form":
		return ip.forForm(ctx, string(name), stm)
	case "Image":
		if !hasInlineImageDims(stm.Dict) {
			diag.Warn("interp: image xobject %q missing Width/Height, skipping", name)
			return nil
		}
		if err := ip.Device.BeginFigure(string(name), [4]float64{}, ip.gs.CTM); err != nil {
			return err
		}
		if err := ip.Device.RenderImage(string(name), stm); err != nil {
			return err
		}
		return ip.Device.EndFigure(string(name))
	default:
		diag.Warn("interp: xobject %q has unrecognised Subtype %q", name, subtype)
		return nil
	}
}

// forForm recursively renders a Form XObject: a duplicated interpreter
// sharing the resource manager and device, with its own graphics/text
// state machine, under a CTM composed from the form's /Matrix and the
// current CTM, inheriting Resources from the caller when the form has
// none of its own.
func (ip *Interpreter) forForm(ctx context.Context, name string, stm *pdf.Stream) error {
	formMatrix := matrix.Identity
	if arr, ok := stm.Dict["Matrix"].(pdf.Array); ok && len(arr) == 6 {
		for i, v := range arr {
			if n, ok := numberOf(v); ok {
				formMatrix[i] = n
			}
		}
	}
	newCTM := formMatrix.Mul(ip.gs.CTM)

	resources, ok := stm.Dict["Resources"].(pdf.Dict)
	if !ok {
		resources = ip.resourcesDict
	}

	var bbox [4]float64
	if arr, ok := stm.Dict["BBox"].(pdf.Array); ok && len(arr) == 4 {
		for i, v := range arr {
			if n, ok := numberOf(v); ok {
				bbox[i] = n
			}
		}
	}

	if err := ip.Device.BeginFigure(name, bbox, newCTM); err != nil {
		return err
	}

	data, err := stm.Decode()
	if err != nil {
		diag.Warn("interp: failed to decode form xobject %q: %v", name, err)
		return ip.Device.EndFigure(name)
	}

	child := NewInterpreter(ip.getter, ip.Resources, ip.Device, ip.Options)
	renderErr := child.runContent(ctx, resources, []io.Reader{bytes.NewReader(data)}, newCTM)

	if err := ip.Device.EndFigure(name); err != nil && renderErr == nil {
		renderErr = err
	}
	return renderErr
}

// forType3Glyph executes a Type3 glyph's content-stream procedure, under
// fontMatrix composed with the current text rendering matrix, exactly
// like a miniature Form XObject with no BBox clipping. Invoked from the
// text-showing path when TextState.FontObj is a *font.Type3Font.
func (ip *Interpreter) forType3Glyph(ctx context.Context, proc *pdf.Stream, fontMatrix matrix.Matrix, resources pdf.Dict) error {
	trm := matrix.Matrix{
		ip.ts.FontSize * ip.ts.HorizScaling / 100, 0,
		0, ip.ts.FontSize,
		0, ip.ts.Rise,
	}.Mul(ip.ts.Tm)
	glyphCTM := fontMatrix.Mul(trm).Mul(ip.gs.CTM)

	if resources == nil {
		resources = ip.resourcesDict
	}

	data, err := proc.Decode()
	if err != nil {
		diag.Warn("interp: failed to decode Type3 glyph procedure: %v", err)
		return nil
	}

	child := NewInterpreter(ip.getter, ip.Resources, ip.Device, ip.Options)
	return child.runContent(ctx, resources, []io.Reader{bytes.NewReader(data)}, glyphCTM)
}

// --- inline images ---

// opInlineImage handles the synthesized (stream, "EI") pair the content
// parser produces for a BI...ID...EI trio. An inline image with both a
// width and a height entry fires the three image events
// (begin_figure/render_image/end_figure) under a fresh figure name; one
// missing either dimension is tolerated and silently dropped.
func opInlineImage(ip *Interpreter, _ context.Context, args []pdf.Object) error {
	stm, ok := args[0].(*pdf.Stream)
	if !ok {
		diag.Warn("interp: EI operand is %T, not a stream", args[0])
		return nil
	}
	if !hasInlineImageDims(stm.Dict) {
		diag.Warn("interp: inline image missing W/H, skipping")
		return nil
	}

	ip.inlineImageCounter++
	name := fmt.Sprintf("inline-image-%d", ip.inlineImageCounter)

	if err := ip.Device.BeginFigure(name, [4]float64{}, ip.gs.CTM); err != nil {
		return err
	}
	if err := ip.Device.RenderImage(name, stm); err != nil {
		return err
	}
	return ip.Device.EndFigure(name)
}

// hasInlineImageDims reports whether d has a width and a height entry,
// accepting both the content-stream abbreviations (W/H) and the full
// XObject-image key names (Width/Height) some producers emit even inline.
func hasInlineImageDims(d pdf.Dict) bool {
	_, w := d["W"]
	if !w {
		_, w = d["Width"]
	}
	_, h := d["H"]
	if !h {
		_, h = d["Height"]
	}
	return w && h
}
