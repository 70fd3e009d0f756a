// seehuhn.de/go/pdfview - a PDF viewer and annotator
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package canvas

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// A Recorder is a [Surface] which records all drawing commands.
// The recorded commands can be inspected, or later be applied to
// another context using the [Recorder.ApplyTo] method.
//
// Text is measured using the same fonts as [Raster], so that layout
// decisions made while recording match those made while painting.
type Recorder struct {
	Ops []Op

	// Err is set if Restore is called without a matching Save.
	Err error

	width, height int
	font          Font
	fontStack     []Font
}

// Op is a single recorded drawing command.
type Op struct {
	Code OpCode
	Args []any
}

func (op Op) String() string {
	if len(op.Args) == 0 {
		return op.Code.String()
	}
	parts := make([]string, len(op.Args))
	for i, arg := range op.Args {
		switch arg := arg.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", arg)
		case image.Image:
			parts[i] = fmt.Sprintf("image%v", arg.Bounds().Size())
		default:
			parts[i] = fmt.Sprint(arg)
		}
	}
	return op.Code.String() + "(" + strings.Join(parts, ", ") + ")"
}

// OpCode identifies a drawing command.
type OpCode int

// These are the recorded drawing commands.
const (
	OpSetSize OpCode = iota
	OpSave
	OpRestore
	OpScale
	OpSetStrokeColor
	OpSetFillColor
	OpSetLineWidth
	OpSetGlobalAlpha
	OpSetFont
	OpSetTextBaseline
	OpSetImageSmoothing
	OpBeginPath
	OpMoveTo
	OpLineTo
	OpQuadraticCurveTo
	OpStroke
	OpFillRect
	OpFillText
	OpDrawImage
)

var opNames = [...]string{
	OpSetSize:           "SetSize",
	OpSave:              "Save",
	OpRestore:           "Restore",
	OpScale:             "Scale",
	OpSetStrokeColor:    "SetStrokeColor",
	OpSetFillColor:      "SetFillColor",
	OpSetLineWidth:      "SetLineWidth",
	OpSetGlobalAlpha:    "SetGlobalAlpha",
	OpSetFont:           "SetFont",
	OpSetTextBaseline:   "SetTextBaseline",
	OpSetImageSmoothing: "SetImageSmoothing",
	OpBeginPath:         "BeginPath",
	OpMoveTo:            "MoveTo",
	OpLineTo:            "LineTo",
	OpQuadraticCurveTo:  "QuadraticCurveTo",
	OpStroke:            "Stroke",
	OpFillRect:          "FillRect",
	OpFillText:          "FillText",
	OpDrawImage:         "DrawImage",
}

func (c OpCode) String() string {
	if c >= 0 && int(c) < len(opNames) {
		return opNames[c]
	}
	return fmt.Sprintf("OpCode(%d)", int(c))
}

// ErrRestoreWithoutSave is stored in [Recorder.Err] and [Raster.Err] if
// Restore is called more often than Save.
var ErrRestoreWithoutSave = errors.New("canvas: Restore without matching Save")

// NewRecorder returns a recorder for a surface of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, font: DefaultFont}
}

func (r *Recorder) record(code OpCode, args ...any) {
	r.Ops = append(r.Ops, Op{Code: code, Args: args})
}

// SetSize implements the [Surface] interface.
func (r *Recorder) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.font = DefaultFont
	r.fontStack = r.fontStack[:0]
	r.record(OpSetSize, width, height)
}

// Size implements the [Surface] interface.
func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

// Context implements the [Surface] interface.
func (r *Recorder) Context() Context {
	return r
}

// Depth returns the number of Save calls which have not yet been matched
// by a Restore.
func (r *Recorder) Depth() int {
	return len(r.fontStack)
}

// Count returns the number of recorded commands with the given code.
func (r *Recorder) Count(code OpCode) int {
	n := 0
	for _, op := range r.Ops {
		if op.Code == code {
			n++
		}
	}
	return n
}

// Filter returns all recorded commands with the given code, in order.
func (r *Recorder) Filter(code OpCode) []Op {
	var res []Op
	for _, op := range r.Ops {
		if op.Code == code {
			res = append(res, op)
		}
	}
	return res
}

// Codes returns the sequence of recorded command codes.
func (r *Recorder) Codes() []OpCode {
	res := make([]OpCode, len(r.Ops))
	for i, op := range r.Ops {
		res[i] = op.Code
	}
	return res
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Err = nil
	r.font = DefaultFont
	r.fontStack = r.fontStack[:0]
}

// ApplyTo applies all recorded commands to the given context.
// Size changes are applied if ctx is also a [Surface].
func (r *Recorder) ApplyTo(ctx Context) {
	for _, op := range r.Ops {
		a := op.Args
		switch op.Code {
		case OpSetSize:
			if s, ok := ctx.(Surface); ok {
				s.SetSize(a[0].(int), a[1].(int))
			}
		case OpSave:
			ctx.Save()
		case OpRestore:
			ctx.Restore()
		case OpScale:
			ctx.Scale(a[0].(float64), a[1].(float64))
		case OpSetStrokeColor:
			ctx.SetStrokeColor(a[0].(Color))
		case OpSetFillColor:
			ctx.SetFillColor(a[0].(Color))
		case OpSetLineWidth:
			ctx.SetLineWidth(a[0].(float64))
		case OpSetGlobalAlpha:
			ctx.SetGlobalAlpha(a[0].(float64))
		case OpSetFont:
			ctx.SetFont(a[0].(Font))
		case OpSetTextBaseline:
			ctx.SetTextBaseline(a[0].(Baseline))
		case OpSetImageSmoothing:
			ctx.SetImageSmoothing(a[0].(bool), a[1].(SmoothingQuality))
		case OpBeginPath:
			ctx.BeginPath()
		case OpMoveTo:
			ctx.MoveTo(a[0].(float64), a[1].(float64))
		case OpLineTo:
			ctx.LineTo(a[0].(float64), a[1].(float64))
		case OpQuadraticCurveTo:
			ctx.QuadraticCurveTo(a[0].(float64), a[1].(float64), a[2].(float64), a[3].(float64))
		case OpStroke:
			ctx.Stroke()
		case OpFillRect:
			ctx.FillRect(a[0].(float64), a[1].(float64), a[2].(float64), a[3].(float64))
		case OpFillText:
			ctx.FillText(a[0].(string), a[1].(float64), a[2].(float64))
		case OpDrawImage:
			ctx.DrawImage(a[0].(image.Image), a[1].(float64), a[2].(float64), a[3].(float64), a[4].(float64))
		}
	}
}

// Save implements the [Context] interface.
func (r *Recorder) Save() {
	r.fontStack = append(r.fontStack, r.font)
	r.record(OpSave)
}

// Restore implements the [Context] interface.
func (r *Recorder) Restore() {
	r.record(OpRestore)
	n := len(r.fontStack)
	if n == 0 {
		if r.Err == nil {
			r.Err = ErrRestoreWithoutSave
		}
		return
	}
	r.font = r.fontStack[n-1]
	r.fontStack = r.fontStack[:n-1]
}

// Scale implements the [Context] interface.
func (r *Recorder) Scale(sx, sy float64) {
	r.record(OpScale, sx, sy)
}

// SetStrokeColor implements the [Context] interface.
func (r *Recorder) SetStrokeColor(c Color) {
	r.record(OpSetStrokeColor, c)
}

// SetFillColor implements the [Context] interface.
func (r *Recorder) SetFillColor(c Color) {
	r.record(OpSetFillColor, c)
}

// SetLineWidth implements the [Context] interface.
func (r *Recorder) SetLineWidth(width float64) {
	r.record(OpSetLineWidth, width)
}

// SetGlobalAlpha implements the [Context] interface.
func (r *Recorder) SetGlobalAlpha(alpha float64) {
	r.record(OpSetGlobalAlpha, alpha)
}

// SetFont implements the [Context] interface.
func (r *Recorder) SetFont(f Font) {
	r.font = f
	r.record(OpSetFont, f)
}

// SetTextBaseline implements the [Context] interface.
func (r *Recorder) SetTextBaseline(b Baseline) {
	r.record(OpSetTextBaseline, b)
}

// SetImageSmoothing implements the [Context] interface.
func (r *Recorder) SetImageSmoothing(enabled bool, quality SmoothingQuality) {
	r.record(OpSetImageSmoothing, enabled, quality)
}

// BeginPath implements the [Context] interface.
func (r *Recorder) BeginPath() {
	r.record(OpBeginPath)
}

// MoveTo implements the [Context] interface.
func (r *Recorder) MoveTo(x, y float64) {
	r.record(OpMoveTo, x, y)
}

// LineTo implements the [Context] interface.
func (r *Recorder) LineTo(x, y float64) {
	r.record(OpLineTo, x, y)
}

// QuadraticCurveTo implements the [Context] interface.
func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.record(OpQuadraticCurveTo, cpx, cpy, x, y)
}

// Stroke implements the [Context] interface.
func (r *Recorder) Stroke() {
	r.record(OpStroke)
}

// FillRect implements the [Context] interface.
func (r *Recorder) FillRect(x, y, width, height float64) {
	r.record(OpFillRect, x, y, width, height)
}

// FillText implements the [Context] interface.
func (r *Recorder) FillText(text string, x, y float64) {
	r.record(OpFillText, text, x, y)
}

// MeasureText implements the [Context] interface.
// Measuring text is not recorded.
func (r *Recorder) MeasureText(text string) float64 {
	return measure(r.font, text)
}

// DrawImage implements the [Context] interface.
func (r *Recorder) DrawImage(img image.Image, x, y, width, height float64) {
	r.record(OpDrawImage, img, x, y, width, height)
}
