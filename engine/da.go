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

package engine

import (
	"strconv"
	"strings"
)

// Appearance holds the text attributes set by a default appearance string.
type Appearance struct {
	// FontName is the name of the font resource, without the leading
	// slash.  The empty string means that no font was set.
	FontName string

	// FontSize is the font size.  Zero means that no size was set, or that
	// the size is chosen automatically.
	FontSize float64

	// Color is the fill colour, converted to RGB.  The value is nil if no
	// colour was set.
	Color []float64
}

// ParseDA parses a default appearance string, as found in the /DA entry
// of free text annotations and interactive forms, e.g. "/Helv 12 Tf 0 g".
//
// The operators Tf (font), g (gray), rg (RGB) and k (CMYK) are
// interpreted; all other operators are ignored.  If an operator occurs
// more than once, the last occurrence wins.  Malformed operators are
// skipped.
func ParseDA(da string) Appearance {
	var res Appearance
	s := &daScanner{buf: da}
	for {
		op, ok := s.next()
		if !ok {
			break
		}
		switch op.Name {
		case "Tf":
			size := op.GetNumber()
			name := op.GetName()
			if op.OK() && size >= 0 {
				res.FontName = name
				res.FontSize = size
			}
		case "g":
			gray := op.GetNumber()
			if op.OK() {
				res.Color = toRGB([]float64{gray})
			}
		case "rg":
			b := op.GetNumber()
			g := op.GetNumber()
			r := op.GetNumber()
			if op.OK() {
				res.Color = toRGB([]float64{r, g, b})
			}
		case "k":
			k := op.GetNumber()
			y := op.GetNumber()
			m := op.GetNumber()
			c := op.GetNumber()
			if op.OK() {
				res.Color = toRGB([]float64{c, m, y, k})
			}
		}
	}
	return res
}

// daName is a PDF name operand, without the leading slash.
type daName string

// daOther is an operand of a type which is not used by any of the
// interpreted operators, e.g. a string or an array.
type daOther struct{}

// daOperator is an operator together with its operands.  The operands are
// consumed from the end, so that the arguments of an operator can be read
// in reverse order.
type daOperator struct {
	Name     string
	Args     []any
	HasError bool
}

// OK returns true if all arguments have been consumed without error.
func (op *daOperator) OK() bool {
	return !op.HasError && len(op.Args) == 0
}

func (op *daOperator) pop() any {
	if op.HasError || len(op.Args) == 0 {
		op.HasError = true
		return nil
	}
	n := len(op.Args) - 1
	arg := op.Args[n]
	op.Args = op.Args[:n]
	return arg
}

// GetNumber returns the last remaining argument as a number.
// In case of an error, HasError is set.
func (op *daOperator) GetNumber() float64 {
	if x, ok := op.pop().(float64); ok {
		return x
	}
	op.HasError = true
	return 0
}

// GetName returns the last remaining argument as a name.
// In case of an error, HasError is set.
func (op *daOperator) GetName() string {
	if x, ok := op.pop().(daName); ok {
		return string(x)
	}
	op.HasError = true
	return ""
}

// daScanner splits a content stream fragment into operators.
type daScanner struct {
	buf  string
	pos  int
	args []any
}

func (s *daScanner) next() (*daOperator, bool) {
	for {
		tok, kind := s.token()
		switch kind {
		case tokEOF:
			return nil, false
		case tokNumber:
			x, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				s.args = append(s.args, daOther{})
			} else {
				s.args = append(s.args, x)
			}
		case tokName:
			s.args = append(s.args, daName(tok))
		case tokOther:
			s.args = append(s.args, daOther{})
		case tokOperator:
			op := &daOperator{Name: tok, Args: s.args}
			s.args = nil
			return op, true
		}
	}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokOperator
	tokOther
)

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func (s *daScanner) token() (string, tokenKind) {
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		if isWhite(c) {
			s.pos++
			continue
		}
		if c == '%' {
			for s.pos < len(s.buf) && s.buf[s.pos] != '\n' && s.buf[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		break
	}
	if s.pos >= len(s.buf) {
		return "", tokEOF
	}

	c := s.buf[s.pos]
	switch {
	case c == '/':
		s.pos++
		start := s.pos
		for s.pos < len(s.buf) && !isWhite(s.buf[s.pos]) && !isDelim(s.buf[s.pos]) {
			s.pos++
		}
		return s.buf[start:s.pos], tokName
	case c == '(':
		s.skipString()
		return "", tokOther
	case c == '<' && !strings.HasPrefix(s.buf[s.pos:], "<<"):
		end := strings.IndexByte(s.buf[s.pos:], '>')
		if end < 0 {
			s.pos = len(s.buf)
		} else {
			s.pos += end + 1
		}
		return "", tokOther
	case c == '<' || c == '>' || c == '[' || c == ']' || c == '{' || c == '}':
		// Arrays and dictionaries are never operands of the interpreted
		// operators.  Their delimiters are consumed one by one.
		s.pos++
		return "", tokOther
	case c == ')':
		s.pos++
		return "", tokOther
	}

	start := s.pos
	for s.pos < len(s.buf) && !isWhite(s.buf[s.pos]) && !isDelim(s.buf[s.pos]) {
		s.pos++
	}
	tok := s.buf[start:s.pos]
	if c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
		return tok, tokNumber
	}
	return tok, tokOperator
}

// skipString skips a literal string, including nested parentheses and
// escaped characters.
func (s *daScanner) skipString() {
	depth := 0
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		s.pos++
		switch c {
		case '\\':
			s.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return
			}
		}
	}
}
