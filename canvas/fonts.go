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
	"bytes"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// typeface is one of the embedded Go fonts.  The font file is parsed
// twice: seehuhn.de/go/sfnt provides the metrics, and x/image/font/opentype
// rasterises the glyphs.
type typeface struct {
	name string
	ttf  []byte

	once    sync.Once
	err     error
	metrics *sfnt.Font
	lookup  func(rune) glyph.ID
	glyphs  *opentype.Font
}

var (
	goRegular  = &typeface{name: "Go Regular", ttf: goregular.TTF}
	goBold     = &typeface{name: "Go Bold", ttf: gobold.TTF}
	goMono     = &typeface{name: "Go Mono", ttf: gomono.TTF}
	goMonoBold = &typeface{name: "Go Mono Bold", ttf: gomonobold.TTF}
)

func (tf *typeface) load() error {
	tf.once.Do(func() {
		metrics, err := sfnt.Read(bytes.NewReader(tf.ttf))
		if err != nil {
			tf.err = fmt.Errorf("%s: %w", tf.name, err)
			return
		}
		cmap, err := metrics.CMapTable.GetBest()
		if err != nil {
			tf.err = fmt.Errorf("%s: %w", tf.name, err)
			return
		}
		glyphs, err := opentype.Parse(tf.ttf)
		if err != nil {
			tf.err = fmt.Errorf("%s: %w", tf.name, err)
			return
		}
		tf.metrics = metrics
		tf.lookup = cmap.Lookup
		tf.glyphs = glyphs
	})
	return tf.err
}

// ascent returns the distance from the baseline to the top of the em box,
// for a font of the given size.
func (tf *typeface) ascent(size float64) float64 {
	return float64(tf.metrics.Ascent) * tf.metrics.FontMatrix[3] * size
}

// descent returns the (negative) distance from the baseline to the bottom
// of the em box.
func (tf *typeface) descent(size float64) float64 {
	return float64(tf.metrics.Descent) * tf.metrics.FontMatrix[3] * size
}

// width returns the advance width of text at the given font size.
func (tf *typeface) width(text string, size float64) float64 {
	var w float64
	for _, r := range norm.NFC.String(text) {
		gid := tf.lookup(r)
		w += tf.metrics.GlyphWidthPDF(gid)
	}
	return w * size / 1000
}

// face returns a rasterising face for the given pixel size.
func (tf *typeface) face(size float64) (font.Face, error) {
	return opentype.NewFace(tf.glyphs, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// resolveFamily maps a font family name to one of the embedded fonts.
// Generic CSS family names and the abbreviations used in PDF default
// appearance strings are recognised; everything else uses Go Regular.
func resolveFamily(family string) *typeface {
	name := strings.ToLower(strings.TrimSpace(family))
	name = strings.Trim(name, `"'`)

	mono := false
	switch {
	case name == "monospace", name == "cour", name == "cobo", name == "coit", name == "cobi",
		strings.HasPrefix(name, "courier"):
		mono = true
	}

	bold := strings.Contains(name, "bold")
	switch name {
	case "hebo", "hebi", "cobo", "cobi", "tibo", "tibi":
		bold = true
	}

	switch {
	case mono && bold:
		return goMonoBold
	case mono:
		return goMono
	case bold:
		return goBold
	default:
		return goRegular
	}
}

// measure returns the advance width of text in the font f.
// If the font cannot be loaded, the width is estimated.
func measure(f Font, text string) float64 {
	tf := resolveFamily(f.Family)
	if err := tf.load(); err != nil {
		return 0.5 * f.Size * float64(len([]rune(text)))
	}
	return tf.width(text, f.Size)
}
