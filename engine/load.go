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
	"bytes"
	"context"
	"errors"

	"github.com/ledongthuc/pdf"
)

// Options can be used to control how a document is loaded.
type Options struct {
	// ReadPassword, if set, is called to obtain passwords for encrypted
	// documents.  The argument counts the attempts, starting at 0.  If the
	// function returns the empty string, loading stops and [Load] returns
	// [ErrPassword].
	ReadPassword func(try int) string
}

// Document is a PDF document which has been loaded into memory.
//
// A Document must not be used concurrently from different goroutines.
type Document struct {
	r        *pdf.Reader
	numPages int
}

// Load parses a PDF document.
//
// The context is checked before and after parsing; parsing itself is not
// interrupted.  If the data is not a valid PDF file, the returned error is
// a [*MalformedFileError].  The document keeps a reference to data, which
// must not be modified afterwards.
func Load(ctx context.Context, data []byte, opt *Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, numPages, err := open(data, opt)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Document{r: r, numPages: numPages}, nil
}

func open(data []byte, opt *Options) (r *pdf.Reader, numPages int, err error) {
	defer catchMalformed(&err)

	src := bytes.NewReader(data)
	size := int64(len(data))
	if opt != nil && opt.ReadPassword != nil {
		try := 0
		r, err = pdf.NewReaderEncrypted(src, size, func() string {
			passwd := opt.ReadPassword(try)
			try++
			if passwd == "" {
				return ""
			}
			return normalizePassword(passwd)
		})
	} else {
		r, err = pdf.NewReader(src, size)
	}
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return nil, 0, ErrPassword
	} else if err != nil {
		return nil, 0, &MalformedFileError{Err: err}
	}

	numPages = r.NumPage()
	if numPages < 0 {
		numPages = 0
	}
	return r, numPages, nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.numPages
}

// Page returns the page with the given number.  Pages are numbered
// starting from 1.
func (d *Document) Page(n int) (p *Page, err error) {
	if n < 1 || n > d.numPages {
		return nil, ErrNoPage
	}
	defer catchMalformed(&err)

	v := d.r.Page(n).V
	if v.Kind() != pdf.Dict {
		return nil, &MalformedFileError{Err: errors.New("page dictionary not found")}
	}
	return &Page{doc: d, v: v, Number: n}, nil
}

// Title returns the document title from the document information
// dictionary, or the empty string if no title is set.
func (d *Document) Title() (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	return d.r.Trailer().Key("Info").Key("Title").Text()
}

// defaultAppearance returns the document-wide default appearance string
// of the interactive form, if any.
func (d *Document) defaultAppearance() string {
	da := d.r.Trailer().Key("Root").Key("AcroForm").Key("DA")
	if da.Kind() != pdf.String {
		return ""
	}
	return da.RawString()
}
