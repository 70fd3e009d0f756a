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

// Package files reads PDF files chosen by the user and writes them back.
//
// A document which was read from the file system is saved to the same
// path.  A document without a path, for example one which was uploaded to
// the server, is offered as a download instead.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var (
	// ErrCanceled is returned by a [Picker] if no file was chosen.
	ErrCanceled = errors.New("files: no file chosen")

	// ErrNotPDF is returned by a [Picker] if the chosen file is not a PDF
	// file.
	ErrNotPDF = errors.New("files: not a PDF file")

	// ErrTooLarge is returned by [UploadPicker] if the upload exceeds the
	// size limit.
	ErrTooLarge = errors.New("files: file too large")
)

// Picked is a file chosen by the user.
type Picked struct {
	// Name is the file name shown to the user.
	Name string

	// Path is the location of the file in the file system.  This is empty
	// if the file has no path, e.g. for uploaded files.
	Path string

	Data []byte
}

// Picker lets the user choose a file.
type Picker interface {
	Pick(ctx context.Context) (*Picked, error)
}

func checkPDF(data []byte) error {
	if http.DetectContentType(data) != "application/pdf" {
		return ErrNotPDF
	}
	return nil
}

// PathPicker picks the file at a fixed path.
type PathPicker struct {
	Path string
}

// Pick reads the file.  It returns [ErrCanceled] if the path is empty and
// [ErrNotPDF] if the file does not start with a PDF header.
func (p PathPicker) Pick(ctx context.Context) (*Picked, error) {
	if p.Path == "" {
		return nil, ErrCanceled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(p.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	if err := checkPDF(data); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}
	return &Picked{Name: filepath.Base(abs), Path: abs, Data: data}, nil
}

// UploadPicker picks an uploaded file.  Uploaded files have no path.
type UploadPicker struct {
	// Name is the file name given by the client.
	Name string

	// Body is the content of the file.  If Body is nil, Pick returns
	// [ErrCanceled].
	Body io.Reader

	// MaxSize, if positive, limits the size of the file in bytes.
	MaxSize int64
}

// Pick reads the uploaded file.
func (u UploadPicker) Pick(ctx context.Context) (*Picked, error) {
	if u.Body == nil {
		return nil, ErrCanceled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := u.Body
	if u.MaxSize > 0 {
		r = io.LimitReader(r, u.MaxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if u.MaxSize > 0 && int64(len(data)) > u.MaxSize {
		return nil, ErrTooLarge
	}
	if err := checkPDF(data); err != nil {
		return nil, err
	}

	name := filepath.Base(filepath.Clean("/" + u.Name))
	if name == "/" || name == "." {
		name = "document.pdf"
	}
	return &Picked{Name: name, Data: data}, nil
}
