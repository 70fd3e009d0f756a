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
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNoPage is returned by [Document.Page] for page numbers outside
	// the document.
	ErrNoPage = errors.New("engine: no such page")

	// ErrPassword is returned by [Load] if a document is encrypted and no
	// valid password was supplied.
	ErrPassword = errors.New("engine: document is encrypted and no valid password was given")
)

// MalformedFileError indicates that a PDF file could not be parsed.
type MalformedFileError struct {
	Pos int64
	Err error
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
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// catchMalformed turns a panic of the PDF parser into a
// [*MalformedFileError], stored in *errp.  It must be called via defer.
func catchMalformed(errp *error) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			*errp = &MalformedFileError{Err: err}
		} else {
			*errp = &MalformedFileError{Err: fmt.Errorf("%v", r)}
		}
	}
}
