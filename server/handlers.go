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

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"seehuhn.de/go/pdfview/annotation"
	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/files"
	"seehuhn.de/go/pdfview/render"
	"seehuhn.de/go/pdfview/tabs"
	"seehuhn.de/go/pdfview/tools"
	"seehuhn.de/go/pdfview/viewer"
)

// apiError is the body of all error responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]apiError{
		"error": {Code: code, Message: message},
	})
}

// writeErr maps errors from the viewer to HTTP responses.
func writeErr(w http.ResponseWriter, err error) {
	var malformed *engine.MalformedFileError
	switch {
	case errors.Is(err, tabs.ErrNoTab), errors.Is(err, tools.ErrNoTool),
		errors.Is(err, engine.ErrNoPage):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, viewer.ErrNoDocument):
		writeError(w, http.StatusConflict, "no_document", err.Error())
	case errors.Is(err, viewer.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded", err.Error())
	case errors.Is(err, render.ErrTooLarge):
		writeError(w, http.StatusBadRequest, "too_large", err.Error())
	case errors.Is(err, files.ErrCanceled):
		writeError(w, http.StatusBadRequest, "no_file", err.Error())
	case errors.Is(err, files.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err.Error())
	case errors.Is(err, files.ErrNotPDF):
		writeError(w, http.StatusUnsupportedMediaType, "not_pdf", err.Error())
	case errors.Is(err, engine.ErrPassword):
		writeError(w, http.StatusForbidden, "encrypted", err.Error())
	case errors.As(err, &malformed):
		writeError(w, http.StatusUnprocessableEntity, "malformed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	i, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request",
			"invalid "+name+": "+r.PathValue(name))
		return 0, false
	}
	return i, true
}

type tabJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Title  string `json:"title,omitempty"`
	Empty  bool   `json:"empty"`
	Active bool   `json:"active"`
}

func (s *Server) tabList() []tabJSON {
	res := []tabJSON{}
	for _, t := range s.v.Tabs() {
		res = append(res, tabJSON{
			ID:     t.ID.String(),
			Name:   t.FileName,
			Path:   t.FilePath,
			Title:  t.Title,
			Empty:  t.Empty,
			Active: t.Active,
		})
	}
	return res
}

// uploadOverhead allows for the multipart framing around an upload.
const uploadOverhead = 1 << 20

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUpload+uploadOverhead)
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		writeErr(w, files.ErrCanceled)
		return
	} else if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, files.ErrTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	defer file.Close()

	picker := files.UploadPicker{
		Name:    header.Filename,
		Body:    file,
		MaxSize: s.cfg.MaxUpload,
	}
	if err := s.v.Open(r.Context(), picker); err != nil {
		writeErr(w, err)
		return
	}

	n, _ := s.v.NumPages()
	s.tabsChanged()
	writeJSON(w, http.StatusOK, map[string]any{
		"title": s.v.Title(),
		"pages": n,
		"tabs":  s.tabList(),
	})
}

func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tabList())
}

func (s *Server) handleNewTab(w http.ResponseWriter, r *http.Request) {
	s.v.NewTab()
	s.tabsChanged()
	writeJSON(w, http.StatusCreated, s.tabList())
}

func (s *Server) handleActivateTab(w http.ResponseWriter, r *http.Request) {
	i, ok := pathInt(w, r, "i")
	if !ok {
		return
	}
	if err := s.v.SwitchTab(i); err != nil {
		writeErr(w, err)
		return
	}
	s.tabsChanged()
	writeJSON(w, http.StatusOK, s.tabList())
}

func (s *Server) handleCloseTab(w http.ResponseWriter, r *http.Request) {
	i, ok := pathInt(w, r, "i")
	if !ok {
		return
	}
	if err := s.v.CloseTab(i); err != nil {
		writeErr(w, err)
		return
	}
	s.tabsChanged()
	writeJSON(w, http.StatusOK, s.tabList())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	num, ok := strings.CutSuffix(file, ".png")
	n, err := strconv.Atoi(num)
	if !ok || err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no such page: "+file)
		return
	}

	scale := s.v.Config().Scale
	if q := r.URL.Query().Get("scale"); q != "" {
		scale, err = strconv.ParseFloat(q, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid scale: "+q)
			return
		}
	}

	img, err := s.v.RenderPage(r.Context(), n, scale)
	if err != nil {
		writeErr(w, err)
		return
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

type annotationJSON struct {
	Type string `json:"type"`

	Strokes   [][]float64 `json:"strokes,omitempty"`
	Color     []float64   `json:"color,omitempty"`
	Width     float64     `json:"width,omitempty"`
	Highlight bool        `json:"highlight,omitempty"`
	Opacity   float64     `json:"opacity,omitempty"`

	Text      string      `json:"text,omitempty"`
	Rect      *[4]float64 `json:"rect,omitempty"`
	FontSize  float64     `json:"fontSize,omitempty"`
	FontName  string      `json:"fontName,omitempty"`
	FontColor []float64   `json:"fontColor,omitempty"`
}

func toJSON(rec annotation.Record) annotationJSON {
	a := annotationJSON{Type: string(rec.AnnotationType())}
	switch rec := rec.(type) {
	case *annotation.Ink:
		a.Strokes = rec.Strokes
		a.Color = rec.Color
		a.Width = rec.Width
		a.Highlight = rec.Highlight
		a.Opacity = rec.Opacity
	case *annotation.FreeText:
		a.Text = rec.Text
		a.Rect = &[4]float64{rec.Rect.LLx, rec.Rect.LLy, rec.Rect.URx, rec.Rect.URy}
		a.FontSize = rec.FontSize
		a.FontName = rec.FontName
		a.FontColor = rec.FontColor
	}
	return a
}

func (s *Server) handleAnnotations(w http.ResponseWriter, r *http.Request) {
	n, ok := pathInt(w, r, "n")
	if !ok {
		return
	}
	records, err := s.v.Annotations(n)
	if err != nil {
		writeErr(w, err)
		return
	}
	res := []annotationJSON{}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		res = append(res, toJSON(rec))
	}
	writeJSON(w, http.StatusOK, res)
}

type toolJSON struct {
	Index  int    `json:"index"`
	Icon   string `json:"icon"`
	Mode   string `json:"mode"`
	Active bool   `json:"active"`
}

type toolEvent struct {
	Index int    `json:"index"`
	Mode  string `json:"mode"`
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	tt := s.v.Tools()
	active := tt.ActiveIndex()
	res := []toolJSON{}
	for i, t := range tt.List() {
		res = append(res, toolJSON{
			Index:  i,
			Icon:   t.Icon,
			Mode:   t.Mode.String(),
			Active: i == active,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSelectTool(w http.ResponseWriter, r *http.Request) {
	i, ok := pathInt(w, r, "i")
	if !ok {
		return
	}
	if err := s.v.Tools().Select(i); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDownload saves the active document.  Uploaded documents are sent
// to the client; documents opened from disk are written back in place.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var sent bool
	d := downloadFunc(func(data []byte, name string) error {
		sent = true
		return files.HTTPDownload{W: w}.Download(data, name)
	})
	err := s.v.Save(files.DiskWriter{}, d)
	if err != nil {
		if !sent {
			writeErr(w, err)
		}
		return
	}
	if !sent {
		w.WriteHeader(http.StatusNoContent)
	}
}

type downloadFunc func(data []byte, name string) error

func (f downloadFunc) Download(data []byte, name string) error {
	return f(data, name)
}
