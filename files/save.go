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

package files

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Writer writes files to the file system.
type Writer interface {
	WriteFile(path string, data []byte) error
}

// Downloader offers data to the user as a download.
type Downloader interface {
	Download(data []byte, name string) error
}

// Save persists a document.  If path is set, the data is written to path
// using w.  Otherwise the data is offered as a download with the
// suggested file name.
func Save(name, path string, data []byte, w Writer, d Downloader) error {
	if path != "" {
		return w.WriteFile(path, data)
	}
	return d.Download(data, name)
}

// DiskWriter writes files atomically: the data is first written to a
// temporary file in the same directory, which is then renamed.
type DiskWriter struct {
	// Perm is the permission of newly written files.  Zero means 0644.
	Perm os.FileMode
}

// WriteFile implements the [Writer] interface.
func (dw DiskWriter) WriteFile(path string, data []byte) (err error) {
	perm := dw.Perm
	if perm == 0 {
		perm = 0o644
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// HTTPDownload sends files as the response to an HTTP request.
type HTTPDownload struct {
	W http.ResponseWriter
}

// Download implements the [Downloader] interface.
func (h HTTPDownload) Download(data []byte, name string) error {
	header := h.W.Header()
	header.Set("Content-Type", "application/pdf")
	header.Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	header.Set("Content-Length", strconv.Itoa(len(data)))
	h.W.WriteHeader(http.StatusOK)
	_, err := h.W.Write(data)
	return err
}
