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

import "github.com/xdg-go/stringprep"

// maxPasswordLen is the maximal length of a password in bytes, after
// normalisation.
const maxPasswordLen = 127

// normalizePassword prepares a password for use with a PDF security
// handler.  The password is normalised using the SASLprep profile of
// stringprep and truncated to 127 bytes.  If SASLprep rejects the password,
// it is used unchanged.
func normalizePassword(passwd string) string {
	prepped, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		prepped = passwd
	}
	if len(prepped) > maxPasswordLen {
		prepped = prepped[:maxPasswordLen]
	}
	return prepped
}
