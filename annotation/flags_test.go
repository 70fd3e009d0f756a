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

package annotation

import "testing"

func TestFlagsOnScreen(t *testing.T) {
	for _, c := range []struct {
		f    Flags
		want bool
	}{
		{0, true},
		{FlagPrint, true},
		{FlagInvisible, true},
		{FlagHidden, false},
		{FlagNoView | FlagPrint, false},
	} {
		if got := c.f.OnScreen(); got != c.want {
			t.Errorf("Flags(%d).OnScreen() = %t", c.f, got)
		}
	}
}
