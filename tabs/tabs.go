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

// Package tabs keeps track of the documents which are open in the viewer.
//
// Every open document lives in a [Tab].  A tab without content is a
// placeholder for a document which has not been opened yet.  The list of
// tabs has one active tab; once the first tab has been added, the list
// never becomes empty again.
package tabs

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

// NewTabName is the file name shown for tabs without a document.
const NewTabName = "*new"

// ErrNoTab is returned for tab indices which are out of range.
var ErrNoTab = errors.New("tabs: no such tab")

// Tab holds one open document.
type Tab struct {
	// ID identifies the tab for as long as the program runs.
	ID uuid.UUID

	// FileName is the name shown to the user.
	FileName string

	// FilePath is the location the document was read from.  If this is
	// empty, saving the document offers it as a download instead.
	FilePath string

	// Content holds the PDF file.  It is nil if no document has been opened
	// in this tab.
	Content []byte
}

// IsEmpty reports whether no document has been opened in the tab.
func (t *Tab) IsEmpty() bool {
	return t.Content == nil
}

// Tabs is an ordered list of tabs with one active tab.
//
// Tabs is not safe for concurrent use.
type Tabs struct {
	tabs   []*Tab
	active int
}

// New returns an empty list of tabs.
func New() *Tabs {
	return &Tabs{}
}

// Add appends a new empty tab and makes it the active tab.
// If the previously active tab was empty, it is replaced.
func (t *Tabs) Add() *Tab {
	tab := &Tab{ID: uuid.New(), FileName: NewTabName}
	t.tabs = append(t.tabs, tab)
	t.SwitchTo(len(t.tabs) - 1)
	return tab
}

// SwitchTo makes the tab with index i the active tab.
//
// Nothing happens if i is already active.  If the tab which is left is
// empty, it is closed.  If i is not a valid index, the last tab becomes
// active.
func (t *Tabs) SwitchTo(i int) {
	if i == t.active {
		return
	}
	var target *Tab
	if i >= 0 && i < len(t.tabs) {
		target = t.tabs[i]
	}

	if cur := t.Current(); cur != nil && cur.IsEmpty() {
		t.remove(t.active)
	}

	if idx := t.IndexOf(target); target != nil && idx >= 0 {
		t.active = idx
	} else {
		t.active = len(t.tabs) - 1
	}
}

// Remove closes the tab with index i.
//
// If the last remaining tab is closed, a new empty tab is added.  The
// active index is not moved, except that it is clamped to the end of the
// list.
func (t *Tabs) Remove(i int) error {
	if i < 0 || i >= len(t.tabs) {
		return ErrNoTab
	}
	t.remove(i)
	return nil
}

func (t *Tabs) remove(i int) {
	t.tabs = slices.Delete(t.tabs, i, i+1)
	if len(t.tabs) == 0 {
		t.active = 0
		t.Add()
		return
	}
	if t.active >= len(t.tabs) {
		t.active = len(t.tabs) - 1
	}
}

// Current returns the active tab, or nil if there are no tabs.
func (t *Tabs) Current() *Tab {
	if t.active < 0 || t.active >= len(t.tabs) {
		return nil
	}
	return t.tabs[t.active]
}

// CurrentIndex returns the index of the active tab.
func (t *Tabs) CurrentIndex() int {
	return t.active
}

// Get returns the tab with index i.
func (t *Tabs) Get(i int) (*Tab, error) {
	if i < 0 || i >= len(t.tabs) {
		return nil, ErrNoTab
	}
	return t.tabs[i], nil
}

// IsEmpty reports whether the list contains no tabs.
func (t *Tabs) IsEmpty() bool {
	return len(t.tabs) == 0
}

// Len returns the number of tabs.
func (t *Tabs) Len() int {
	return len(t.tabs)
}

// IndexOf returns the index of tab, or -1 if the tab is not in the list.
func (t *Tabs) IndexOf(tab *Tab) int {
	return slices.Index(t.tabs, tab)
}

// List returns the tabs in order.
// The returned slice is a copy; the tabs themselves are shared.
func (t *Tabs) List() []*Tab {
	return slices.Clone(t.tabs)
}
