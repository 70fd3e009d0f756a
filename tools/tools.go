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

// Package tools manages the editing tools of the viewer.
//
// Exactly one tool is active at a time.  Code which needs to react to tool
// changes registers a listener; listeners are called synchronously, in the
// order in which they were registered, whenever a tool is selected.
package tools

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Mode says what a tool does.
type Mode int

// These are the supported tool modes.
const (
	ModeView Mode = iota
	ModeInk
	ModeHighlight
	ModeFreeText
)

var modeNames = []string{
	ModeView:      "view",
	ModeInk:       "ink",
	ModeHighlight: "highlight",
	ModeFreeText:  "freetext",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts the name of a mode, as returned by [Mode.String],
// back into a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("tools: unknown mode %q", s)
}

// ErrNoTool is returned when selecting a tool index which is out of range.
var ErrNoTool = errors.New("tools: no such tool")

// Tool describes one tool.
type Tool struct {
	// Icon is the name of the icon shown for the tool.
	Icon string

	Mode Mode
}

// ListenerID identifies a registered listener.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn func(Mode)
}

// Tools is an ordered list of tools with one active tool.
// It is safe for concurrent use.
type Tools struct {
	mu        sync.Mutex
	tools     []Tool
	active    int
	listeners []listener
	nextID    ListenerID
}

// New returns an empty tool list.
func New() *Tools {
	return &Tools{}
}

// Add appends a tool and returns its index.  The first tool added is the
// active tool until another tool is selected.
func (t *Tools) Add(icon string, mode Mode) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tools = append(t.tools, Tool{Icon: icon, Mode: mode})
	return len(t.tools) - 1
}

// Select makes the tool with index i active and notifies all listeners.
// Listeners are called after the change is visible, so they may call
// methods of t.
func (t *Tools) Select(i int) error {
	t.mu.Lock()
	if i < 0 || i >= len(t.tools) {
		t.mu.Unlock()
		return ErrNoTool
	}
	t.active = i
	mode := t.tools[i].Mode
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	for _, l := range listeners {
		l.fn(mode)
	}
	return nil
}

// AddListener registers a function which is called with the new mode
// every time a tool is selected.
func (t *Tools) AddListener(fn func(Mode)) ListenerID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, listener{id: id, fn: fn})
	return id
}

// RemoveListener unregisters a listener.  The return value reports
// whether the listener was registered.
func (t *Tools) RemoveListener(id ListenerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := slices.IndexFunc(t.listeners, func(l listener) bool { return l.id == id })
	if idx < 0 {
		return false
	}
	t.listeners = slices.Delete(t.listeners, idx, idx+1)
	return true
}

// Active returns the active tool.  The second return value is false if no
// tools have been added.
func (t *Tools) Active() (Tool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active >= len(t.tools) {
		return Tool{}, false
	}
	return t.tools[t.active], true
}

// ActiveIndex returns the index of the active tool.
func (t *Tools) ActiveIndex() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// List returns a copy of the tool list.
func (t *Tools) List() []Tool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.tools)
}
