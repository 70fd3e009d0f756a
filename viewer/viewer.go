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

// Package viewer holds the state of a running PDF viewer.
//
// A [Viewer] owns the list of open documents and the list of drawing
// tools.  Front ends such as the interactive shell and the HTTP server
// drive the viewer through its methods; all methods are safe for
// concurrent use.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"seehuhn.de/go/pdfview/annotation"
	"seehuhn.de/go/pdfview/canvas"
	"seehuhn.de/go/pdfview/config"
	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/files"
	"seehuhn.de/go/pdfview/render"
	"seehuhn.de/go/pdfview/tabs"
	"seehuhn.de/go/pdfview/tools"
	"seehuhn.de/go/pdfview/viewport"
)

var (
	// ErrSuperseded is returned by [Viewer.RenderPage] if another render,
	// or a change of the open documents, was started before the render
	// finished.  The result of such a render is discarded.
	ErrSuperseded = errors.New("viewer: render superseded")

	// ErrNoDocument is returned if the active tab holds no document.
	ErrNoDocument = errors.New("viewer: no document open")
)

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(msg string)
}

// NotifierFunc adapts a function to the [Notifier] interface.
type NotifierFunc func(msg string)

// Alert calls f(msg).
func (f NotifierFunc) Alert(msg string) {
	f(msg)
}

// Option configures a [Viewer].
type Option func(*Viewer)

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) {
		v.logger = l
	}
}

// WithNotifier sets the destination for user-visible alerts.
// By default, alerts are written to the log.
func WithNotifier(n Notifier) Option {
	return func(v *Viewer) {
		v.notify = n
	}
}

// WithPassword sets the function used to ask for the passwords of
// encrypted documents.  See [engine.Options].
func WithPassword(fn func(try int) string) Option {
	return func(v *Viewer) {
		v.password = fn
	}
}

// The default tools, in the order shown in the tool bar.
var defaultTools = []tools.Tool{
	{Icon: "hand", Mode: tools.ModeView},
	{Icon: "pen", Mode: tools.ModeInk},
	{Icon: "highlighter", Mode: tools.ModeHighlight},
	{Icon: "text", Mode: tools.ModeFreeText},
}

// Viewer is the state of one viewer process.
type Viewer struct {
	cfg      *config.Config
	logger   *log.Logger
	notify   Notifier
	password func(try int) string

	tools *tools.Tools

	mu   sync.Mutex
	tabs *tabs.Tabs
	docs map[uuid.UUID]*engine.Document
	gen  uint64

	// paintHook, if set, is called after a page has been painted and
	// before the result is committed.
	paintHook func()
}

// New creates a viewer with the default tools and one empty tab.
// If cfg is nil, [config.Default] is used.
func New(cfg *config.Config, opts ...Option) *Viewer {
	if cfg == nil {
		cfg = config.Default()
	}
	v := &Viewer{
		cfg:   cfg,
		tools: tools.New(),
		tabs:  tabs.New(),
		docs:  make(map[uuid.UUID]*engine.Document),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = log.New(os.Stderr, cfg.LogPrefix, log.LstdFlags)
	}
	if v.notify == nil {
		v.notify = NotifierFunc(func(msg string) {
			v.logger.Print(msg)
		})
	}

	for _, t := range defaultTools {
		v.tools.Add(t.Icon, t.Mode)
	}
	v.tabs.Add()
	return v
}

// Config returns the configuration of the viewer.
func (v *Viewer) Config() *config.Config {
	return v.cfg
}

// Logger returns the logger used for diagnostics.
func (v *Viewer) Logger() *log.Logger {
	return v.logger
}

// Tools returns the tool list.
func (v *Viewer) Tools() *tools.Tools {
	return v.tools
}

// Open lets the user choose a file and shows it in the active tab.
//
// If the file cannot be read or is not a valid PDF document, the user is
// alerted and the tab is left unchanged.  If the user cancels the
// choice, [files.ErrCanceled] is returned without an alert.
func (v *Viewer) Open(ctx context.Context, picker files.Picker) error {
	picked, err := picker.Pick(ctx)
	if errors.Is(err, files.ErrCanceled) {
		return err
	} else if err != nil {
		v.alert("Could not open file: %v", err)
		return err
	}

	doc, err := engine.Load(ctx, picked.Data, &engine.Options{ReadPassword: v.password})
	if err != nil {
		v.alert("Could not open %s: %v", picked.Name, err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	tab := v.tabs.Current()
	delete(v.docs, tab.ID)
	tab.FileName = picked.Name
	tab.FilePath = picked.Path
	tab.Content = picked.Data
	v.docs[tab.ID] = doc
	v.gen++

	v.logger.Printf("opened %s (%d pages)", picked.Name, doc.NumPages())
	return nil
}

// Save writes the document in the active tab.  Documents which were read
// from a file are written back using w, all others are offered as a
// download through d.  On failure the user is alerted; the tab is never
// modified.
func (v *Viewer) Save(w files.Writer, d files.Downloader) error {
	v.mu.Lock()
	tab := *v.tabs.Current()
	v.mu.Unlock()

	if tab.IsEmpty() {
		v.alert("Could not save: %v", ErrNoDocument)
		return ErrNoDocument
	}
	err := files.Save(tab.FileName, tab.FilePath, tab.Content, w, d)
	if err != nil {
		v.alert("Could not save %s: %v", tab.FileName, err)
		return err
	}
	return nil
}

func (v *Viewer) alert(format string, args ...any) {
	v.notify.Alert(fmt.Sprintf(format, args...))
}

// TabInfo describes one tab.
type TabInfo struct {
	ID       uuid.UUID
	FileName string
	FilePath string

	// Title is the document title, if the document has been loaded and
	// sets one.
	Title string

	Empty  bool
	Active bool
}

// Tabs returns a description of all tabs, in order.
func (v *Viewer) Tabs() []TabInfo {
	v.mu.Lock()
	defer v.mu.Unlock()

	cur := v.tabs.Current()
	var res []TabInfo
	for _, tab := range v.tabs.List() {
		info := TabInfo{
			ID:       tab.ID,
			FileName: tab.FileName,
			FilePath: tab.FilePath,
			Empty:    tab.IsEmpty(),
			Active:   tab == cur,
		}
		if doc, ok := v.docs[tab.ID]; ok {
			info.Title = doc.Title()
		}
		res = append(res, info)
	}
	return res
}

// ActiveTab returns the index of the active tab.
func (v *Viewer) ActiveTab() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tabs.CurrentIndex()
}

// NewTab adds an empty tab, makes it active and returns its index.
func (v *Viewer) NewTab() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.tabs.Add()
	v.tabsChanged()
	return v.tabs.CurrentIndex()
}

// SwitchTab makes tab i the active tab.
func (v *Viewer) SwitchTab(i int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.tabs.Get(i); err != nil {
		return err
	}
	v.tabs.SwitchTo(i)
	v.tabsChanged()
	return nil
}

// CloseTab closes tab i.  Closing the last tab leaves a single empty tab.
func (v *Viewer) CloseTab(i int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.tabs.Remove(i); err != nil {
		return err
	}
	v.tabsChanged()
	return nil
}

// tabsChanged drops cached documents of closed tabs and invalidates
// running renders.  The caller must hold v.mu.
func (v *Viewer) tabsChanged() {
	open := make(map[uuid.UUID]bool)
	for _, tab := range v.tabs.List() {
		open[tab.ID] = true
	}
	for id := range v.docs {
		if !open[id] {
			delete(v.docs, id)
		}
	}
	v.gen++
}

// document returns the document in the active tab, loading it if needed.
// The caller must hold v.mu.
func (v *Viewer) document() (*engine.Document, error) {
	tab := v.tabs.Current()
	if tab.IsEmpty() {
		return nil, ErrNoDocument
	}
	if doc, ok := v.docs[tab.ID]; ok {
		return doc, nil
	}
	doc, err := engine.Load(context.Background(), tab.Content, &engine.Options{ReadPassword: v.password})
	if err != nil {
		return nil, err
	}
	v.docs[tab.ID] = doc
	return doc, nil
}

// NumPages returns the number of pages of the document in the active tab.
func (v *Viewer) NumPages() (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	doc, err := v.document()
	if err != nil {
		return 0, err
	}
	return doc.NumPages(), nil
}

// Title returns the title of the document in the active tab.
func (v *Viewer) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	doc, err := v.document()
	if err != nil {
		return ""
	}
	return doc.Title()
}

// Annotations returns the annotations of page n of the active document.
// Pages are numbered starting from 1.
func (v *Viewer) Annotations(n int) ([]annotation.Record, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	doc, err := v.document()
	if err != nil {
		return nil, err
	}
	page, err := doc.Page(n)
	if err != nil {
		return nil, err
	}
	return page.Annotations()
}

// pageSnapshot holds everything needed to paint a page, so that painting
// does not need access to the document.
type pageSnapshot struct {
	page    *engine.Page
	vp      *viewport.Viewport
	records []annotation.Record
	err     error
}

func (s *pageSnapshot) Viewport(float64) (*viewport.Viewport, error) {
	return s.vp, nil
}

func (s *pageSnapshot) Annotations() ([]annotation.Record, error) {
	return s.records, s.err
}

func (s *pageSnapshot) PaintBase(ctx canvas.Context, vp *viewport.Viewport) error {
	return s.page.PaintBase(ctx, vp)
}

// readPage reads page n of the active document at the given scale.
// The caller must hold v.mu.
func (v *Viewer) readPage(n int, scale float64) (*pageSnapshot, error) {
	doc, err := v.document()
	if err != nil {
		return nil, err
	}
	page, err := doc.Page(n)
	if err != nil {
		return nil, err
	}
	vp, err := page.Viewport(scale)
	if err != nil {
		return nil, err
	}
	records, err := page.Annotations()
	return &pageSnapshot{page: page, vp: vp, records: records, err: err}, nil
}

// snapshot reads page n and starts a new render generation.
func (v *Viewer) snapshot(n int, scale float64) (*pageSnapshot, uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.gen++
	snap, err := v.readPage(n, scale)
	return snap, v.gen, err
}

func (v *Viewer) paint(s canvas.Surface, snap *pageSnapshot) error {
	_, err := render.Paint(s, snap, &render.Options{
		Scale:  snap.vp.Scale,
		DPR:    v.cfg.DevicePixelRatio,
		Logger: v.logger,
	})
	return err
}

// RenderPage paints page n of the active document, together with its
// annotations, at the given scale.
//
// Renders are not interrupted.  Instead, if another render was started
// or the open documents changed while this render was running, the
// result is discarded and [ErrSuperseded] is returned.
func (v *Viewer) RenderPage(ctx context.Context, n int, scale float64) (*image.RGBA, error) {
	snap, gen, err := v.snapshot(n, scale)
	if err != nil {
		return nil, err
	}

	r := canvas.NewRaster(0, 0)
	if err := v.paint(r, snap); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if v.paintHook != nil {
		v.paintHook()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.Lock()
	current := v.gen == gen
	v.mu.Unlock()
	if !current {
		return nil, ErrSuperseded
	}
	return r.Image, nil
}

// Trace records the drawing commands used to paint page n of the active
// document.  This does not affect running renders.
func (v *Viewer) Trace(n int, scale float64) (*canvas.Recorder, error) {
	v.mu.Lock()
	snap, err := v.readPage(n, scale)
	v.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rec := canvas.NewRecorder(0, 0)
	if err := v.paint(rec, snap); err != nil {
		return rec, err
	}
	return rec, rec.Err
}
