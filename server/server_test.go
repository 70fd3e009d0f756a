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
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"seehuhn.de/go/pdfview/internal/testpdf"
	"seehuhn.de/go/pdfview/viewer"
)

var testDoc = &testpdf.Doc{
	MediaBox: "[0 0 200 100]",
	Title:    "Minutes",
	Pages: []testpdf.Page{
		{Annots: []string{
			"/Subtype /Ink /InkList [[10 10 50 50 90 10]] /C [0 0 1]",
			"/Subtype /FreeText /Rect [20 20 180 80] /Contents (hello) /DA (/Helv 14 Tf 1 0 0 rg)",
			"/Subtype /Link /Rect [0 0 10 10]",
		}},
		{},
	},
}

func newTestServer(t *testing.T) (*Server, *Hub, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	hub := NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	v := viewer.New(nil, viewer.WithLogger(logger), viewer.WithNotifier(hub))
	s := New(v, hub)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, hub, ts
}

func upload(t *testing.T, ts *httptest.Server, name string, data []byte) *http.Response {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()

	res, err := http.Post(ts.URL+"/open", mw.FormDataContentType(), body)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func do(t *testing.T, method, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestTabsEndpoints(t *testing.T) {
	_, _, ts := newTestServer(t)

	tt := decode[[]tabJSON](t, do(t, "GET", ts.URL+"/tabs"))
	if len(tt) != 1 || !tt[0].Empty || !tt[0].Active {
		t.Fatalf("initial tabs %+v", tt)
	}

	res := upload(t, ts, "minutes.pdf", testDoc.Bytes())
	if res.StatusCode != http.StatusOK {
		t.Fatalf("upload: %s", res.Status)
	}
	res.Body.Close()

	res = do(t, "POST", ts.URL+"/tabs")
	if res.StatusCode != http.StatusCreated {
		t.Errorf("new tab: %s", res.Status)
	}
	tt = decode[[]tabJSON](t, res)
	if len(tt) != 2 || !tt[1].Active || tt[0].Name != "minutes.pdf" {
		t.Errorf("tabs after new %+v", tt)
	}

	res = do(t, "POST", ts.URL+"/tabs/0/activate")
	tt = decode[[]tabJSON](t, res)
	if len(tt) != 1 || !tt[0].Active {
		t.Errorf("empty tab not closed on switch: %+v", tt)
	}

	for _, c := range []struct {
		method, path string
		status       int
	}{
		{"POST", "/tabs/7/activate", http.StatusNotFound},
		{"POST", "/tabs/x/activate", http.StatusBadRequest},
		{"DELETE", "/tabs/3", http.StatusNotFound},
		{"DELETE", "/tabs/0", http.StatusOK},
	} {
		res := do(t, c.method, ts.URL+c.path)
		res.Body.Close()
		if res.StatusCode != c.status {
			t.Errorf("%s %s: %s, want %d", c.method, c.path, res.Status, c.status)
		}
	}
}

func TestPages(t *testing.T) {
	_, _, ts := newTestServer(t)

	res := do(t, "GET", ts.URL+"/pages/1.png")
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Errorf("page without document: %s", res.Status)
	}

	info := decode[map[string]any](t, upload(t, ts, "minutes.pdf", testDoc.Bytes()))
	if info["pages"] != float64(2) || info["title"] != "Minutes" {
		t.Errorf("open response %v", info)
	}

	res = do(t, "GET", ts.URL+"/pages/1.png?scale=2")
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	img, err := png.Decode(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("image size %v", b)
	}

	for path, status := range map[string]int{
		"/pages/3.png":           http.StatusNotFound,
		"/pages/1.jpg":           http.StatusNotFound,
		"/pages/1.png?scale=x":   http.StatusBadRequest,
		"/pages/1.png?scale=1e6": http.StatusBadRequest,
	} {
		res := do(t, "GET", ts.URL+path)
		res.Body.Close()
		if res.StatusCode != status {
			t.Errorf("%s: %s, want %d", path, res.Status, status)
		}
	}
}

func TestAnnotationsEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)
	upload(t, ts, "minutes.pdf", testDoc.Bytes()).Body.Close()

	got := decode[[]annotationJSON](t, do(t, "GET", ts.URL+"/annotations/1"))
	want := []annotationJSON{
		{Type: "Ink", Strokes: [][]float64{{10, 10, 50, 50, 90, 10}}, Color: []float64{0, 0, 1}},
		{Type: "FreeText", Text: "hello", Rect: &[4]float64{20, 20, 180, 80},
			FontSize: 14, FontName: "Helv", FontColor: []float64{1, 0, 0}},
		{Type: "Link"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("annotations (-want +got):\n%s", d)
	}
}

func TestOpenRejected(t *testing.T) {
	_, _, ts := newTestServer(t)

	res := upload(t, ts, "notes.txt", []byte("just some text"))
	e := decode[map[string]apiError](t, res)
	if res.StatusCode != http.StatusUnsupportedMediaType || e["error"].Code != "not_pdf" {
		t.Errorf("%s %+v", res.Status, e)
	}

	res = upload(t, ts, "broken.pdf", []byte("%PDF-1.7\nnot really"))
	res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("malformed file: %s", res.Status)
	}

	res, err := http.Post(ts.URL+"/open", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing form: %s", res.Status)
	}
}

func TestDownload(t *testing.T) {
	_, _, ts := newTestServer(t)

	res := do(t, "GET", ts.URL+"/download")
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Errorf("download without document: %s", res.Status)
	}

	data := testDoc.Bytes()
	upload(t, ts, "minutes.pdf", data).Body.Close()
	res = do(t, "GET", ts.URL+"/download")
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if !bytes.Equal(body, data) {
		t.Errorf("downloaded %d bytes, want %d", len(body), len(data))
	}
	if cd := res.Header.Get("Content-Disposition"); !strings.Contains(cd, "minutes.pdf") {
		t.Errorf("Content-Disposition %q", cd)
	}
}

func TestTools(t *testing.T) {
	_, _, ts := newTestServer(t)

	res := do(t, "POST", ts.URL+"/tools/1")
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("select tool: %s", res.Status)
	}
	res = do(t, "POST", ts.URL+"/tools/9")
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("select missing tool: %s", res.Status)
	}

	got := decode[[]toolJSON](t, do(t, "GET", ts.URL+"/tools"))
	want := []toolJSON{
		{Index: 0, Icon: "hand", Mode: "view"},
		{Index: 1, Icon: "pen", Mode: "ink", Active: true},
		{Index: 2, Icon: "highlighter", Mode: "highlight"},
		{Index: 3, Icon: "text", Mode: "freetext"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("tools (-want +got):\n%s", d)
	}
}

func dial(t *testing.T, ts *httptest.Server, hub *Hub) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

// next reads messages until one of the given type arrives.
func next(t *testing.T, conn *websocket.Conn, typ string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s event: %v", typ, err)
		}
		if msg.Type == typ {
			return msg.Data
		}
	}
}

func TestWebsocketEvents(t *testing.T) {
	_, hub, ts := newTestServer(t)
	conn := dial(t, ts, hub)

	do(t, "POST", ts.URL+"/tools/3").Body.Close()
	var tool toolEvent
	json.Unmarshal(next(t, conn, EventTool), &tool)
	if tool != (toolEvent{Index: 3, Mode: "freetext"}) {
		t.Errorf("tool event %+v", tool)
	}

	upload(t, ts, "minutes.pdf", testDoc.Bytes()).Body.Close()
	var tt []tabJSON
	json.Unmarshal(next(t, conn, EventTabs), &tt)
	if len(tt) != 1 || tt[0].Name != "minutes.pdf" {
		t.Errorf("tabs event %+v", tt)
	}

	upload(t, ts, "notes.txt", []byte("plain text")).Body.Close()
	var alert map[string]string
	json.Unmarshal(next(t, conn, EventAlert), &alert)
	if !strings.Contains(alert["message"], "not a PDF") {
		t.Errorf("alert %q", alert["message"])
	}

	if err := conn.WriteJSON(Message{Type: EventPing}); err != nil {
		t.Fatal(err)
	}
	next(t, conn, EventPong)
}

func TestShutdownRemovesListener(t *testing.T) {
	s, hub, ts := newTestServer(t)
	conn := dial(t, ts, hub)

	if err := s.Shutdown(t.Context()); err != nil {
		t.Fatal(err)
	}
	s.v.Tools().Select(2)
	s.hub.Broadcast(EventTabs, nil)

	// The tabs event must arrive without a tool event before it.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != EventTabs {
		t.Errorf("got %s event after shutdown", msg.Type)
	}
}

func TestSlowClient(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()
	defer hub.Stop()

	// The send buffer is never drained, so the second event disconnects
	// the client.
	c := &client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- c
	hub.Broadcast(EventTabs, nil)
	hub.Broadcast(EventTabs, nil)

	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client was not disconnected")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The read side of the connection may still answer pings.
	c.queue(newMessage(EventPong, nil))
	c.closeSend()

	n := 0
	for range c.send {
		n++
	}
	if n != 1 {
		t.Errorf("%d messages queued, want 1", n)
	}
}

func TestStopClosesClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	go hub.Run()

	c := &client{hub: hub, send: make(chan []byte, sendBufferSize)}
	hub.register <- c
	hub.Stop()

	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("unexpected message")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("send channel not closed after Stop")
	}
	c.queue(newMessage(EventPong, nil))
}
