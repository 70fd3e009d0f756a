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

// Package server exposes a viewer over HTTP.
//
// Pages are served as PNG images with their annotations painted in.
// Changes of the active tool and of the list of tabs, as well as alerts,
// are pushed to browsers over a websocket connection.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"seehuhn.de/go/pdfview/config"
	"seehuhn.de/go/pdfview/tools"
	"seehuhn.de/go/pdfview/viewer"
)

// Server is the HTTP front end of a viewer.
type Server struct {
	v      *viewer.Viewer
	hub    *Hub
	cfg    config.ServerConfig
	logger *log.Logger

	handler      http.Handler
	toolListener tools.ListenerID

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a server for v.  Events are sent through hub, which should
// also be registered as the notifier of v.
func New(v *viewer.Viewer, hub *Hub) *Server {
	s := &Server{
		v:      v,
		hub:    hub,
		cfg:    v.Config().Server,
		logger: v.Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /open", s.handleOpen)
	mux.HandleFunc("GET /tabs", s.handleTabs)
	mux.HandleFunc("POST /tabs", s.handleNewTab)
	mux.HandleFunc("POST /tabs/{i}/activate", s.handleActivateTab)
	mux.HandleFunc("DELETE /tabs/{i}", s.handleCloseTab)
	mux.HandleFunc("GET /pages/{file}", s.handlePage)
	mux.HandleFunc("GET /annotations/{n}", s.handleAnnotations)
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("POST /tools/{i}", s.handleSelectTool)
	mux.HandleFunc("GET /download", s.handleDownload)
	mux.Handle("GET /ws", hub)
	s.handler = recoverPanics(s.logger, logRequests(s.logger, mux))

	s.toolListener = v.Tools().AddListener(s.toolChanged)
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr()
}

// ListenAndServe serves requests on the configured address until
// [Server.Shutdown] is called.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return errors.New("server is already running")
	}
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     s.logger,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Printf("listening on http://%s/", srv.Addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully and detaches it from the viewer.
func (s *Server) Shutdown(ctx context.Context) error {
	s.v.Tools().RemoveListener(s.toolListener)

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) toolChanged(mode tools.Mode) {
	s.hub.Broadcast(EventTool, toolEvent{
		Index: s.v.Tools().ActiveIndex(),
		Mode:  mode.String(),
	})
}

func (s *Server) tabsChanged() {
	s.hub.Broadcast(EventTabs, s.tabList())
}
