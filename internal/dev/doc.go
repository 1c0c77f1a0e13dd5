// Package dev provides live reload for the preview server.
//
// This package implements:
//   - File watching for document, style and asset changes
//   - WebSocket-based browser refresh
//   - Error overlay in the browser for documents that fail to render
//
// # Architecture
//
//   - Watcher: polls the document root for changed files
//   - ReloadServer: notifies browsers of changes via WebSocket
//   - LiveReload: checks changed documents and tells browsers what to do
//
// # Usage
//
//	lr := dev.NewLiveReload(dev.LiveReloadConfig{
//	    Paths: []string{"site"},
//	    Check: func(path string) error { ... },
//	})
//	r.Get(dev.ReloadPath, lr.HandleWebSocket)
//	go lr.Run(ctx)
//
// # Reload Protocol
//
// The browser connects to /_hiccup/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "css", "file": "..."}    // Triggers CSS-only reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
