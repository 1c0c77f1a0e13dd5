package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadPath is the WebSocket endpoint browsers connect to.
const ReloadPath = "/_hiccup/reload"

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeCSS   ReloadMessageType = "css"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	File  string            `json:"file,omitempty"`
}

// ReloadServer manages WebSocket connections for live reload.
type ReloadServer struct {
	clients  map[*websocket.Conn]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// writeMu serializes writes; a connection allows one writer at a time.
	writeMu sync.Mutex

	// lastError is replayed to clients that connect while a document is broken.
	lastError string
}

// NewReloadServer creates a new reload server.
// If logger is nil, slog.Default() is used.
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview server only
			},
		},
	}
}

// HandleWebSocket upgrades the request and holds the connection until the
// browser goes away.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Debug("reload upgrade failed", "error", err)
		return
	}

	r.mu.Lock()
	r.clients[conn] = struct{}{}
	pending := r.lastError
	r.mu.Unlock()
	r.logger.Debug("reload client connected", "remote", req.RemoteAddr)

	if pending != "" {
		r.send(conn, ReloadMessage{Type: ReloadTypeError, Error: pending})
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.drop(conn)
}

// NotifyReload sends a full page reload message to all clients.
func (r *ReloadServer) NotifyReload() {
	r.broadcast(ReloadMessage{Type: ReloadTypeFull})
}

// NotifyCSS sends a stylesheet-only reload message to all clients.
func (r *ReloadServer) NotifyCSS(file string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeCSS, File: file})
}

// NotifyError shows the error overlay on all clients.
func (r *ReloadServer) NotifyError(errMsg string) {
	r.mu.Lock()
	r.lastError = errMsg
	r.mu.Unlock()
	r.broadcast(ReloadMessage{Type: ReloadTypeError, Error: errMsg})
}

// ClearError clears the error overlay on all clients.
func (r *ReloadServer) ClearError() {
	r.mu.Lock()
	r.lastError = ""
	r.mu.Unlock()
	r.broadcast(ReloadMessage{Type: ReloadTypeClear})
}

func (r *ReloadServer) broadcast(msg ReloadMessage) {
	r.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	for _, client := range clients {
		r.send(client, msg)
	}
}

func (r *ReloadServer) send(conn *websocket.Conn, msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	r.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	r.writeMu.Unlock()
	if err != nil {
		r.logger.Debug("reload client dropped", "error", err)
		r.drop(conn)
	}
}

func (r *ReloadServer) drop(conn *websocket.Conn) {
	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}

// ClientScript is the browser side of live reload. The preview server
// appends it to rendered pages inside a script element.
const ClientScript = `(function() {
    'use strict';

    var delay = 1000;
    var maxDelay = 30000;
    var overlayID = 'hiccup-error-overlay';

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '` + ReloadPath + `');

        ws.onopen = function() {
            console.log('[hiccup] live reload connected');
            delay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'reload') {
                location.reload();
            } else if (msg.type === 'css') {
                reloadStyles();
            } else if (msg.type === 'error') {
                console.error('[hiccup]', msg.error);
                showError(msg.error);
            } else if (msg.type === 'clear') {
                clearError();
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                delay = Math.min(delay * 2, maxDelay);
                connect();
            }, delay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function reloadStyles() {
        document.querySelectorAll('link[rel="stylesheet"]').forEach(function(link) {
            var url = new URL(link.href);
            url.searchParams.set('_reload', Date.now());
            link.href = url.toString();
        });
    }

    function showError(text) {
        clearError();
        var overlay = document.createElement('div');
        overlay.id = overlayID;
        overlay.style.cssText = 'position:fixed;inset:0;background:rgba(0,0,0,0.9);color:#fff;font:14px monospace;padding:20px;overflow:auto;z-index:999999;';
        var title = document.createElement('h2');
        title.style.cssText = 'color:#ff5555;margin:0 0 20px;';
        title.textContent = 'Render Error';
        var pre = document.createElement('pre');
        pre.style.cssText = 'white-space:pre-wrap;background:#1a1a1a;padding:20px;border-radius:8px;';
        pre.textContent = text;
        overlay.appendChild(title);
        overlay.appendChild(pre);
        document.body.appendChild(overlay);
    }

    function clearError() {
        var overlay = document.getElementById(overlayID);
        if (overlay) {
            overlay.remove();
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();`
