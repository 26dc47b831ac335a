package keysource

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

const (
	// KeysPath is the endpoint browsers connect to
	KeysPath = "/keys"

	// shutdownTimeout bounds Detach
	shutdownTimeout = 5 * time.Second
)

// KeyFrame is a browser keydown event as sent by the page, using the DOM
// KeyboardEvent field names
type KeyFrame struct {
	Type     string `json:"type,omitempty"`
	Key      string `json:"key"`
	CtrlKey  bool   `json:"ctrlKey"`
	ShiftKey bool   `json:"shiftKey"`
	AltKey   bool   `json:"altKey"`
	MetaKey  bool   `json:"metaKey"`
}

// Reply answers every KeyFrame. PreventDefault tells the page to suppress
// the browser's own handling of the key.
type Reply struct {
	Key            string `json:"key"`
	PreventDefault bool   `json:"preventDefault"`
}

// WebSocket bridges browser keydown events to a registry.
// With an empty address no listener is started and the bridge is served
// through ServeHTTP by an existing server.
type WebSocket struct {
	addr     string
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu       sync.Mutex
	handler  shortcuts.Handler
	server   *http.Server
	listener net.Listener
	conns    map[*websocket.Conn]struct{}
}

// NewWebSocket creates a bridge that listens on addr once attached
func NewWebSocket(addr string, log zerolog.Logger) *WebSocket {
	return &WebSocket{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Pages are served from arbitrary local dev servers
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Attach starts the listener and routes frames to h
func (w *WebSocket) Attach(h shortcuts.Handler) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.addr != "" && w.server == nil {
		ln, err := net.Listen("tcp", w.addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", w.addr, err)
		}

		mux := http.NewServeMux()
		mux.Handle(KeysPath, w)

		w.listener = ln
		w.server = &http.Server{Handler: mux}

		server := w.server
		go func() {
			if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
				w.log.Error().Err(err).Msg("key bridge server error")
			}
		}()
		w.log.Info().Str("addr", ln.Addr().String()).Msg("key bridge listening")
	}

	w.handler = h
	return nil
}

// Detach stops routing frames, closes open connections and shuts the
// listener down
func (w *WebSocket) Detach() {
	w.mu.Lock()
	w.handler = nil
	server := w.server
	w.server = nil
	w.listener = nil
	for conn := range w.conns {
		conn.Close()
	}
	w.conns = make(map[*websocket.Conn]struct{})
	w.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		w.log.Warn().Err(err).Msg("key bridge shutdown")
	}
}

// Addr returns the bound address while listening, or "" otherwise
func (w *WebSocket) Addr() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.listener == nil {
		return ""
	}
	return w.listener.Addr().String()
}

// ServeHTTP upgrades the request and serves key frames until the peer
// disconnects or the bridge is detached
func (w *WebSocket) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	conn, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		w.log.Warn().Err(err).Msg("key bridge upgrade failed")
		return
	}

	w.mu.Lock()
	w.conns[conn] = struct{}{}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.conns, conn)
		w.mu.Unlock()
		conn.Close()
	}()

	for {
		var frame KeyFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.log.Debug().Err(err).Msg("key bridge connection closed")
			}
			return
		}

		if frame.Type != "" && frame.Type != "keydown" {
			continue
		}

		w.mu.Lock()
		h := w.handler
		w.mu.Unlock()

		handled := h != nil && h(frame.event())

		if err := conn.WriteJSON(Reply{Key: frame.Key, PreventDefault: handled}); err != nil {
			return
		}
	}
}

func (f KeyFrame) event() shortcuts.KeyEvent {
	return shortcuts.KeyEvent{
		Key:   f.Key,
		Ctrl:  f.CtrlKey,
		Shift: f.ShiftKey,
		Alt:   f.AltKey,
		Meta:  f.MetaKey,
	}
}
