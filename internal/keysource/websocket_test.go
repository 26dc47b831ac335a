package keysource

import (
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

func dialBridge(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, frame KeyFrame) Reply {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var reply Reply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return reply
}

func TestWebSocket_ServeHTTP(t *testing.T) {
	bridge := NewWebSocket("", zerolog.Nop())
	r := shortcuts.NewRegistry(bridge, shortcuts.WithDefaults(nil))
	if err := r.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	var calls atomic.Int32
	r.Register(shortcuts.Shortcut{
		ID:      "save",
		Keys:    []string{"ctrl", "s"},
		Action:  func() { calls.Add(1) },
		Enabled: true,
	})

	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dialBridge(t, "ws"+strings.TrimPrefix(srv.URL, "http")+KeysPath)

	reply := roundTrip(t, conn, KeyFrame{Type: "keydown", Key: "S", CtrlKey: true})
	if !reply.PreventDefault || reply.Key != "S" {
		t.Errorf("reply = %+v, want preventDefault for S", reply)
	}

	reply = roundTrip(t, conn, KeyFrame{Key: "s", CtrlKey: true, AltKey: true})
	if reply.PreventDefault {
		t.Error("ctrl+alt+s must not match ctrl+s")
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("action called %d times, want 1", got)
	}

	// After Destroy frames are no longer routed
	r.Destroy()
}

func TestWebSocket_Listen(t *testing.T) {
	bridge := NewWebSocket("127.0.0.1:0", zerolog.Nop())
	r := shortcuts.NewRegistry(bridge)
	if err := r.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	addr := bridge.Addr()
	if addr == "" {
		t.Fatal("expected a bound address")
	}

	var homes atomic.Int32
	r.Subscribe("go-home", func() { homes.Add(1) })

	conn := dialBridge(t, "ws://"+addr+KeysPath)
	reply := roundTrip(t, conn, KeyFrame{Type: "keydown", Key: "h", AltKey: true})
	if !reply.PreventDefault {
		t.Error("alt+h should match the go-home default")
	}
	if homes.Load() != 1 {
		t.Errorf("go-home subscriber called %d times, want 1", homes.Load())
	}

	r.Destroy()
	if bridge.Addr() != "" {
		t.Error("expected listener to be closed after Destroy")
	}
}
