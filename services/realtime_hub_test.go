package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

func dialTestClient(t *testing.T, hub *RealtimeHub) *WSClient {
	t.Helper()

	upgrader := websocket.Upgrader{}
	clientCh := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{Conn: conn}
		hub.Register(cl)
		clientCh <- cl
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return <-clientCh
}

// Pings and broadcasts share one connection; both must go through the
// client's write lock or gorilla/websocket panics on the concurrent
// write.
func TestHubPingAndBroadcastInterleave(t *testing.T) {
	hub := NewRealtimeHub()
	cl := dialTestClient(t, hub)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.BroadcastLogCreated(1, "2024-06-10", 3)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = cl.Ping()
		}
	}()
	wg.Wait()
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewRealtimeHub()
	cl := dialTestClient(t, hub)

	hub.Unregister(cl)
	// after unregister the broadcast must skip the closed connection
	hub.BroadcastLogCreated(1, "2024-06-10", 1)

	if err := cl.Ping(); err == nil {
		t.Error("expected ping on a closed connection to fail")
	}
}
