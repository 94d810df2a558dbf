package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/techpazar/storefront/internal/models"
)

func dialWatch(t *testing.T, tsURL, session string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(tsURL, "http") + "/api/v1/cart/watch"
	header := http.Header{}
	header.Set(SessionHeader, session)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("failed to dial watch socket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSummary(t *testing.T, conn *websocket.Conn) models.CartSummary {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var summary models.CartSummary
	if err := conn.ReadJSON(&summary); err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	return summary
}

func TestCartWatch(t *testing.T) {
	ts := newTestServer(t, testProducts())
	session := "watch-session"

	conn := dialWatch(t, ts.URL, session)

	// The current state arrives immediately on connect.
	summary := readSummary(t, conn)
	if summary.ItemCount != 0 {
		t.Errorf("initial summary = %+v, want empty", summary)
	}

	// A mutation over HTTP pushes a fresh summary to the watcher.
	doRequest(t, ts, http.MethodPost, "/api/v1/cart/items", session, addBody("gpu-1"))

	summary = readSummary(t, conn)
	if summary.ItemCount != 1 {
		t.Errorf("pushed summary = %+v, want 1 item", summary)
	}
	if summary.Subtotal != 1899.90 {
		t.Errorf("pushed subtotal = %v, want 1899.90", summary.Subtotal)
	}
}

func TestCartWatchIgnoresOtherSessions(t *testing.T) {
	ts := newTestServer(t, testProducts())

	conn := dialWatch(t, ts.URL, "watcher")
	readSummary(t, conn)

	doRequest(t, ts, http.MethodPost, "/api/v1/cart/items", "someone-else", addBody("gpu-1"))

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var summary models.CartSummary
	if err := conn.ReadJSON(&summary); err == nil {
		t.Errorf("received another session's update: %+v", summary)
	}
}
