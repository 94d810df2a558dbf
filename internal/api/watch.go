package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleCartWatch streams the session's cart summary over a websocket. The
// badge indicator subscribes here and repaints on every push instead of
// polling.
func (s *Server) handleCartWatch(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Debug("cart watch connected", "session_id", sessionID)

	updates := s.carts.Subscribe(sessionID)
	defer s.carts.Unsubscribe(sessionID, updates)

	// Send the current state immediately so the badge is correct before
	// the first mutation.
	entries, err := s.carts.Get(r.Context(), sessionID)
	if err == nil {
		if err := conn.WriteJSON(newCartView(entries).Summary); err != nil {
			return
		}
	}

	// Drain client frames to detect disconnects; shoppers never send data.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("cart watch read error", "error", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			slog.Debug("cart watch disconnected", "session_id", sessionID)
			return
		case summary, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(summary); err != nil {
				slog.Debug("failed to push cart summary", "error", err)
				return
			}
		}
	}
}
