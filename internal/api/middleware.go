package api

import (
	"net/http"

	"github.com/google/uuid"
)

// SessionHeader carries the shopper's cart identity. It replaces the
// browser's local storage scoping: the client stores the id and replays it;
// an absent or invalid header just mints a fresh session.
const SessionHeader = "X-Session-ID"

const maxSessionIDLength = 64

// SessionMiddleware resolves the cart session for a request.
type SessionMiddleware struct{}

// NewSessionMiddleware creates the session middleware.
func NewSessionMiddleware() *SessionMiddleware {
	return &SessionMiddleware{}
}

// EnsureSession extracts the session id from the request header, minting a
// new one when missing, and echoes it on the response so clients can
// persist it.
func (m *SessionMiddleware) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if !validSessionID(sessionID) {
			sessionID = uuid.NewString()
		}

		w.Header().Set(SessionHeader, sessionID)

		ctx := ContextWithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validSessionID rejects ids that are empty, oversized or contain
// characters unsafe as storage keys.
func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
