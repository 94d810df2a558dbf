package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/techpazar/storefront/internal/cart"
	"github.com/techpazar/storefront/internal/models"
)

// cartView is the payload for all cart endpoints: the entries plus the
// derived summary, recomputed on every response.
type cartView struct {
	Entries []models.CartEntry `json:"entries"`
	Summary models.CartSummary `json:"summary"`
}

func newCartView(entries []models.CartEntry) cartView {
	if entries == nil {
		entries = []models.CartEntry{}
	}
	return cartView{
		Entries: entries,
		Summary: cart.Summarize(entries),
	}
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	entries, err := s.carts.Get(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to get cart", "error", err, "session_id", sessionID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get cart")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(entries))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "product_id is required")
		return
	}

	// An unknown product id is a silent no-op by design; the response is
	// simply the unchanged cart.
	entries, err := s.carts.Add(r.Context(), sessionID, req.ProductID)
	if err != nil {
		slog.Error("failed to add to cart", "error", err, "session_id", sessionID, "product_id", req.ProductID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add to cart")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(entries))
}

func (s *Server) handleAdjustItem(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "product id is required")
		return
	}

	var req models.AdjustItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "delta must be non-zero")
		return
	}

	entries, err := s.carts.Adjust(r.Context(), sessionID, productID, req.Delta)
	if err != nil {
		slog.Error("failed to adjust cart item", "error", err, "session_id", sessionID, "product_id", productID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to adjust cart item")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(entries))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "product id is required")
		return
	}

	entries, err := s.carts.Remove(r.Context(), sessionID, productID)
	if err != nil {
		slog.Error("failed to remove cart item", "error", err, "session_id", sessionID, "product_id", productID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove cart item")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(entries))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	if err := s.carts.Clear(r.Context(), sessionID); err != nil {
		slog.Error("failed to clear cart", "error", err, "session_id", sessionID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(nil))
}
