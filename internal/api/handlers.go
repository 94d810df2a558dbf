package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/techpazar/storefront/internal/catalog"
	"github.com/techpazar/storefront/internal/models"
	"github.com/techpazar/storefront/internal/pagination"
	"github.com/techpazar/storefront/internal/router"
)

// featuredCount is how many featured graphics cards the home view carries.
const featuredCount = 4

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.catalog.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "catalog is empty")
		return
	}
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "cart storage not reachable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Storefront handlers

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": models.Categories,
		"total":      len(models.Categories),
	})
}

// homeView is the payload driving the home page: one page of the filtered
// view plus everything needed to render navigation around it.
type homeView struct {
	Products   []*models.Product  `json:"products"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalItems int                `json:"total_items"`
	TotalPages int                `json:"total_pages"`
	Pagination pagination.Control `json:"pagination"`
	Filter     models.FilterState `json:"filter"`
	Title      string             `json:"title"`
	// Featured is present only on the unfiltered storefront; any category
	// or search hides the promotional block.
	Featured []*models.Product `json:"featured,omitempty"`
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	state := models.NewFilterState(
		r.URL.Query().Get("category"),
		r.URL.Query().Get("q"),
		models.ParseSortMode(r.URL.Query().Get("sort")),
	)

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	view := s.buildHomeView(state, page, r.URL.Query().Get("seed"))
	respondJSON(w, http.StatusOK, view)
}

// buildHomeView recomputes the filtered view and slices the requested page.
// A seed pins the default-sort shuffle so a client can page through one
// stable permutation.
func (s *Server) buildHomeView(state models.FilterState, page int, seed string) homeView {
	pipeline := s.pipeline
	if seed != "" {
		if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
			pipeline = catalog.NewPipeline(catalog.WithSeed(n))
		}
	}

	filtered := pipeline.Apply(s.catalog.Products(), state)
	totalPages := pagination.TotalPages(len(filtered), pagination.PageSize)

	view := homeView{
		Products:   pagination.Slice(filtered, page, pagination.PageSize),
		Page:       page,
		PageSize:   pagination.PageSize,
		TotalItems: len(filtered),
		TotalPages: totalPages,
		Pagination: pagination.Layout(page, totalPages),
		Filter:     state,
		Title:      pageTitle(state),
	}
	if view.Products == nil {
		view.Products = []*models.Product{}
	}

	if state.IsBrowsingAll() {
		view.Featured = s.catalog.Featured(models.CategoryGraphicsCard, featuredCount)
	}

	return view
}

func pageTitle(state models.FilterState) string {
	if state.Term != "" {
		return fmt.Sprintf("Search results: %q", state.Term)
	}
	if state.IsBrowsingAll() {
		return "All Products"
	}
	return state.Category
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "product id is required")
		return
	}

	product, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		slog.Error("failed to get product", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// resolveResponse pairs the resolved route with the canonical fragment and,
// for home intents, the recomputed page-1 view.
type resolveResponse struct {
	Route    router.Route `json:"route"`
	Fragment string       `json:"fragment"`
	View     *homeView    `json:"view,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	route := router.Resolve(r.URL.Query().Get("fragment"))

	resp := resolveResponse{
		Route:    route,
		Fragment: route.Fragment(),
	}

	// Every home resolution resets to page 1 and recomputes the view. The
	// search term is client state and rides along as a query parameter so
	// it survives category navigation.
	if route.Intent == router.IntentHome {
		state := models.NewFilterState(
			route.Category,
			r.URL.Query().Get("q"),
			models.ParseSortMode(r.URL.Query().Get("sort")),
		)
		view := s.buildHomeView(state, 1, r.URL.Query().Get("seed"))
		resp.View = &view
	}

	respondJSON(w, http.StatusOK, resp)
}
