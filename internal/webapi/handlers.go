package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxDispatchBody bounds the size of a dispatch request.
const maxDispatchBody = 64 << 10

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store ArtifactStore
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store ArtifactStore) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleSummary returns the per-status totals over the whole collection.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	totals, err := h.store.Totals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	info := h.store.Info()
	resp := SummaryResponse{
		Totals:   totals,
		Suite:    info.Options.Suite,
		SpecPath: info.Options.SpecPath,
		Browser:  info.Options.Browser,
		LoadedAt: info.LoadedAt,
	}
	if totals.Total > 0 {
		resp.PassRate = float64(totals.Passed) / float64(totals.Total) * 100.0
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleArtifacts returns the artifacts matching the status and type query
// params, in case-file order.
func (h *Handlers) HandleArtifacts(w http.ResponseWriter, r *http.Request) {
	status, err := gallery.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	types, err := gallery.ParseTypeSet(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	artifacts, err := h.store.Artifacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	view := gallery.Derive(artifacts, gallery.State{Status: status, Types: types})
	writeJSON(w, http.StatusOK, ArtifactsResponse{
		Artifacts:    view.Artifacts,
		Label:        view.Label,
		Totals:       view.Totals,
		StatusFilter: status,
		TypeFilter:   types,
	})
}

// HandleArtifactDetail returns one artifact by id.
func (h *Handlers) HandleArtifactDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		// Fallback: extract from URL path for compatibility.
		id = strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/artifacts/"), "/")
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "artifact id is required")
		return
	}

	a, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, ErrArtifactNotFound) {
			writeError(w, http.StatusNotFound, "artifact not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleDispatch applies one intent to the state sent by the client and
// returns the next state with its view. The server keeps no gallery state.
func (h *Handlers) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDispatchBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid dispatch body: "+err.Error())
		return
	}
	status, err := gallery.ParseStatusFilter(string(req.State.Status))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.State.Status = status
	intent, err := req.Intent.Intent()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	artifacts, err := h.store.Artifacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	next := gallery.Reduce(artifacts, req.State, intent)
	writeJSON(w, http.StatusOK, DispatchResponse{
		State: next,
		View:  gallery.Derive(artifacts, next),
	})
}

// HandleReload re-reads the case file.
func (h *Handlers) HandleReload(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	totals, err := h.store.Totals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{Count: totals.Total, LoadedAt: h.store.Info().LoadedAt})
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store ArtifactStore) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/artifacts", h.HandleArtifacts)
	mux.HandleFunc("GET /api/artifacts/{id}", h.HandleArtifactDetail)
	mux.HandleFunc("POST /api/gallery/dispatch", h.HandleDispatch)
	mux.HandleFunc("POST /api/reload", h.HandleReload)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
