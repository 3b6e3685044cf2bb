package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/Sachithra-228/evidencedeck/internal/projection"
)

// mockStore implements ArtifactStore for testing.
type mockStore struct {
	artifacts []models.Artifact
	listErr   error
	reloadErr error
	reloads   int
}

func newMockStore(artifacts ...models.Artifact) *mockStore {
	return &mockStore{artifacts: artifacts}
}

func (m *mockStore) Artifacts() ([]models.Artifact, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.artifacts, nil
}

func (m *mockStore) Get(id string) (*models.Artifact, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	for _, a := range m.artifacts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrArtifactNotFound
}

func (m *mockStore) Totals() (models.Totals, error) {
	if m.listErr != nil {
		return models.Totals{}, m.listErr
	}
	return gallery.ComputeTotals(m.artifacts), nil
}

func (m *mockStore) Reload() error {
	m.reloads++
	return m.reloadErr
}

func (m *mockStore) Info() StoreInfo {
	return StoreInfo{Options: projection.DefaultOptions()}
}

func sampleArtifacts() []models.Artifact {
	return projection.Project([]models.RawCase{
		{ID: "TC01", Name: "Greeting", Category: "functional", InputLengthType: "S", Status: "Pass"},
		{ID: "TC02", Name: "Question", Category: "functional", InputLengthType: "M", Status: "Fail"},
		{ID: "TC03", Name: "Slang", Category: "robustness", InputLengthType: "L", Status: "skipped"},
		{ID: "TC04", Name: "Numbers", Category: "functional", InputLengthType: "S", Status: "fail"},
	}, projection.DefaultOptions())
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(newMockStore())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
	if resp.Version == "" {
		t.Error("expected non-empty version")
	}
}

func TestHandleSummaryEmpty(t *testing.T) {
	h := NewHandlers(newMockStore())

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()

	h.HandleSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp SummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 || resp.PassRate != 0 {
		t.Errorf("expected empty summary, got %+v", resp)
	}
}

func TestHandleSummaryWithArtifacts(t *testing.T) {
	h := NewHandlers(newMockStore(sampleArtifacts()...))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()

	h.HandleSummary(rec, req)

	var resp SummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	want := models.Totals{Total: 4, Passed: 1, Failed: 2, Flaky: 1}
	if resp.Totals != want {
		t.Errorf("expected totals %+v, got %+v", want, resp.Totals)
	}
	if resp.PassRate != 25.0 {
		t.Errorf("expected 25%% pass rate, got %.1f", resp.PassRate)
	}
	if resp.Browser != "chromium" {
		t.Errorf("expected browser chromium, got %q", resp.Browser)
	}
}

func TestHandleArtifactsFilters(t *testing.T) {
	h := NewHandlers(newMockStore(sampleArtifacts()...))

	tests := []struct {
		query   string
		wantIDs []string
		label   string
	}{
		{"", []string{"TC01", "TC02", "TC03", "TC04"}, "4 artifacts"},
		{"?status=failed", []string{"TC02", "TC04"}, "2 / 4 artifacts"},
		{"?status=flaky&type=video", []string{"TC03"}, "1 / 4 artifacts"},
		{"?status=all&type=screenshot,video", []string{"TC01", "TC02", "TC03", "TC04"}, "4 artifacts"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/artifacts"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.HandleArtifacts(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var resp ArtifactsResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, a := range resp.Artifacts {
				ids = append(ids, a.ID)
			}
			if fmt.Sprint(ids) != fmt.Sprint(tt.wantIDs) {
				t.Errorf("expected %v, got %v", tt.wantIDs, ids)
			}
			if resp.Label != tt.label {
				t.Errorf("expected label %q, got %q", tt.label, resp.Label)
			}
			if resp.Totals.Total != 4 {
				t.Errorf("totals must ignore filters, got %+v", resp.Totals)
			}
		})
	}
}

func TestHandleArtifactsBadFilter(t *testing.T) {
	h := NewHandlers(newMockStore(sampleArtifacts()...))

	for _, q := range []string{"?status=skipped", "?type=gif"} {
		req := httptest.NewRequest(http.MethodGet, "/api/artifacts"+q, nil)
		rec := httptest.NewRecorder()
		h.HandleArtifacts(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rec.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusBadRequest || resp.Error == "" {
			t.Errorf("%s: unexpected error body %+v", q, resp)
		}
	}
}

func TestHandleArtifactsEmptyListIsArray(t *testing.T) {
	h := NewHandlers(newMockStore())

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts", nil)
	rec := httptest.NewRecorder()
	h.HandleArtifacts(rec, req)

	if !strings.Contains(rec.Body.String(), `"artifacts":[]`) {
		t.Errorf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestHandleArtifactDetail(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore(sampleArtifacts()...))

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/TC02", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var a models.Artifact
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatal(err)
	}
	if a.ID != "TC02" || a.Status != models.StatusFailed {
		t.Errorf("unexpected artifact %+v", a)
	}
	if a.ImageSrc != "/assets/screens/TC02.png" {
		t.Errorf("unexpected imageSrc %q", a.ImageSrc)
	}
}

func TestHandleArtifactDetailNotFound(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore(sampleArtifacts()...))

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/nope", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func dispatch(t *testing.T, mux *http.ServeMux, body string) (*httptest.ResponseRecorder, DispatchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/gallery/dispatch", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp DispatchResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
	}
	return rec, resp
}

func TestHandleDispatchNavigation(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore(sampleArtifacts()...))

	rec, resp := dispatch(t, mux, `{"state":{"statusFilter":"failed"},"intent":{"type":"open","id":"TC04"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp.State.ActiveID != "TC04" || resp.View.Active == nil || resp.View.ActiveIndex != 1 {
		t.Fatalf("unexpected open result %+v", resp)
	}

	// Next wraps around the failed list: TC04 -> TC02.
	stateJSON, err := json.Marshal(resp.State)
	if err != nil {
		t.Fatal(err)
	}
	_, resp = dispatch(t, mux, `{"state":`+string(stateJSON)+`,"intent":{"type":"key","key":"ArrowRight"}}`)
	if resp.State.ActiveID != "TC02" {
		t.Errorf("expected wrap to TC02, got %q", resp.State.ActiveID)
	}
	if resp.View.Label != "2 / 4 artifacts" {
		t.Errorf("unexpected label %q", resp.View.Label)
	}
}

func TestHandleDispatchDefaultsState(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore(sampleArtifacts()...))

	_, resp := dispatch(t, mux, `{"intent":{"type":"prev"}}`)
	if resp.State.ActiveID != "TC04" {
		t.Errorf("prev with nothing open should land on the last artifact, got %q", resp.State.ActiveID)
	}
	if !resp.State.Types.IsAll() {
		t.Errorf("expected all types, got %v", resp.State.Types)
	}
}

func TestHandleDispatchNormalizesStatus(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore(sampleArtifacts()...))

	for _, status := range []string{"PASSED", " passed ", "Passed"} {
		rec, resp := dispatch(t, mux, `{"state":{"statusFilter":"`+status+`"},"intent":{"type":"next"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d: %s", status, rec.Code, rec.Body.String())
		}
		if resp.State.Status != gallery.StatusFilter(models.StatusPassed) {
			t.Errorf("%q: expected state to echo %q, got %q", status, models.StatusPassed, resp.State.Status)
		}
		if len(resp.View.Artifacts) != 1 || resp.State.ActiveID != "TC01" {
			t.Errorf("%q: expected TC01 alone, got %d artifacts, active %q", status, len(resp.View.Artifacts), resp.State.ActiveID)
		}
		if resp.View.Label != "1 / 4 artifacts" {
			t.Errorf("%q: unexpected label %q", status, resp.View.Label)
		}
	}
}

func TestHandleDispatchBadRequests(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore(sampleArtifacts()...))

	for _, body := range []string{
		`not json`,
		`{"intent":{"type":"teleport"}}`,
		`{"intent":{"type":"toggleTypeFilter","kind":"audio"}}`,
		`{"intent":{"type":"key","key":"Enter"}}`,
		`{"state":{"statusFilter":"skipped"},"intent":{"type":"next"}}`,
		`{"state":{"typeFilter":["gif"]},"intent":{"type":"next"}}`,
	} {
		rec, _ := dispatch(t, mux, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestHandleDispatchRequiresPost(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newMockStore())

	req := httptest.NewRequest(http.MethodGet, "/api/gallery/dispatch", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleReload(t *testing.T) {
	store := newMockStore(sampleArtifacts()...)
	mux := http.NewServeMux()
	RegisterRoutes(mux, store)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ReloadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 4 || store.reloads != 1 {
		t.Errorf("unexpected reload result %+v (reloads=%d)", resp, store.reloads)
	}
}

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no origins configured", func(t *testing.T) {
		handler := CORSMiddleware(inner)
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no CORS header, got %q", got)
		}
	})

	t.Run("allowed origin", func(t *testing.T) {
		handler := CORSMiddleware(inner, "http://localhost:5173")
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("expected origin echoed, got %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
			t.Errorf("expected POST allowed, got %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		handler := CORSMiddleware(inner, "http://localhost:5173")
		req := httptest.NewRequest(http.MethodOptions, "/api/gallery/dispatch", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})
}
