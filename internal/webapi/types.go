package webapi

import (
	"time"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// ArtifactsResponse is the filtered gallery list.
type ArtifactsResponse struct {
	Artifacts    []models.Artifact    `json:"artifacts"`
	Label        string               `json:"label"`
	Totals       models.Totals        `json:"totals"`
	StatusFilter gallery.StatusFilter `json:"statusFilter"`
	TypeFilter   gallery.TypeSet      `json:"typeFilter"`
}

// SummaryResponse is the collection-wide status breakdown shown on the tabs.
type SummaryResponse struct {
	models.Totals
	PassRate float64   `json:"passRate"`
	Suite    string    `json:"suite"`
	SpecPath string    `json:"specPath"`
	Browser  string    `json:"browser"`
	LoadedAt time.Time `json:"loadedAt"`
}

// DispatchRequest carries the client's current gallery state and the intent
// to apply to it.
type DispatchRequest struct {
	State  gallery.State    `json:"state"`
	Intent gallery.Envelope `json:"intent"`
}

// DispatchResponse is the state after the intent and the view derived from it.
type DispatchResponse struct {
	State gallery.State `json:"state"`
	View  gallery.View  `json:"view"`
}

// ReloadResponse reports how many artifacts the reloaded case file produced.
type ReloadResponse struct {
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loadedAt"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
