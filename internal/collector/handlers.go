package collector

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/errwatch/errwatch-go/internal/version"
)

var validSeverities = map[string]bool{
	"info":     true,
	"warning":  true,
	"error":    true,
	"critical": true,
}

// Handler handles HTTP requests
type Handler struct {
	registry *Registry
}

// NewHandler creates a new handler
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// ValidateApp handles POST /app/validate
func (h *Handler) ValidateApp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AppIdentifier string `json:"appIdentifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if req.AppIdentifier == "" {
		http.Error(w, "appIdentifier is required", http.StatusBadRequest)
		return
	}

	id := h.registry.AppID(req.AppIdentifier)
	log.Printf("Validated app %q as id %d", req.AppIdentifier, id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"data": id})
}

// CollectError handles POST /errors
func (h *Handler) CollectError(w http.ResponseWriter, r *http.Request) {
	var rec ReceivedError
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if !validSeverities[rec.Severity] {
		http.Error(w, fmt.Sprintf("unknown severity %q", rec.Severity), http.StatusBadRequest)
		return
	}

	h.registry.Add(rec)
	log.Printf("Received %s error from app %d on %s %s: %s",
		rec.Severity, rec.AppID, rec.Platform, rec.PlatformVersion, rec.ErrorMessage)

	w.WriteHeader(http.StatusAccepted)
}

// GetStats handles GET /stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Total      int             `json:"total"`
		BySeverity map[string]int  `json:"bySeverity"`
		Recent     []ReceivedError `json:"recent"`
	}{
		Total:      h.registry.Count(),
		BySeverity: h.registry.BySeverity(),
		Recent:     h.registry.Recent(10),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetVersion handles GET /version
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
