package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"lmt-crm/content"
)

// ContentController handles HTTP requests for the UI copy overrides.
type ContentController struct {
	store *content.Store
}

// NewContentController creates a new ContentController
func NewContentController(store *content.Store) *ContentController {
	return &ContentController{store: store}
}

// List handles GET /admin/content
func (c *ContentController) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.store.All())
}

// Set handles PUT /admin/content
// Overrides are accepted as-is: arbitrary strings and URLs. One slot
// per call; the write is persisted before the response.
func (c *ContentController) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Key) == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	if err := c.store.Set(r.Context(), req.Key, req.Value); err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("❌ failed to persist content override")
		http.Error(w, "failed to save override", http.StatusInternalServerError)
		return
	}

	log.Info().Str("key", req.Key).Msg("✓ content override saved")
	writeJSON(w, http.StatusOK, map[string]string{req.Key: req.Value})
}
