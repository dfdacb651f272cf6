package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lmt-crm/models"
	"lmt-crm/repository"
)

// BlueprintController handles HTTP requests for the prebuilt itinerary
// library.
type BlueprintController struct {
	prints repository.BlueprintRepositoryInterface
}

// NewBlueprintController creates a new BlueprintController
func NewBlueprintController(prints repository.BlueprintRepositoryInterface) *BlueprintController {
	return &BlueprintController{prints: prints}
}

// List handles GET /admin/blueprints
func (c *BlueprintController) List(w http.ResponseWriter, r *http.Request) {
	blueprints, err := c.prints.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ failed to list blueprints")
		http.Error(w, "failed to list blueprints", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blueprints": blueprints})
}

type createBlueprintRequest struct {
	Title         string            `json:"title" validate:"required"`
	Destination   string            `json:"destination" validate:"required"`
	Description   string            `json:"description"`
	DurationLabel string            `json:"durationLabel"`
	Days          []models.DayEntry `json:"days" validate:"required,min=1,max=10"`
	Thumbnail     string            `json:"thumbnail"`
}

// Create handles POST /admin/blueprints
func (c *BlueprintController) Create(w http.ResponseWriter, r *http.Request) {
	var req createBlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bp := &models.Blueprint{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Destination:   req.Destination,
		Description:   req.Description,
		DurationDays:  len(req.Days),
		DurationLabel: req.DurationLabel,
		Days:          req.Days,
		Thumbnail:     req.Thumbnail,
	}
	for i := range bp.Days {
		bp.Days[i].DayNumber = i + 1
	}

	if err := c.prints.Insert(r.Context(), bp); err != nil {
		log.Error().Err(err).Msg("❌ failed to create blueprint")
		http.Error(w, "failed to create blueprint", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, bp)
}

// Delete handles DELETE /admin/blueprints/:id
func (c *BlueprintController) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/blueprints/")
	if err := c.prints.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "blueprint not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete blueprint", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
