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

// VehicleController handles HTTP requests for the fleet registry.
type VehicleController struct {
	fleet repository.VehicleRepositoryInterface
}

// NewVehicleController creates a new VehicleController
func NewVehicleController(fleet repository.VehicleRepositoryInterface) *VehicleController {
	return &VehicleController{fleet: fleet}
}

// List handles GET /admin/fleet
func (c *VehicleController) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := c.fleet.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ failed to list fleet")
		http.Error(w, "failed to list fleet", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

type createVehicleRequest struct {
	Model       string `json:"model" validate:"required"`
	Type        string `json:"type" validate:"required"`
	PlateNumber string `json:"plateNumber" validate:"required"`
}

// Create handles POST /admin/fleet
func (c *VehicleController) Create(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v := &models.Vehicle{
		ID:          uuid.New().String(),
		Model:       req.Model,
		Type:        req.Type,
		PlateNumber: req.PlateNumber,
		Status:      "Available",
	}
	if err := c.fleet.Insert(r.Context(), v); err != nil {
		log.Error().Err(err).Msg("❌ failed to create vehicle")
		http.Error(w, "failed to create vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateStatus handles PATCH /admin/fleet/:id
func (c *VehicleController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/fleet/")

	var req struct {
		Status        string `json:"status"`
		CurrentDriver string `json:"currentDriver"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !models.ValidVehicleStatuses[req.Status] {
		http.Error(w, "invalid vehicle status", http.StatusBadRequest)
		return
	}

	if err := c.fleet.UpdateStatus(r.Context(), id, req.Status, req.CurrentDriver); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "vehicle not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update vehicle", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /admin/fleet/:id
func (c *VehicleController) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/fleet/")
	if err := c.fleet.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "vehicle not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete vehicle", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
