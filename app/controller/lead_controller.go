package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lmt-crm/models"
	"lmt-crm/repository"
)

// LeadController handles HTTP requests for the lead pipeline.
type LeadController struct {
	leads repository.LeadRepositoryInterface
}

// NewLeadController creates a new LeadController
func NewLeadController(leads repository.LeadRepositoryInterface) *LeadController {
	return &LeadController{leads: leads}
}

// List handles GET /admin/leads
func (c *LeadController) List(w http.ResponseWriter, r *http.Request) {
	leads, err := c.leads.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ failed to list leads")
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

type createLeadRequest struct {
	Name          string            `json:"name" validate:"required"`
	Email         string            `json:"email" validate:"omitempty,email"`
	Phone         string            `json:"phone"`
	Source        models.LeadSource `json:"source"`
	Destination   string            `json:"destination"`
	Budget        string            `json:"budget"`
	AssignedAgent string            `json:"assignedAgent"`
	TravelDates   string            `json:"travelDates"`
	Notes         string            `json:"notes"`
}

// Create handles POST /admin/leads
func (c *LeadController) Create(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		req.Source = models.SourceManual
	}

	lead := &models.Lead{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Source:        req.Source,
		Status:        models.StatusUnqualified,
		Destination:   req.Destination,
		Budget:        req.Budget,
		AssignedAgent: req.AssignedAgent,
		TravelDates:   req.TravelDates,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
	}
	if err := c.leads.Insert(r.Context(), lead); err != nil {
		log.Error().Err(err).Msg("❌ failed to create lead")
		http.Error(w, "failed to create lead", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// UpdateStatus handles PATCH /admin/leads/:id/status
// Any column-to-column move on the board is allowed; the pipeline is
// not a state machine.
func (c *LeadController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := leadIDFromPath(r.URL.Path)

	var req struct {
		Status models.LeadStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !models.ValidLeadStatuses[req.Status] {
		http.Error(w, "invalid lead status", http.StatusBadRequest)
		return
	}

	if err := c.leads.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("lead", id).Msg("❌ failed to update lead status")
		http.Error(w, "failed to update lead", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /admin/leads/:id
func (c *LeadController) Delete(w http.ResponseWriter, r *http.Request) {
	id := leadIDFromPath(r.URL.Path)
	if err := c.leads.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete lead", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func leadIDFromPath(path string) string {
	path = strings.TrimPrefix(path, "/admin/leads/")
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}
