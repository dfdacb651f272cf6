package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"lmt-crm/config"
	"lmt-crm/models"
	"lmt-crm/proposal"
	"lmt-crm/repository"
	"lmt-crm/service"
	"lmt-crm/utils"
)

// maxUploadBytes bounds day image uploads before normalization.
const maxUploadBytes = 20 << 20

var validate = validator.New()

// ProposalController handles HTTP requests for the document builder:
// creation, day editing, image normalization, and the export channels.
type ProposalController struct {
	store    *proposal.Store
	layout   *service.LayoutService
	exporter *service.ExportService
	messages *service.MessageService
	leads    repository.LeadRepositoryInterface
	prints   repository.BlueprintRepositoryInterface
	agency   config.AgencyConfig
}

// NewProposalController creates a new ProposalController
func NewProposalController(
	store *proposal.Store,
	layout *service.LayoutService,
	exporter *service.ExportService,
	messages *service.MessageService,
	leads repository.LeadRepositoryInterface,
	prints repository.BlueprintRepositoryInterface,
	agency config.AgencyConfig,
) *ProposalController {
	return &ProposalController{
		store:    store,
		layout:   layout,
		exporter: exporter,
		messages: messages,
		leads:    leads,
		prints:   prints,
		agency:   agency,
	}
}

type createProposalRequest struct {
	Kind        models.DocumentKind `json:"kind" validate:"required,oneof=itinerary quotation"`
	TemplateID  string              `json:"templateId,omitempty"`
	BlueprintID string              `json:"blueprintId,omitempty"`
	PreparedBy  string              `json:"preparedBy" validate:"required"`
}

// Create handles POST /proposals
func (c *ProposalController) Create(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		m   *models.DocumentModel
		err error
	)
	switch {
	case req.TemplateID != "":
		m, err = proposal.NewFromTemplate(req.TemplateID, req.Kind, req.PreparedBy)
	case req.BlueprintID != "":
		var bp *models.Blueprint
		bp, err = c.prints.GetByID(r.Context(), req.BlueprintID)
		if err == nil {
			m, err = proposal.NewFromBlueprint(bp, req.Kind, req.PreparedBy)
		}
	default:
		m = proposal.New(req.Kind, req.PreparedBy)
	}
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	c.store.Put(m)
	log.Info().Str("ref", m.ReferenceID).Str("kind", string(m.Kind)).Msg("✓ document created")
	writeJSON(w, http.StatusCreated, c.withPricing(m))
}

// Get handles GET /proposals/:ref
func (c *ProposalController) Get(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)
	m, err := c.store.Get(ref)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.withPricing(m))
}

// ListTemplates handles GET /proposals/templates
func (c *ProposalController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": proposal.TemplateIDs()})
}

// AppendDay handles POST /proposals/:ref/days
func (c *ProposalController) AppendDay(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)
	err := c.store.Update(ref, func(m *models.DocumentModel) error {
		proposal.AppendDay(m)
		return nil
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	c.respondWithDocument(w, ref)
}

// RemoveDay handles DELETE /proposals/:ref/days/:index
func (c *ProposalController) RemoveDay(w http.ResponseWriter, r *http.Request) {
	ref, index, err := refAndIndex(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = c.store.Update(ref, func(m *models.DocumentModel) error {
		return proposal.RemoveDay(m, index)
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	c.respondWithDocument(w, ref)
}

type updateDayRequest struct {
	Heading   *string `json:"heading,omitempty"`
	Narrative *string `json:"narrative,omitempty"`
	Image     *string `json:"image,omitempty"`
}

// UpdateDay handles PATCH /proposals/:ref/days/:index
func (c *ProposalController) UpdateDay(w http.ResponseWriter, r *http.Request) {
	ref, index, err := refAndIndex(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req updateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = c.store.Update(ref, func(m *models.DocumentModel) error {
		if req.Heading != nil {
			if err := proposal.SetDayHeading(m, index, *req.Heading); err != nil {
				return err
			}
		}
		if req.Narrative != nil {
			if err := proposal.SetDayNarrative(m, index, *req.Narrative); err != nil {
				return err
			}
		}
		if req.Image != nil {
			if err := proposal.SetDayImage(m, index, *req.Image); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	c.respondWithDocument(w, ref)
}

// ToggleTag handles POST /proposals/:ref/days/:index/tags
func (c *ProposalController) ToggleTag(w http.ResponseWriter, r *http.Request) {
	ref, index, err := refAndIndex(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Tag string `json:"tag" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Tag) == "" {
		http.Error(w, "tag is required", http.StatusBadRequest)
		return
	}

	err = c.store.Update(ref, func(m *models.DocumentModel) error {
		return proposal.ToggleTag(m, index, req.Tag)
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	c.respondWithDocument(w, ref)
}

// AttachLead handles POST /proposals/:ref/lead
func (c *ProposalController) AttachLead(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)

	var req struct {
		LeadID string `json:"leadId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" {
		http.Error(w, "leadId is required", http.StatusBadRequest)
		return
	}

	lead, err := c.leads.GetByID(r.Context(), req.LeadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load lead", http.StatusInternalServerError)
		return
	}

	err = c.store.Update(ref, func(m *models.DocumentModel) error {
		proposal.AttachLead(m, lead)
		return nil
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	c.respondWithDocument(w, ref)
}

// SetDiscount handles POST /proposals/:ref/discount
func (c *ProposalController) SetDiscount(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)

	var req struct {
		Percent int64 `json:"percent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := c.store.Update(ref, func(m *models.DocumentModel) error {
		return proposal.SetDiscount(m, req.Percent, c.agency.MaxDiscountPercent)
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	c.respondWithDocument(w, ref)
}

// UploadDayImage handles POST /proposals/:ref/days/:index/image
// Multipart upload; the raw bytes go through normalization and the
// resulting inline payload replaces the day's image slot. The document
// is held busy for the duration so a concurrent export cannot observe
// the half-finished slot.
func (c *ProposalController) UploadDayImage(w http.ResponseWriter, r *http.Request) {
	ref, index, err := refAndIndex(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart payload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusInternalServerError)
		return
	}

	if err := c.store.Begin(ref, "image normalization"); err != nil {
		writeDocumentError(w, err)
		return
	}

	asset, cached, err := service.NormalizeImageCached(r.Context(), data)
	if err != nil {
		c.store.End(ref)
		if errors.Is(err, service.ErrUnsupportedImage) {
			http.Error(w, "unsupported image format", http.StatusUnsupportedMediaType)
			return
		}
		log.Error().Err(err).Str("ref", ref).Msg("❌ image normalization failed")
		http.Error(w, "failed to process image", http.StatusInternalServerError)
		return
	}

	err = c.store.FinishWith(ref, func(m *models.DocumentModel) error {
		return proposal.SetDayImage(m, index, service.DataURI(asset))
	})
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	log.Info().Str("ref", ref).Int("day", index+1).Int("width", asset.Width).
		Bool("cached", cached).Msg("📸 day image normalized")
	c.respondWithDocument(w, ref)
}

// Render handles GET /proposals/:ref/render
// Returns the standalone HTML the PDF stage prints.
func (c *ProposalController) Render(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)
	m, err := c.store.Get(ref)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	html, err := c.layout.RenderHTML(c.layout.BuildPages(m))
	if err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("❌ render failed")
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// ExportPDF handles GET /proposals/:ref/export/pdf
func (c *ProposalController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)
	if err := c.store.Begin(ref, "PDF export"); err != nil {
		writeDocumentError(w, err)
		return
	}
	defer c.store.End(ref)

	m, err := c.store.Get(ref)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	pdfData, err := c.exporter.ExportPDF(r.Context(), ref, c.layout.BuildPages(m))
	if err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("❌ PDF export failed")
		http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := utils.DocumentFilename(string(m.Kind), m.RecipientName)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("❌ error writing PDF response")
	}
}

// ExportWhatsApp handles GET /proposals/:ref/export/whatsapp
// Returns the message body and wa.me deep link; the client opens it.
func (c *ProposalController) ExportWhatsApp(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(r.URL.Path)
	m, err := c.store.Get(ref)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	export, err := c.messages.ExportMessage(m)
	if err != nil {
		if errors.Is(err, service.ErrMissingRecipient) {
			http.Error(w, "attach a lead with a phone number before sharing", http.StatusConflict)
			return
		}
		http.Error(w, "failed to build message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, export)
}

// Delete handles DELETE /proposals/:ref
func (c *ProposalController) Delete(w http.ResponseWriter, r *http.Request) {
	c.store.Delete(refFromPath(r.URL.Path))
	w.WriteHeader(http.StatusNoContent)
}

// documentResponse pairs the model with its derived pricing so clients
// never recompute money locally.
type documentResponse struct {
	*models.DocumentModel
	PricingSummary *models.PricingBreakdown `json:"pricingSummary,omitempty"`
}

func (c *ProposalController) withPricing(m *models.DocumentModel) documentResponse {
	return documentResponse{
		DocumentModel:  m,
		PricingSummary: proposal.ComputePricing(m, c.agency.Markup()),
	}
}

func (c *ProposalController) respondWithDocument(w http.ResponseWriter, ref string) {
	m, err := c.store.Get(ref)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.withPricing(m))
}

// writeDocumentError maps the document core's sentinel errors onto
// HTTP statuses. Everything unrecognized is a 500.
func writeDocumentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, proposal.ErrDocumentNotFound):
		http.Error(w, "document not found", http.StatusNotFound)
	case errors.Is(err, proposal.ErrTemplateNotFound):
		http.Error(w, "template not found", http.StatusNotFound)
	case errors.Is(err, proposal.ErrDayIndexOutOfRange):
		http.Error(w, "day index out of range", http.StatusBadRequest)
	case errors.Is(err, proposal.ErrOperationInFlight):
		http.Error(w, "another operation is in progress for this document", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("❌ error encoding JSON response")
	}
}

// refFromPath extracts the reference id, the second segment after
// /proposals/ regardless of trailing action segments.
func refFromPath(path string) string {
	path = strings.TrimPrefix(path, "/proposals/")
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}

// refAndIndex parses /proposals/:ref/days/:index[...] paths.
func refAndIndex(path string) (string, int, error) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(path, "/proposals/"), "/"), "/")
	if len(parts) < 3 || parts[1] != "days" {
		return "", 0, fmt.Errorf("invalid day path")
	}
	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("invalid day index")
	}
	return parts[0], index, nil
}
