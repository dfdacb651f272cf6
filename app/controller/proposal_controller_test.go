package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmt-crm/config"
	"lmt-crm/content"
	"lmt-crm/models"
	"lmt-crm/proposal"
	"lmt-crm/repository"
	"lmt-crm/service"
)

type stubLeadRepo struct {
	lead *models.Lead
}

func (s stubLeadRepo) List(ctx context.Context) ([]models.Lead, error) { return nil, nil }
func (s stubLeadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	if s.lead == nil || s.lead.ID != id {
		return nil, fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}
	return s.lead, nil
}
func (s stubLeadRepo) Insert(ctx context.Context, lead *models.Lead) error { return nil }
func (s stubLeadRepo) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	return nil
}
func (s stubLeadRepo) Update(ctx context.Context, lead *models.Lead) error { return nil }
func (s stubLeadRepo) Delete(ctx context.Context, id string) error         { return nil }

type stubBlueprintRepo struct {
	bp *models.Blueprint
}

func (s stubBlueprintRepo) List(ctx context.Context) ([]models.Blueprint, error) { return nil, nil }
func (s stubBlueprintRepo) GetByID(ctx context.Context, id string) (*models.Blueprint, error) {
	if s.bp == nil || s.bp.ID != id {
		return nil, fmt.Errorf("blueprint %s: %w", id, repository.ErrNotFound)
	}
	return s.bp, nil
}
func (s stubBlueprintRepo) Insert(ctx context.Context, bp *models.Blueprint) error { return nil }
func (s stubBlueprintRepo) Delete(ctx context.Context, id string) error            { return nil }

type nullPersister struct{}

func (nullPersister) SaveState(ctx context.Context, key string, value []byte) error { return nil }
func (nullPersister) LoadState(ctx context.Context, key string) ([]byte, error)     { return nil, nil }

func newTestController(t *testing.T) (*ProposalController, *proposal.Store) {
	t.Helper()
	agency := config.AgencyConfig{
		Name:               "Let Me Travel",
		Tagline:            "We turn destinations into memories.",
		Collection:         "Let Me Travel Signature Collection",
		MarkupPercent:      25,
		MaxDiscountPercent: 15,
	}
	store := proposal.NewStore()
	overrides := content.NewStore(nullPersister{})
	lead := &models.Lead{ID: "lead-1", Name: "Asha Rao", Phone: "+91 98765 43210", Destination: "Darjeeling"}

	c := NewProposalController(
		store,
		service.NewLayoutService(overrides, agency),
		service.NewExportService("http://localhost:8080", config.ExportConfig{TimeoutSeconds: 30}),
		service.NewMessageService(agency),
		stubLeadRepo{lead: lead},
		stubBlueprintRepo{},
		agency,
	)
	return c, store
}

func createDocument(t *testing.T, c *ProposalController, body string) documentResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/proposals", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	c.Create(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp documentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateFromTemplate(t *testing.T) {
	c, _ := newTestController(t)
	resp := createDocument(t, c, `{"kind":"quotation","templateId":"darjeeling-classic","preparedBy":"Priya"}`)

	assert.NotEmpty(t, resp.ReferenceID)
	assert.NotEmpty(t, resp.Days)
	require.NotNil(t, resp.PricingSummary, "quotation responses carry the derived breakdown")
	assert.Positive(t, resp.PricingSummary.GrossValue)
}

func TestCreateRejectsUnknownTemplate(t *testing.T) {
	c, _ := newTestController(t)
	req := httptest.NewRequest(http.MethodPost, "/proposals",
		bytes.NewBufferString(`{"kind":"itinerary","templateId":"nope","preparedBy":"Priya"}`))
	rec := httptest.NewRecorder()
	c.Create(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidatesKind(t *testing.T) {
	c, _ := newTestController(t)
	req := httptest.NewRequest(http.MethodPost, "/proposals",
		bytes.NewBufferString(`{"kind":"Brochure","preparedBy":"Priya"}`))
	rec := httptest.NewRecorder()
	c.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppendAndRemoveDay(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"itinerary","preparedBy":"Priya"}`)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/days", nil)
	rec := httptest.NewRecorder()
	c.AppendDay(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var after documentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.Len(t, after.Days, 1)
	assert.Equal(t, 1, after.Days[0].DayNumber)

	req = httptest.NewRequest(http.MethodDelete, "/proposals/"+doc.ReferenceID+"/days/0", nil)
	rec = httptest.NewRecorder()
	c.RemoveDay(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Empty(t, after.Days)
}

func TestRemoveDayOutOfRange(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"itinerary","preparedBy":"Priya"}`)

	req := httptest.NewRequest(http.MethodDelete, "/proposals/"+doc.ReferenceID+"/days/7", nil)
	rec := httptest.NewRecorder()
	c.RemoveDay(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttachLeadSnapshotsRecipient(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"quotation","preparedBy":"Priya"}`)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/lead",
		bytes.NewBufferString(`{"leadId":"lead-1"}`))
	rec := httptest.NewRecorder()
	c.AttachLead(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var after documentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, "Asha Rao", after.RecipientName)
	assert.Equal(t, "Darjeeling", after.RecipientDestination)
}

func TestSetDiscountClamps(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"quotation","templateId":"darjeeling-classic","preparedBy":"Priya"}`)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/discount",
		bytes.NewBufferString(`{"percent":40}`))
	rec := httptest.NewRecorder()
	c.SetDiscount(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var after documentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.NotNil(t, after.Pricing)
	assert.Equal(t, int64(15), after.Pricing.DiscountPercent, "ceiling is 15")
}

func TestBusyDocumentRefusesEdits(t *testing.T) {
	c, store := newTestController(t)
	doc := createDocument(t, c, `{"kind":"itinerary","preparedBy":"Priya"}`)

	require.NoError(t, store.Begin(doc.ReferenceID, "PDF export"))
	defer store.End(doc.ReferenceID)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/days", nil)
	rec := httptest.NewRecorder()
	c.AppendDay(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExportWhatsAppWithoutContact(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"itinerary","preparedBy":"Priya"}`)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+doc.ReferenceID+"/export/whatsapp", nil)
	rec := httptest.NewRecorder()
	c.ExportWhatsApp(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExportWhatsAppWithLead(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"itinerary","preparedBy":"Priya"}`)

	attach := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/lead",
		bytes.NewBufferString(`{"leadId":"lead-1"}`))
	rec := httptest.NewRecorder()
	c.AttachLead(rec, attach)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+doc.ReferenceID+"/export/whatsapp", nil)
	rec = httptest.NewRecorder()
	c.ExportWhatsApp(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var export service.MessageExport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "919876543210", export.Contact)
	assert.Contains(t, export.Link, "https://wa.me/919876543210?text=")
}

func TestGetUnknownDocument(t *testing.T) {
	c, _ := newTestController(t)
	req := httptest.NewRequest(http.MethodGet, "/proposals/LMT-ITN-MISSING1", nil)
	rec := httptest.NewRecorder()
	c.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleTagRoundTrip(t *testing.T) {
	c, _ := newTestController(t)
	doc := createDocument(t, c, `{"kind":"itinerary","preparedBy":"Priya"}`)

	appendReq := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/days", nil)
	rec := httptest.NewRecorder()
	c.AppendDay(rec, appendReq)
	require.Equal(t, http.StatusOK, rec.Code)

	toggle := func() documentResponse {
		req := httptest.NewRequest(http.MethodPost, "/proposals/"+doc.ReferenceID+"/days/0/tags",
			bytes.NewBufferString(`{"tag":"Adventure"}`))
		rec := httptest.NewRecorder()
		c.ToggleTag(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp documentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	assert.Equal(t, []string{"Adventure"}, toggle().Days[0].Tags)
	assert.Empty(t, toggle().Days[0].Tags)
}
