package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"lmt-crm/config"
	"lmt-crm/content"
	"lmt-crm/metrics"
	"lmt-crm/models"
	"lmt-crm/proposal"
	"lmt-crm/utils"
)

// Default brand imagery; any slot can be overridden from the admin
// panel's edit mode.
const (
	defaultLogoURL  = "https://i.ibb.co/vzR0y6y/lmt-logo.png"
	defaultCoverURL = "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?q=80&w=2000&auto=format&fit=crop"
)

// PageKind tags each block of the rendered sequence.
type PageKind string

const (
	PageCover   PageKind = "cover"
	PageDay     PageKind = "day"
	PageSummary PageKind = "summary"
)

// Page is one self-contained block of the fixed layout. BreakAfter is
// the explicit pagination marker: the export stage forces a physical
// page break wherever it is set, and nowhere else. Breaks are
// author-specified, never overflow-driven.
type Page struct {
	Kind       PageKind
	Ordinal    int
	BreakAfter bool
	Cover      *CoverData
	Day        *models.DayEntry
	Summary    *SummaryData
}

// Template predicates; html/template cannot compare the typed PageKind
// against string literals.
func (p Page) IsCover() bool   { return p.Kind == PageCover }
func (p Page) IsDay() bool     { return p.Kind == PageDay }
func (p Page) IsSummary() bool { return p.Kind == PageSummary }

// DayImage exposes the image slot as a pre-approved URL: the slot only
// ever holds a normalized inline payload or a gallery URL, and the
// template's URL filter would strip the data scheme.
func (p Page) DayImage() template.URL {
	if p.Day == nil {
		return ""
	}
	return template.URL(p.Day.Image)
}

// CoverData feeds the first page: brand mark plus the recipient and
// document header fields snapshotted into the model.
type CoverData struct {
	BrandName     string
	LogoURL       string
	CoverImageURL string
	RecipientName string
	Destination   string
	Title         string
	DurationLabel string
	TravelWindow  string
	ReferenceID   string
	IssuedDate    string
}

// SummaryData feeds the closing page of the quotation variant.
type SummaryData struct {
	Inclusions     []string
	Exclusions     []string
	Pricing        *models.PricingBreakdown
	GrossLabel     string
	DiscountLabel  string
	NetLabel       string
	PreparedBy     string
	AgencyName     string
	Collection     string
	Tagline        string
	Website        string
	Email          string
	ContactQR      template.URL
}

// LayoutService deterministically projects a DocumentModel into the
// fixed page sequence: cover, one page per day in dayNumber order,
// and for quotations a closing summary page. Rendering the same model
// twice yields identical output; the only date involved is the
// already-snapshotted IssuedDate.
type LayoutService struct {
	overrides *content.Store
	agency    config.AgencyConfig
}

func NewLayoutService(overrides *content.Store, agency config.AgencyConfig) *LayoutService {
	return &LayoutService{overrides: overrides, agency: agency}
}

// BuildPages produces the ordered page sequence for the model. Missing
// day images degrade to a placeholder block; they never fail the render.
func (s *LayoutService) BuildPages(m *models.DocumentModel) []Page {
	pages := make([]Page, 0, len(m.Days)+2)

	recipient := m.RecipientName
	if recipient == "" {
		recipient = "Valued Guest"
	}

	pages = append(pages, Page{
		Kind:       PageCover,
		BreakAfter: true,
		Cover: &CoverData{
			BrandName:     s.overrides.Get("brand_name", s.agency.Name),
			LogoURL:       s.overrides.Get("brand_logo", defaultLogoURL),
			CoverImageURL: s.overrides.Get("cover_image", defaultCoverURL),
			RecipientName: recipient,
			Destination:   m.RecipientDestination,
			Title:         m.Title,
			DurationLabel: m.DurationLabel,
			TravelWindow:  m.TravelWindow,
			ReferenceID:   m.ReferenceID,
			IssuedDate:    m.IssuedDate.Format("02 Jan 2006"),
		},
	})

	for i := range m.Days {
		day := m.Days[i]
		pages = append(pages, Page{
			Kind:       PageDay,
			BreakAfter: true,
			Day:        &day,
		})
	}

	if m.HasPricing() {
		pages = append(pages, Page{
			Kind: PageSummary,
			Summary: &SummaryData{
				Inclusions:    m.Inclusions,
				Exclusions:    m.Exclusions,
				Pricing:       proposal.ComputePricing(m, s.agency.Markup()),
				PreparedBy:    m.PreparedBy,
				AgencyName:    s.overrides.Get("brand_name", s.agency.Name),
				Collection:    s.overrides.Get("brand_collection", s.agency.Collection),
				Tagline:       s.overrides.Get("brand_tagline", s.agency.Tagline),
				Website:       s.agency.Website,
				Email:         s.agency.Email,
				ContactQR:     s.contactQR(),
			},
		})
	}

	// Last page never carries a trailing break; everything before the
	// final boundary does.
	for i := range pages {
		pages[i].Ordinal = i + 1
		pages[i].BreakAfter = i < len(pages)-1
	}

	if p := pages[len(pages)-1]; p.Kind == PageSummary && p.Summary.Pricing != nil {
		p.Summary.GrossLabel = utils.FormatINR(p.Summary.Pricing.GrossValue)
		p.Summary.DiscountLabel = utils.FormatINR(p.Summary.Pricing.DiscountAmount)
		p.Summary.NetLabel = utils.FormatINR(p.Summary.Pricing.NetPayable)
	}

	metrics.RendersTotal.WithLabelValues(string(m.Kind)).Inc()
	return pages
}

// RenderHTML realizes the page sequence as a standalone HTML document.
// Each page is a .page block; the BreakAfter marker becomes the
// page-break rule the PDF stage consumes.
func (s *LayoutService) RenderHTML(pages []Page) (string, error) {
	templatePath := filepath.Join("templates", "proposal.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse proposal template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Pages []Page }{Pages: pages}); err != nil {
		return "", fmt.Errorf("failed to execute proposal template: %w", err)
	}
	return buf.String(), nil
}

// contactQR encodes the agency WhatsApp link as an inline PNG for the
// closing page. No number configured means no QR block.
func (s *LayoutService) contactQR() template.URL {
	number := utils.DigitsOnly(s.agency.WhatsAppNumber)
	if number == "" {
		return ""
	}
	png, err := qrcode.Encode("https://wa.me/"+number, qrcode.Medium, 256)
	if err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
