package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/phpdave11/gofpdf"
	"github.com/rs/zerolog/log"

	"lmt-crm/config"
	"lmt-crm/metrics"
)

// pdfScale is the rasterization scale factor; embedded photography
// stays legible at 2x.
const pdfScale = 2.0

// ExportService turns a rendered page sequence into a downloadable A4
// portrait PDF. The primary path drives a headless Chrome over the
// render endpoint; when no Chrome binary is available it degrades to
// direct PDF drawing instead of failing the export outright.
type ExportService struct {
	baseURL string
	cfg     config.ExportConfig
}

func NewExportService(baseURL string, cfg config.ExportConfig) *ExportService {
	return &ExportService{baseURL: baseURL, cfg: cfg}
}

// detectChromePath checks the configured path first, then common
// installation locations.
func (s *ExportService) detectChromePath() string {
	if s.cfg.ChromePath != "" {
		if _, err := os.Stat(s.cfg.ChromePath); err == nil {
			return s.cfg.ChromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ExportPDF produces the paginated document for the given reference.
// Pages are rasterized and appended in the exact order the layout
// produced; the explicit per-page break markers become physical page
// boundaries. The model behind the render endpoint must not change
// while this runs — the caller holds the document's operation slot.
func (s *ExportService) ExportPDF(ctx context.Context, ref string, pages []Page) ([]byte, error) {
	chromePath := s.detectChromePath()
	if chromePath == "" {
		// Soft degradation, not an error: the direct-drawing fallback
		// loses the luxury styling but keeps every page and field.
		log.Warn().Str("ref", ref).Msg("no Chrome binary found, using direct PDF fallback")
		out, err := s.fallbackPDF(pages)
		if err != nil {
			metrics.ExportsTotal.WithLabelValues("pdf_fallback", "error").Inc()
			return nil, err
		}
		metrics.ExportsTotal.WithLabelValues("pdf_fallback", "ok").Inc()
		return out, nil
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.NoSandbox, // required in containers
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/proposals/%s/render", s.baseURL, ref)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		// 794px = 210mm at 96 DPI; tall viewport so every page lays out.
		chromedp.EmulateViewport(794, 1123*int64(len(pages)), chromedp.EmulateScale(pdfScale)),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and embedded images before printing.
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete && img.naturalWidth > 0) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait; margins live in the page CSS. PrintToPDF
			// honors the .page break-after rules literally, so the
			// physical breaks land exactly on the layout's markers.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("pdf", "error").Inc()
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues("pdf", "ok").Inc()
	log.Info().Str("ref", ref).Int("pages", len(pages)).Int("bytes", len(pdfBuf)).
		Msg("✓ PDF exported")
	return pdfBuf, nil
}

// fallbackPDF draws the page sequence directly. One AddPage per layout
// page: the break markers are consumed literally, no reflowing.
func (s *ExportService) fallbackPDF(pages []Page) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range pages {
		pdf.AddPage()
		switch p.Kind {
		case PageCover:
			s.drawCover(pdf, tr, p.Cover)
		case PageDay:
			s.drawDay(pdf, tr, p)
		case PageSummary:
			s.drawSummary(pdf, tr, p.Summary)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write fallback PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) drawCover(pdf *gofpdf.Fpdf, tr func(string) string, c *CoverData) {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetY(30)
	pdf.CellFormat(0, 8, tr(strings.ToUpper(c.BrandName)), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 26)
	pdf.SetY(100)
	pdf.MultiCell(0, 12, tr(strings.ToUpper(c.Title)), "", "C", false)

	pdf.SetFont("Arial", "", 13)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, tr("Exclusively for "+c.RecipientName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr(c.DurationLabel), "", 1, "C", false, 0, "")
	if c.TravelWindow != "" {
		pdf.CellFormat(0, 8, tr(c.TravelWindow), "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetY(260)
	pdf.CellFormat(0, 6, tr("Ref "+c.ReferenceID+"  |  Issued "+c.IssuedDate), "", 1, "C", false, 0, "")
}

func (s *ExportService) drawDay(pdf *gofpdf.Fpdf, tr func(string) string, p Page) {
	day := p.Day

	pdf.SetFont("Arial", "B", 22)
	pdf.SetY(25)
	pdf.CellFormat(0, 10, fmt.Sprintf("Day %d", day.DayNumber), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 15)
	pdf.MultiCell(0, 8, tr(strings.ToUpper(day.Heading)), "", "L", false)
	pdf.Ln(4)

	if img, ok := decodeInlineImage(day.Image); ok {
		name := fmt.Sprintf("day-%d", p.Ordinal)
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		pdf.ImageOptions(name, 15, pdf.GetY(), 180, 0, true, opts, 0, "")
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(day.Narrative), "", "L", false)

	if len(day.Tags) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr("# "+strings.Join(day.Tags, "   # ")), "", "L", false)
	}
}

func (s *ExportService) drawSummary(pdf *gofpdf.Fpdf, tr func(string) string, sum *SummaryData) {
	pdf.SetFont("Arial", "B", 16)
	pdf.SetY(25)
	pdf.CellFormat(0, 10, "Inclusive Features", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, inc := range sum.Inclusions {
		pdf.MultiCell(0, 6, tr("- "+inc), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Not Included", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, exc := range sum.Exclusions {
		pdf.MultiCell(0, 6, tr("- "+exc), "", "L", false)
	}

	if sum.Pricing != nil {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, "The Financial Signature", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Gross Valuation: INR %d", sum.Pricing.GrossValue), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Agent Discount: INR %d", sum.Pricing.DiscountAmount), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, fmt.Sprintf("Net Payable: INR %d", sum.Pricing.NetPayable), "", 1, "L", false, 0, "")
	}

	if sum.ContactQR != "" {
		if img, ok := decodeInlineImage(string(sum.ContactQR)); ok {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("contact-qr", opts, bytes.NewReader(img))
			pdf.ImageOptions("contact-qr", 160, 240, 35, 35, false, opts, 0, "")
		}
	}

	pdf.SetFont("Arial", "I", 10)
	pdf.SetY(250)
	pdf.CellFormat(0, 6, tr("Designed by "+sum.PreparedBy), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(sum.Collection), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 6, tr(sum.Website+"  |  "+sum.Email), "", 1, "L", false, 0, "")
}

// decodeInlineImage extracts the raw bytes of a data-URI image slot.
// Remote URLs are skipped in the fallback path; only normalized inline
// payloads embed.
func decodeInlineImage(src string) ([]byte, bool) {
	const marker = ";base64,"
	if !strings.HasPrefix(src, "data:image/") {
		return nil, false
	}
	idx := strings.Index(src, marker)
	if idx < 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(src[idx+len(marker):])
	if err != nil {
		return nil, false
	}
	return raw, true
}
