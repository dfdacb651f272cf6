package proposal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lmt-crm/models"
)

var (
	// ErrTemplateNotFound is returned when a template or blueprint id
	// is unknown. Creation is all-or-nothing: no partial document is
	// ever produced.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDayIndexOutOfRange is returned for operations addressing a
	// day entry that does not exist.
	ErrDayIndexOutOfRange = errors.New("day index out of range")
)

// placeholder content for freshly appended days.
const (
	placeholderHeading   = "Himalayan Exploration"
	placeholderNarrative = "Add detailed day activities here..."
)

// New builds an empty document of the given kind. Quotations start with
// zeroed pricing inputs so the variant flag is carried by Pricing != nil.
func New(kind models.DocumentKind, preparedBy string) *models.DocumentModel {
	m := &models.DocumentModel{
		ReferenceID: newReferenceID(kind),
		Kind:        kind,
		IssuedDate:  time.Now(),
		PreparedBy:  preparedBy,
	}
	if kind == models.KindQuotation {
		m.Pricing = &models.PricingInputs{}
	}
	return m
}

// NewFromTemplate clones a built-in template into a fresh document.
func NewFromTemplate(templateID string, kind models.DocumentKind, preparedBy string) (*models.DocumentModel, error) {
	tpl, ok := builtinTemplates[templateID]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", templateID, ErrTemplateNotFound)
	}
	m := New(kind, preparedBy)
	m.Title = tpl.Title
	m.DurationLabel = tpl.DurationLabel
	m.TravelWindow = tpl.TravelWindow
	m.Days = cloneDays(tpl.Days)
	m.Inclusions = append([]string(nil), tpl.Inclusions...)
	m.Exclusions = append([]string(nil), tpl.Exclusions...)
	if m.Pricing != nil {
		tplPricing := tpl.Pricing
		m.Pricing = &tplPricing
	}
	return m, nil
}

// NewFromBlueprint clones a prebuilt itinerary from the blueprint
// library into a fresh document.
func NewFromBlueprint(bp *models.Blueprint, kind models.DocumentKind, preparedBy string) (*models.DocumentModel, error) {
	if bp == nil {
		return nil, ErrTemplateNotFound
	}
	m := New(kind, preparedBy)
	m.Title = bp.Title
	m.DurationLabel = bp.DurationLabel
	m.Days = cloneDays(bp.Days)
	Renumber(m)
	return m, nil
}

// AppendDay adds a placeholder day entry numbered len(days)+1. Beyond
// MaxDays the call is a no-op; it must never corrupt numbering.
func AppendDay(m *models.DocumentModel) {
	if len(m.Days) >= models.MaxDays {
		return
	}
	m.Days = append(m.Days, models.DayEntry{
		DayNumber: len(m.Days) + 1,
		Heading:   placeholderHeading,
		Narrative: placeholderNarrative,
	})
}

// RemoveDay deletes the entry at index and renumbers the remainder so
// dayNumber stays a contiguous 1-based sequence.
func RemoveDay(m *models.DocumentModel, index int) error {
	if index < 0 || index >= len(m.Days) {
		return fmt.Errorf("remove day %d of %d: %w", index, len(m.Days), ErrDayIndexOutOfRange)
	}
	m.Days = append(m.Days[:index], m.Days[index+1:]...)
	Renumber(m)
	return nil
}

// SetDayHeading replaces the heading of the entry at index.
func SetDayHeading(m *models.DocumentModel, index int, heading string) error {
	if index < 0 || index >= len(m.Days) {
		return ErrDayIndexOutOfRange
	}
	m.Days[index].Heading = heading
	return nil
}

// SetDayNarrative replaces the narrative of the entry at index.
func SetDayNarrative(m *models.DocumentModel, index int, narrative string) error {
	if index < 0 || index >= len(m.Days) {
		return ErrDayIndexOutOfRange
	}
	m.Days[index].Narrative = narrative
	return nil
}

// SetDayImage replaces the image slot of the entry at index. The value
// is either a remote URL or a normalized inline data URI; the entry
// owns it exclusively.
func SetDayImage(m *models.DocumentModel, index int, image string) error {
	if index < 0 || index >= len(m.Days) {
		return ErrDayIndexOutOfRange
	}
	m.Days[index].Image = image
	return nil
}

// ToggleTag toggles membership of tag on the entry at index: present
// tags are removed, absent ones appended. Insertion order is preserved
// for display.
func ToggleTag(m *models.DocumentModel, index int, tag string) error {
	if index < 0 || index >= len(m.Days) {
		return ErrDayIndexOutOfRange
	}
	tags := m.Days[index].Tags
	for i, t := range tags {
		if t == tag {
			m.Days[index].Tags = append(tags[:i], tags[i+1:]...)
			return nil
		}
	}
	m.Days[index].Tags = append(tags, tag)
	return nil
}

// AttachLead snapshots the recipient fields from the lead at call time.
// Later mutations of the lead do not propagate into the document.
func AttachLead(m *models.DocumentModel, lead *models.Lead) {
	m.RecipientName = lead.Name
	m.RecipientDestination = lead.Destination
	m.RecipientContact = lead.Phone
}

// SetDiscount applies a negotiated discount, clamped to the agency
// ceiling. The original front end let agents exceed the ceiling; here
// the bound is enforced (see DESIGN.md).
func SetDiscount(m *models.DocumentModel, percent, maxPercent int64) error {
	if m.Pricing == nil {
		return fmt.Errorf("discount on %s document: pricing not present", m.Kind)
	}
	if percent < 0 {
		percent = 0
	}
	if percent > maxPercent {
		log.Warn().Int64("requested", percent).Int64("ceiling", maxPercent).
			Msg("discount clamped to agency ceiling")
		percent = maxPercent
	}
	m.Pricing.DiscountPercent = percent
	return nil
}

// Renumber restores the contiguous 1-based dayNumber sequence. Builder
// operations maintain it themselves; this is the defensive self-heal
// for models that arrive from outside the builder.
func Renumber(m *models.DocumentModel) {
	for i := range m.Days {
		if m.Days[i].DayNumber != i+1 {
			m.Days[i].DayNumber = i + 1
		}
	}
}

func cloneDays(days []models.DayEntry) []models.DayEntry {
	out := make([]models.DayEntry, len(days))
	copy(out, days)
	for i := range out {
		out[i].Tags = append([]string(nil), days[i].Tags...)
	}
	return out
}

func newReferenceID(kind models.DocumentKind) string {
	prefix := "LMT-ITN"
	if kind == models.KindQuotation {
		prefix = "LMT-QTN"
	}
	id := uuid.New().String()
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(id[:8]))
}
