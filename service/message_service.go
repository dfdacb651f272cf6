package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"lmt-crm/config"
	"lmt-crm/metrics"
	"lmt-crm/models"
	"lmt-crm/utils"
)

// ErrMissingRecipient is returned when a message export is requested
// for a document with no attached lead: there is nobody to address.
var ErrMissingRecipient = errors.New("no recipient attached to document")

// MessageService serializes a document into the plain-text handoff
// format for the external messaging app. Its responsibility ends at
// the correctly encoded deep link; delivery is out of scope.
type MessageService struct {
	agency config.AgencyConfig
}

func NewMessageService(agency config.AgencyConfig) *MessageService {
	return &MessageService{agency: agency}
}

// MessageExport is the terminal output of a message dispatch.
type MessageExport struct {
	Body    string `json:"body"`
	Contact string `json:"contact"`
	Link    string `json:"link"`
}

// BuildMessage renders the fixed message template: title line,
// recipient line, greeting, one DAY block per entry in order, then the
// signature block with the preparer's name and the agency tagline.
func (s *MessageService) BuildMessage(m *models.DocumentModel) (string, error) {
	if m.RecipientName == "" {
		return "", ErrMissingRecipient
	}

	// Only the day headings are shouted; the title goes out verbatim.
	var b strings.Builder
	fmt.Fprintf(&b, "*🌟 %s 🌟*\n", m.Title)
	fmt.Fprintf(&b, "Exclusively prepared for: *%s*\n\n", m.RecipientName)
	fmt.Fprintf(&b, "Greetings from *%s*! Below is your personalized excursion blueprint:\n\n", s.agency.Name)

	for _, day := range m.Days {
		fmt.Fprintf(&b, "*DAY %d: %s*\n", day.DayNumber, strings.ToUpper(day.Heading))
		fmt.Fprintf(&b, "📍 %s\n\n", day.Narrative)
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*Designed by:* %s\n", m.PreparedBy)
	fmt.Fprintf(&b, "*%s*\n", s.agency.Collection)
	fmt.Fprintf(&b, "_%s_", s.agency.Tagline)

	return b.String(), nil
}

// ExportMessage builds the message body and the wa.me deep link for
// the lead snapshotted into the document. Fails before producing any
// partial link when the contact is missing.
func (s *MessageService) ExportMessage(m *models.DocumentModel) (*MessageExport, error) {
	contact := utils.DigitsOnly(m.RecipientContact)
	if contact == "" {
		metrics.ExportsTotal.WithLabelValues("whatsapp", "missing_recipient").Inc()
		return nil, fmt.Errorf("document %s: %w", m.ReferenceID, ErrMissingRecipient)
	}

	body, err := s.BuildMessage(m)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("whatsapp", "error").Inc()
		return nil, err
	}

	metrics.ExportsTotal.WithLabelValues("whatsapp", "ok").Inc()
	return &MessageExport{
		Body:    body,
		Contact: contact,
		Link:    fmt.Sprintf("https://wa.me/%s?text=%s", contact, url.QueryEscape(body)),
	}, nil
}
