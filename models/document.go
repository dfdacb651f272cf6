package models

import "time"

// DocumentKind distinguishes the plain itinerary variant from the
// quotation variant (which carries pricing and a summary page).
type DocumentKind string

const (
	KindItinerary DocumentKind = "itinerary"
	KindQuotation DocumentKind = "quotation"
)

// MaxDays is the builder's hard cap on day entries per document.
const MaxDays = 10

// DocumentModel is the in-memory representation of one proposal.
// Recipient fields are a snapshot of the lead at attach time; later
// edits to the lead do not propagate into an already-built document.
type DocumentModel struct {
	ReferenceID          string       `json:"referenceId"`
	Kind                 DocumentKind `json:"kind"`
	RecipientName        string       `json:"recipientName"`
	RecipientDestination string       `json:"recipientDestination"`
	RecipientContact     string       `json:"recipientContact"`
	Title                string       `json:"title"`
	DurationLabel        string       `json:"durationLabel"`
	TravelWindow         string       `json:"travelWindow"`
	IssuedDate           time.Time    `json:"issuedDate"`
	PreparedBy           string       `json:"preparedBy"`
	Days                 []DayEntry   `json:"days"`
	Pricing              *PricingInputs `json:"pricing,omitempty"`
	Inclusions           []string     `json:"inclusions"`
	Exclusions           []string     `json:"exclusions"`
}

// HasPricing reports whether this document is the quotation variant.
func (m *DocumentModel) HasPricing() bool {
	return m.Pricing != nil
}

// HasRecipient reports whether a lead snapshot has been attached.
func (m *DocumentModel) HasRecipient() bool {
	return m.RecipientName != "" || m.RecipientContact != ""
}

// DayEntry is one day's content block. Image holds either a remote URL
// or a normalized inline data URI; it is owned exclusively by this entry.
type DayEntry struct {
	DayNumber int      `json:"dayNumber"`
	Heading   string   `json:"heading"`
	Narrative string   `json:"narrative"`
	Image     string   `json:"image,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// PricingInputs are the raw components a quotation prices from.
// Amounts are whole currency units (no minor units).
type PricingInputs struct {
	AccommodationPerNight int64 `json:"accommodationPerNight"`
	TransportPerDay       int64 `json:"transportPerDay"`
	PackageCost           int64 `json:"packageCost"`
	DiscountPercent       int64 `json:"discountPercent"`
}

// PricingBreakdown holds the derived quotation values. These are always
// recomputed from PricingInputs and the agency markup, never stored.
type PricingBreakdown struct {
	AccommodationTotal int64 `json:"accommodationTotal"`
	TransportTotal     int64 `json:"transportTotal"`
	BaseComponents     int64 `json:"baseComponents"`
	MarkupAmount       int64 `json:"markupAmount"`
	GrossValue         int64 `json:"grossValue"`
	DiscountAmount     int64 `json:"discountAmount"`
	NetPayable         int64 `json:"netPayable"`
}

// NormalizedAsset is the output of the asset normalizer: a bounded,
// re-encoded image payload safe to embed and rasterize.
type NormalizedAsset struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	MIME   string `json:"mime"`
	Data   []byte `json:"-"`
}
