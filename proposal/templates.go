package proposal

import (
	"sort"

	"lmt-crm/models"
)

// documentTemplate is a built-in starting point for a new proposal.
type documentTemplate struct {
	Title         string
	DurationLabel string
	TravelWindow  string
	Days          []models.DayEntry
	Inclusions    []string
	Exclusions    []string
	Pricing       models.PricingInputs
}

// builtinTemplates are the fixed starting documents. The Darjeeling
// circuit is the agency's stock package; blueprints from the library
// cover everything else.
var builtinTemplates = map[string]documentTemplate{
	"darjeeling-classic": {
		Title:         "Bespoke Himalayan Journey",
		DurationLabel: "3 Nights / 4 Days",
		TravelWindow:  "Flexible 2025",
		Days: []models.DayEntry{
			{
				DayNumber: 1,
				Heading:   "NJP/ IXB To Darjeeling",
				Narrative: "Arrival at New Jalpaiguri Railway Station (NJP)/ Bagdogra Airport (IXB) & transfer to Darjeeling. Check-in and evening at Mall Road.",
				Tags:      []string{"Meet & Greet", "Private Transfer"},
			},
			{
				DayNumber: 2,
				Heading:   "Darjeeling Local Sightseeing",
				Narrative: "Early morning sunrise at Tiger Hill (2590 m). Visit Ghoom Monastery and Batasia Loop. After breakfast, visit Japanese Temple and Peace Pagoda.",
				Tags:      []string{"Tiger Hill Sunrise", "Batasia Loop"},
			},
			{
				DayNumber: 3,
				Heading:   "Darjeeling surrounding offbeat",
				Narrative: "Visit Lamahatta Eco Park, Tinchuley view point and tea gardens. Enjoy the serene pine forests and mountain views.",
				Tags:      []string{"Tea Garden Visit"},
			},
			{
				DayNumber: 4,
				Heading:   "Transfer to NJP/ IXB via Mirik",
				Narrative: "Drive via Mirik Lake. Enjoy boating and horse riding if time permits before dropping off for your journey back home.",
			},
		},
		Inclusions: []string{
			"Premium Stay with Breakfast & Dinner",
			"Private Dedicated Vehicle",
			"All Permits & Taxes",
			"Meet & Greet Assistance",
		},
		Exclusions: []string{
			"Airfare / Train tickets",
			"Personal Expenses",
			"Lunch",
			"Entry Fees",
		},
		Pricing: models.PricingInputs{
			AccommodationPerNight: 2500,
			TransportPerDay:       3500,
			PackageCost:           45000,
		},
	},
	"signature-escape": {
		Title:         "Signature Himalayan Escape",
		DurationLabel: "4 Nights / 5 Days",
		TravelWindow:  "October 2025",
		Days: []models.DayEntry{
			{
				DayNumber: 1,
				Heading:   "Gateway to the Hills",
				Narrative: "Upon arrival at NJP/Bagdogra, our representative will greet you. Enjoy a scenic private transfer to Darjeeling, winding through lush tea estates and mist-covered peaks. Check-in to your luxury stay and spend the evening exploring the colonial charm of Mall Road.",
				Tags:      []string{"Meet & Greet", "Private Transfer"},
			},
			{
				DayNumber: 2,
				Heading:   "The Golden Sunrise",
				Narrative: "Early morning drive to Tiger Hill to witness the sun rise over the Kanchenjunga range. Visit Ghoom Monastery and Batasia Loop. After a royal breakfast, visit the Himalayan Mountaineering Institute, Zoo, and Tibetan Refugee Center.",
				Tags:      []string{"Tiger Hill Sunrise", "Batasia Loop", "Tea Garden Visit"},
			},
		},
		Inclusions: []string{
			"Luxury Accommodation with Breakfast & Dinner",
			"Private Dedicated Luxury SUV",
			"All Inner-line Permits & Border Taxes",
			"24/7 Concierge Support during travel",
		},
		Exclusions: []string{
			"Airfare or Train tickets to reach Bagdogra/NJP",
			"Personal Laundry & Room Service",
			"Monuments & Entry Fees",
			"Traditional Tipping & Personal Gratuities",
		},
		Pricing: models.PricingInputs{
			AccommodationPerNight: 8500,
			TransportPerDay:       3500,
			PackageCost:           52000,
		},
	},
}

// TemplateIDs lists the built-in template ids for the selection UI.
func TemplateIDs() []string {
	ids := make([]string, 0, len(builtinTemplates))
	for id := range builtinTemplates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
