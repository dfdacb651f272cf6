package proposal

import (
	"github.com/shopspring/decimal"

	"lmt-crm/models"
)

var hundred = decimal.NewFromInt(100)

// Nights derives the night count from the day count the way the
// brochure copy expects ("4 Nights / 5 Days"): one fewer than days,
// never below one.
func Nights(days int) int {
	nights := days - 1
	if nights < 1 {
		nights = 1
	}
	return nights
}

// BaseComponents sums the priced components of a quotation:
// accommodation cost per night times nights, transport cost per day
// times days, plus any flat package cost.
func BaseComponents(in *models.PricingInputs, dayCount int) (accommodation, transport, base int64) {
	days := dayCount
	if days < 1 {
		days = 1
	}
	accommodation = in.AccommodationPerNight * int64(Nights(days))
	transport = in.TransportPerDay * int64(days)
	base = accommodation + transport + in.PackageCost
	return accommodation, transport, base
}

// Derive computes the full quotation breakdown from a base amount and
// the agency markup percentage. Arithmetic runs on decimals; gross and
// discount are rounded to whole currency units first and the net is
// their difference, so the customer-visible breakdown always adds up.
func Derive(base int64, markup decimal.Decimal, discountPercent int64) models.PricingBreakdown {
	baseD := decimal.NewFromInt(base)
	markupAmount := baseD.Mul(markup).Div(hundred)
	gross := baseD.Add(markupAmount).Round(0)
	discount := gross.Mul(decimal.NewFromInt(discountPercent)).Div(hundred).Round(0)

	return models.PricingBreakdown{
		BaseComponents: base,
		MarkupAmount:   markupAmount.Round(0).IntPart(),
		GrossValue:     gross.IntPart(),
		DiscountAmount: discount.IntPart(),
		NetPayable:     gross.Sub(discount).IntPart(),
	}
}

// ComputePricing derives the breakdown for a quotation document using
// the agency-wide markup. Returns nil for the plain itinerary variant.
func ComputePricing(m *models.DocumentModel, markup decimal.Decimal) *models.PricingBreakdown {
	if m.Pricing == nil {
		return nil
	}
	accommodation, transport, base := BaseComponents(m.Pricing, len(m.Days))
	breakdown := Derive(base, markup, m.Pricing.DiscountPercent)
	breakdown.AccommodationTotal = accommodation
	breakdown.TransportTotal = transport
	return &breakdown
}
