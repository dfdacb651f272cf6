package proposal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmt-crm/models"
)

var markup25 = decimal.NewFromInt(25)

func TestNights(t *testing.T) {
	assert.Equal(t, 1, Nights(1), "single-day trips still price one night")
	assert.Equal(t, 1, Nights(2))
	assert.Equal(t, 4, Nights(5))
	assert.Equal(t, 1, Nights(0))
}

func TestBaseComponents(t *testing.T) {
	in := &models.PricingInputs{
		AccommodationPerNight: 2500,
		TransportPerDay:       3500,
		PackageCost:           45000,
	}
	accommodation, transport, base := BaseComponents(in, 5)
	assert.Equal(t, int64(10000), accommodation) // 2500 x 4 nights
	assert.Equal(t, int64(17500), transport)     // 3500 x 5 days
	assert.Equal(t, int64(72500), base)
}

func TestDeriveBreakdown(t *testing.T) {
	b := Derive(10000, markup25, 10)
	assert.Equal(t, int64(10000), b.BaseComponents)
	assert.Equal(t, int64(2500), b.MarkupAmount)
	assert.Equal(t, int64(12500), b.GrossValue)
	assert.Equal(t, int64(1250), b.DiscountAmount)
	assert.Equal(t, int64(11250), b.NetPayable)
}

func TestDeriveBreakdownAddsUp(t *testing.T) {
	// 10% of 90625 is 9062.5; the rounded discount must be subtracted
	// from the rounded gross, never rounded independently.
	b := Derive(72500, markup25, 10)
	assert.Equal(t, int64(90625), b.GrossValue)
	assert.Equal(t, int64(9063), b.DiscountAmount)
	assert.Equal(t, int64(81562), b.NetPayable)
	assert.Equal(t, b.GrossValue-b.DiscountAmount, b.NetPayable)
}

func TestDeriveZeroDiscount(t *testing.T) {
	b := Derive(80000, markup25, 0)
	assert.Equal(t, int64(100000), b.GrossValue)
	assert.Equal(t, int64(0), b.DiscountAmount)
	assert.Equal(t, b.GrossValue, b.NetPayable)
}

func TestDeriveIsStable(t *testing.T) {
	// Re-deriving from the same inputs must not drift.
	first := Derive(72500, markup25, 12)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Derive(72500, markup25, 12))
	}
}

func TestComputePricingNilForItinerary(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	AppendDay(m)
	assert.Nil(t, ComputePricing(m, markup25))
}

func TestComputePricingQuotation(t *testing.T) {
	m := New(models.KindQuotation, "agent")
	for i := 0; i < 5; i++ {
		AppendDay(m)
	}
	m.Pricing.AccommodationPerNight = 2500
	m.Pricing.TransportPerDay = 3500
	m.Pricing.PackageCost = 45000
	m.Pricing.DiscountPercent = 10

	b := ComputePricing(m, markup25)
	require.NotNil(t, b)
	assert.Equal(t, int64(10000), b.AccommodationTotal)
	assert.Equal(t, int64(17500), b.TransportTotal)
	assert.Equal(t, int64(72500), b.BaseComponents)
	assert.Equal(t, int64(90625), b.GrossValue)  // 72500 * 1.25
	assert.Equal(t, int64(9063), b.DiscountAmount)
	assert.Equal(t, int64(81562), b.NetPayable) // 90625 - 9063
}
