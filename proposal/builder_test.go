package proposal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmt-crm/models"
)

func TestNewAssignsReferenceAndKind(t *testing.T) {
	itn := New(models.KindItinerary, "Asha Rao")
	require.True(t, strings.HasPrefix(itn.ReferenceID, "LMT-ITN-"))
	assert.Nil(t, itn.Pricing)

	qtn := New(models.KindQuotation, "Asha Rao")
	require.True(t, strings.HasPrefix(qtn.ReferenceID, "LMT-QTN-"))
	require.NotNil(t, qtn.Pricing, "quotations carry pricing inputs from birth")
}

func TestAppendDayNumbersSequentially(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	for i := 0; i < 3; i++ {
		AppendDay(m)
	}
	require.Len(t, m.Days, 3)
	for i, d := range m.Days {
		assert.Equal(t, i+1, d.DayNumber)
		assert.Equal(t, placeholderHeading, d.Heading)
	}
}

func TestAppendDayStopsAtCap(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	for i := 0; i < models.MaxDays+5; i++ {
		AppendDay(m)
	}
	require.Len(t, m.Days, models.MaxDays)
	assert.Equal(t, models.MaxDays, m.Days[len(m.Days)-1].DayNumber)
}

func TestRemoveDayRenumbers(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	for i := 0; i < 4; i++ {
		AppendDay(m)
	}
	m.Days[2].Heading = "Tiger Hill Sunrise"

	require.NoError(t, RemoveDay(m, 1))
	require.Len(t, m.Days, 3)
	for i, d := range m.Days {
		assert.Equal(t, i+1, d.DayNumber)
	}
	assert.Equal(t, "Tiger Hill Sunrise", m.Days[1].Heading, "content follows the entry, not the slot")
}

func TestRemoveDayOutOfRange(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	AppendDay(m)
	err := RemoveDay(m, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDayIndexOutOfRange))
}

func TestToggleTag(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	AppendDay(m)

	require.NoError(t, ToggleTag(m, 0, "Adventure"))
	require.NoError(t, ToggleTag(m, 0, "Culture"))
	assert.Equal(t, []string{"Adventure", "Culture"}, m.Days[0].Tags)

	// Toggling an existing tag removes it, later tags keep their order.
	require.NoError(t, ToggleTag(m, 0, "Adventure"))
	assert.Equal(t, []string{"Culture"}, m.Days[0].Tags)

	require.NoError(t, ToggleTag(m, 0, "Adventure"))
	assert.Equal(t, []string{"Culture", "Adventure"}, m.Days[0].Tags)
}

func TestAttachLeadSnapshots(t *testing.T) {
	m := New(models.KindQuotation, "agent")
	lead := &models.Lead{Name: "Asha Rao", Destination: "Darjeeling", Phone: "+91 98765 43210"}
	AttachLead(m, lead)

	lead.Name = "Changed Later"
	lead.Phone = "000"

	assert.Equal(t, "Asha Rao", m.RecipientName)
	assert.Equal(t, "Darjeeling", m.RecipientDestination)
	assert.Equal(t, "+91 98765 43210", m.RecipientContact)
}

func TestSetDiscountClampsToCeiling(t *testing.T) {
	m := New(models.KindQuotation, "agent")
	require.NoError(t, SetDiscount(m, 40, 15))
	assert.Equal(t, int64(15), m.Pricing.DiscountPercent)

	require.NoError(t, SetDiscount(m, -3, 15))
	assert.Equal(t, int64(0), m.Pricing.DiscountPercent)

	require.NoError(t, SetDiscount(m, 10, 15))
	assert.Equal(t, int64(10), m.Pricing.DiscountPercent)
}

func TestSetDiscountRequiresPricing(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	require.Error(t, SetDiscount(m, 10, 15))
}

func TestNewFromTemplateClones(t *testing.T) {
	a, err := NewFromTemplate("darjeeling-classic", models.KindQuotation, "agent")
	require.NoError(t, err)
	b, err := NewFromTemplate("darjeeling-classic", models.KindQuotation, "agent")
	require.NoError(t, err)

	require.NotEmpty(t, a.Days)
	a.Days[0].Heading = "mutated"
	require.NoError(t, ToggleTag(a, 0, "extra"))

	assert.NotEqual(t, a.Days[0].Heading, b.Days[0].Heading, "template clones must not share day entries")
	assert.NotContains(t, b.Days[0].Tags, "extra")
	assert.NotEqual(t, a.ReferenceID, b.ReferenceID)
}

func TestNewFromTemplateUnknown(t *testing.T) {
	_, err := NewFromTemplate("no-such-template", models.KindItinerary, "agent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
}

func TestNewFromBlueprintRenumbers(t *testing.T) {
	bp := &models.Blueprint{
		ID:    "bp1",
		Title: "Sikkim Circuit",
		Days: []models.DayEntry{
			{DayNumber: 7, Heading: "Arrival"},
			{DayNumber: 2, Heading: "Gangtok"},
		},
	}
	m, err := NewFromBlueprint(bp, models.KindItinerary, "agent")
	require.NoError(t, err)
	require.Len(t, m.Days, 2)
	assert.Equal(t, 1, m.Days[0].DayNumber)
	assert.Equal(t, 2, m.Days[1].DayNumber)
}

func TestRenumberHealsGaps(t *testing.T) {
	m := New(models.KindItinerary, "agent")
	m.Days = []models.DayEntry{{DayNumber: 3}, {DayNumber: 3}, {DayNumber: 9}}
	Renumber(m)
	for i, d := range m.Days {
		if d.DayNumber != i+1 {
			t.Fatalf("day %d numbered %d", i, d.DayNumber)
		}
	}
}
