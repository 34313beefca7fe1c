package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"calsift.app/apps/calsift/internal/models"
	"calsift.app/apps/calsift/internal/selection"
)

func TestSelectionSummaryDeduplicatesSharedTitles(t *testing.T) {
	// Standup lives in both g1 and g2 but is one event
	catalog := testCatalog()
	engine := selection.NewEngine()

	summary := engine.SelectionSummary(catalog)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 0, summary.SelectedCount)

	// subscribing to g1 alone already covers Standup; g2 adds nothing
	// for it
	engine.Subscribe("g1")

	summary = engine.SelectionSummary(catalog)
	assert.Equal(t, 2, summary.SelectedCount)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 1, summary.SubscribedGroupCount)
	assert.Equal(t, 0, summary.IndividualCount)
	assert.Equal(t, "2/3 events selected", summary.Text)
}

func TestSelectionSummaryCountsUnknownTitlesAsIndividual(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()
	engine.Toggle("Not In Catalog")

	summary := engine.SelectionSummary(catalog)

	// the stray title sits in the individual ledger but matches nothing
	// selectable
	assert.Equal(t, 1, summary.IndividualCount)
	assert.Equal(t, 0, summary.SelectedCount)
}

func TestGroupBreakdownSummaryEmptyCatalog(t *testing.T) {
	engine := selection.NewEngine()

	assert.Equal(
		t,
		"Calendar is empty",
		engine.GroupBreakdownSummary(models.Catalog{}),
	)
}

func TestGroupBreakdownSummaryNoSelectableEvents(t *testing.T) {
	catalog := models.Catalog{
		"g1": {
			ID:   "g1",
			Name: "Dead",
			RecurringEvents: []models.RecurringEvent{
				{Title: "Old Meeting", EventCount: 0},
			},
		},
	}

	engine := selection.NewEngine()

	assert.Equal(t, "No events selected", engine.GroupBreakdownSummary(catalog))
}

func TestGroupBreakdownSummaryFractions(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()

	assert.Equal(
		t,
		"0/3 Events & No groups",
		engine.GroupBreakdownSummary(catalog),
	)

	engine.Subscribe("g2")
	assert.Equal(
		t,
		"2/3 Events & 1/2 Groups",
		engine.GroupBreakdownSummary(catalog),
	)

	engine.Subscribe("g1")
	assert.Equal(
		t,
		"3/3 Events & All groups",
		engine.GroupBreakdownSummary(catalog),
	)
}
