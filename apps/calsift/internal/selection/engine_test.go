package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"calsift.app/apps/calsift/internal/models"
	"calsift.app/apps/calsift/internal/selection"
)

func testCatalog() models.Catalog {
	return models.Catalog{
		"g1": {
			ID:   "g1",
			Name: "Work",
			RecurringEvents: []models.RecurringEvent{
				{Title: "Standup", EventCount: 12},
				{Title: "Retro", EventCount: 4},
				{Title: "Cancelled Sync", EventCount: 0},
			},
		},
		"g2": {
			ID:   "g2",
			Name: "Team",
			RecurringEvents: []models.RecurringEvent{
				{Title: "Standup", EventCount: 12},
				{Title: "Planning", EventCount: 2},
			},
		},
	}
}

func TestToggle(t *testing.T) {
	engine := selection.NewEngine()

	assert.False(t, engine.IsSelected("Standup"))

	engine.Toggle("Standup")
	assert.True(t, engine.IsSelected("Standup"))

	engine.Toggle("Standup")
	assert.False(t, engine.IsSelected("Standup"))
	assert.Equal(t, 0, engine.IndividualCount())
}

func TestDoubleToggleRestoresPriorState(t *testing.T) {
	engine := selection.NewEngine()
	engine.SelectMany([]string{"Retro", "Planning"})

	before := engine.SelectedEvents()

	engine.Toggle("Standup")
	engine.Toggle("Standup")

	assert.Equal(t, before, engine.SelectedEvents())
}

func TestToggleAcceptsUnknownTitles(t *testing.T) {
	engine := selection.NewEngine()

	// The engine has no catalog reference at mutation time; arbitrary
	// strings land in the ledger and in the effective selection even
	// though they render to nothing.
	engine.Toggle("Not A Real Event")

	assert.True(t, engine.IsSelected("Not A Real Event"))
	assert.True(
		t,
		engine.EffectiveSelection(testCatalog())["Not A Real Event"],
	)
}

func TestSelectManyIsIdempotent(t *testing.T) {
	engine := selection.NewEngine()

	engine.SelectMany([]string{"Standup", "Retro"})
	engine.SelectMany([]string{"Standup", "Planning"})

	assert.Equal(
		t,
		[]string{"Planning", "Retro", "Standup"},
		engine.SelectedEvents(),
	)
}

func TestDeselectManyIgnoresAbsentTitles(t *testing.T) {
	engine := selection.NewEngine()
	engine.SelectMany([]string{"Standup"})

	engine.DeselectMany([]string{"Standup", "Never Selected"})

	assert.Equal(t, []string{}, engine.SelectedEvents())
}

func TestReplaceSelection(t *testing.T) {
	engine := selection.NewEngine()
	engine.SelectMany([]string{"Standup", "Retro"})

	engine.ReplaceSelection([]string{"Planning"})

	assert.Equal(t, []string{"Planning"}, engine.SelectedEvents())
}

func TestUnsubscribeLeavesIndividualLedgerAlone(t *testing.T) {
	engine := selection.NewEngine()
	engine.SelectMany([]string{"Standup"})
	engine.Subscribe("g1")

	engine.Unsubscribe("g1")

	assert.False(t, engine.IsSubscribed("g1"))
	assert.True(t, engine.IsSelected("Standup"))
}

func TestToggleSubscription(t *testing.T) {
	engine := selection.NewEngine()

	engine.ToggleSubscription("g1")
	assert.True(t, engine.IsSubscribed("g1"))

	engine.ToggleSubscription("g1")
	assert.False(t, engine.IsSubscribed("g1"))
}

func TestSubscribeAndSelect(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()

	engine.SubscribeAndSelect("g1", catalog["g1"])

	assert.True(t, engine.IsSubscribed("g1"))
	// zero-count members never enter the individual ledger
	assert.Equal(t, []string{"Retro", "Standup"}, engine.SelectedEvents())
}

func TestSubscribeAndSelectRoundTrip(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()
	engine.Toggle("Planning")

	selectedBefore := engine.SelectedEvents()
	subscribedBefore := engine.SubscribedGroups()

	engine.SubscribeAndSelect("g1", catalog["g1"])
	engine.UnsubscribeAndDeselect("g1", catalog["g1"])

	assert.Equal(t, selectedBefore, engine.SelectedEvents())
	assert.Equal(t, subscribedBefore, engine.SubscribedGroups())
}

func TestSubscribeToAllGroupsReplaces(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()
	engine.Subscribe("gone-group")

	engine.SubscribeToAllGroups(catalog)

	assert.Equal(t, []string{"g1", "g2"}, engine.SubscribedGroups())
}

func TestUnsubscribeFromAllGroups(t *testing.T) {
	engine := selection.NewEngine()
	engine.Subscribe("g1")
	engine.Toggle("Standup")

	engine.UnsubscribeFromAllGroups()

	assert.Equal(t, []string{}, engine.SubscribedGroups())
	assert.True(t, engine.IsSelected("Standup"))
}

func TestSubscribeAndSelectAllGroups(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()

	engine.SubscribeAndSelectAllGroups(catalog)

	assert.Equal(t, []string{"g1", "g2"}, engine.SubscribedGroups())
	assert.Equal(
		t,
		[]string{"Planning", "Retro", "Standup"},
		engine.SelectedEvents(),
	)

	engine.UnsubscribeAndDeselectAllGroups(catalog)

	assert.Equal(t, []string{}, engine.SubscribedGroups())
	assert.Equal(t, []string{}, engine.SelectedEvents())
}

func TestClearSelection(t *testing.T) {
	catalog := testCatalog()
	engine := selection.NewEngine()
	engine.SubscribeAndSelectAllGroups(catalog)
	engine.ExpandedGroups.Toggle("g1")

	engine.ClearSelection()

	assert.Equal(t, 0, engine.IndividualCount())
	assert.Equal(t, 0, engine.SubscribedGroupCount())
	// expansion state is cosmetic and survives a clear
	assert.True(t, engine.ExpandedGroups.IsExpanded("g1"))
	assert.False(t, engine.AllSelected(catalog))
}

func TestExpansionSetsAreIndependent(t *testing.T) {
	engine := selection.NewEngine()

	engine.ExpandedGroups.Toggle("g1")
	engine.ExpandedEvents.ExpandAll([]string{"Standup", "Retro"})

	assert.True(t, engine.ExpandedGroups.IsExpanded("g1"))
	assert.False(t, engine.ExpandedEvents.IsExpanded("g1"))
	assert.True(t, engine.ExpandedEvents.IsExpanded("Standup"))

	engine.ExpandedEvents.CollapseAll()

	assert.False(t, engine.ExpandedEvents.IsExpanded("Standup"))
	assert.True(t, engine.ExpandedGroups.IsExpanded("g1"))
}
