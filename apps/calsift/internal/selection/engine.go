package selection

import (
	"slices"

	"calsift.app/apps/calsift/internal/models"
)

// Engine tracks which recurring events and which whole groups a user has
// chosen. It keeps two independent ledgers: titles picked one by one, and
// group subscriptions that stand for all current and future members of a
// group. The ledgers are only combined at read time (EffectiveSelection).
//
// The engine is plain in-memory state with no locking; callers are expected
// to serialize access (see the session service).
type Engine struct {
	selectedEvents   map[string]bool
	subscribedGroups map[string]bool

	ExpandedGroups ExpansionSet
	ExpandedEvents ExpansionSet
}

func NewEngine() *Engine {
	return &Engine{
		selectedEvents:   make(map[string]bool),
		subscribedGroups: make(map[string]bool),
		ExpandedGroups:   make(ExpansionSet),
		ExpandedEvents:   make(ExpansionSet),
	}
}

// ----------------------
// Individual selection
// ----------------------

// IsSelected only consults the individual ledger; use IsEffectivelySelected
// to also account for group subscriptions.
func (e *Engine) IsSelected(title string) bool {
	return e.selectedEvents[title]
}

// Toggle flips a title in the individual ledger. Any string is accepted,
// even one no known recurring event carries; the engine has no catalog
// reference at mutation time and leaves validation to callers.
func (e *Engine) Toggle(title string) {
	if e.selectedEvents[title] {
		delete(e.selectedEvents, title)
	} else {
		e.selectedEvents[title] = true
	}
}

func (e *Engine) SelectMany(titles []string) {
	for _, title := range titles {
		e.selectedEvents[title] = true
	}
}

func (e *Engine) DeselectMany(titles []string) {
	for _, title := range titles {
		delete(e.selectedEvents, title)
	}
}

// ReplaceSelection swaps the whole individual ledger for exactly the given
// titles. Used when restoring a saved filter.
func (e *Engine) ReplaceSelection(titles []string) {
	e.selectedEvents = make(map[string]bool)
	for _, title := range titles {
		e.selectedEvents[title] = true
	}
}

// SelectedEvents returns the individual ledger as a sorted slice.
func (e *Engine) SelectedEvents() []string {
	titles := []string{}
	for title := range e.selectedEvents {
		titles = append(titles, title)
	}
	slices.Sort(titles)
	return titles
}

func (e *Engine) IndividualCount() int {
	return len(e.selectedEvents)
}

// ----------------------
// Group subscriptions
// ----------------------

func (e *Engine) IsSubscribed(groupID string) bool {
	return e.subscribedGroups[groupID]
}

func (e *Engine) Subscribe(groupID string) {
	e.subscribedGroups[groupID] = true
}

// Unsubscribe removes the standing commitment only. Titles that ended up in
// the individual ledger stay there; the ledgers are independent.
func (e *Engine) Unsubscribe(groupID string) {
	delete(e.subscribedGroups, groupID)
}

func (e *Engine) ToggleSubscription(groupID string) {
	if e.subscribedGroups[groupID] {
		delete(e.subscribedGroups, groupID)
	} else {
		e.subscribedGroups[groupID] = true
	}
}

// SetSubscribedGroups swaps the whole subscription ledger. Used when
// restoring a saved filter.
func (e *Engine) SetSubscribedGroups(groupIDs []string) {
	e.subscribedGroups = make(map[string]bool)
	for _, id := range groupIDs {
		e.subscribedGroups[id] = true
	}
}

// SubscribedGroups returns the subscription ledger as a sorted slice.
func (e *Engine) SubscribedGroups() []string {
	ids := []string{}
	for id := range e.subscribedGroups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Engine) SubscribedGroupCount() int {
	return len(e.subscribedGroups)
}

// ----------------------
// Combined operations
// ----------------------

// SubscribeAndSelect subscribes to the group and also writes its current
// selectable members into the individual ledger. Subscribing alone would
// already make the members effectively selected, but their checkboxes in
// the UI read the individual ledger, so both ledgers are updated in one
// action to keep the per-group classification coherent.
func (e *Engine) SubscribeAndSelect(groupID string, group models.Group) {
	e.Subscribe(groupID)
	e.SelectMany(group.SelectableTitles())
}

func (e *Engine) UnsubscribeAndDeselect(groupID string, group models.Group) {
	e.Unsubscribe(groupID)
	e.DeselectMany(group.SelectableTitles())
}

// ----------------------
// Bulk operations
// ----------------------

// SubscribeToAllGroups replaces the subscription ledger with every group id
// in the catalog.
func (e *Engine) SubscribeToAllGroups(catalog models.Catalog) {
	e.subscribedGroups = make(map[string]bool)
	for groupID := range catalog {
		e.subscribedGroups[groupID] = true
	}
}

func (e *Engine) UnsubscribeFromAllGroups() {
	e.subscribedGroups = make(map[string]bool)
}

func (e *Engine) SubscribeAndSelectAllGroups(catalog models.Catalog) {
	for groupID, group := range catalog {
		e.SubscribeAndSelect(groupID, group)
	}
}

func (e *Engine) UnsubscribeAndDeselectAllGroups(catalog models.Catalog) {
	for groupID, group := range catalog {
		e.UnsubscribeAndDeselect(groupID, group)
	}
}

// ClearSelection empties both ledgers. Expansion state is cosmetic and is
// left alone.
func (e *Engine) ClearSelection() {
	e.selectedEvents = make(map[string]bool)
	e.subscribedGroups = make(map[string]bool)
}
