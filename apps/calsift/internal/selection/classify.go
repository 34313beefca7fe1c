package selection

import (
	"slices"

	"calsift.app/apps/calsift/internal/models"
)

type GroupState string

const (
	GroupSubscribed        GroupState = "subscribed"
	GroupFullySelected     GroupState = "fully_selected"
	GroupPartiallySelected GroupState = "partially_selected"
	GroupNoneSelected      GroupState = "none_selected"
)

// EffectiveSelection is the union of the individual ledger and every member
// of every subscribed group. It is recomputed on each call and never stored.
func (e *Engine) EffectiveSelection(catalog models.Catalog) map[string]bool {
	effective := make(map[string]bool, len(e.selectedEvents))
	for title := range e.selectedEvents {
		effective[title] = true
	}

	for groupID := range e.subscribedGroups {
		group, ok := catalog[groupID]
		if !ok {
			// stale id from a swapped catalog, contributes nothing
			continue
		}

		for _, ev := range group.RecurringEvents {
			effective[ev.Title] = true
		}
	}

	return effective
}

// EffectiveSelectionList is EffectiveSelection as a sorted slice, which is
// what the export payload wants.
func (e *Engine) EffectiveSelectionList(catalog models.Catalog) []string {
	effective := e.EffectiveSelection(catalog)

	titles := []string{}
	for title := range effective {
		titles = append(titles, title)
	}
	slices.Sort(titles)
	return titles
}

// IsEffectivelySelected short-circuits on the first ledger that covers the
// title.
func (e *Engine) IsEffectivelySelected(
	title string,
	catalog models.Catalog,
) bool {
	if e.selectedEvents[title] {
		return true
	}

	for groupID := range e.subscribedGroups {
		group, ok := catalog[groupID]
		if !ok {
			continue
		}

		for _, ev := range group.RecurringEvents {
			if ev.Title == title {
				return true
			}
		}
	}

	return false
}

// AllSelected reports whether every selectable title in the catalog is
// effectively selected. An empty catalog has nothing to be "all selected"
// over and returns false.
func (e *Engine) AllSelected(catalog models.Catalog) bool {
	effective := e.EffectiveSelection(catalog)

	selectable := 0
	for _, group := range catalog {
		for _, ev := range group.RecurringEvents {
			if !ev.IsSelectable() {
				continue
			}

			selectable++
			if !effective[ev.Title] {
				return false
			}
		}
	}

	return selectable > 0
}

// ClassifyGroup derives the UI state of one group. A subscription always
// wins over individual counting: a subscribed group stays "subscribed" even
// when the individual ledger happens to cover every member, because only
// the subscription is forward-proof against new members.
func (e *Engine) ClassifyGroup(groupID string, group models.Group) GroupState {
	if e.subscribedGroups[groupID] {
		return GroupSubscribed
	}

	selectable, selected := 0, 0
	for _, ev := range group.RecurringEvents {
		if !ev.IsSelectable() {
			continue
		}

		selectable++
		if e.selectedEvents[ev.Title] {
			selected++
		}
	}

	switch {
	case selectable > 0 && selected == selectable:
		return GroupFullySelected
	case selected > 0:
		return GroupPartiallySelected
	default:
		return GroupNoneSelected
	}
}
