package selection

import (
	"fmt"

	"calsift.app/apps/calsift/internal/models"
)

type Summary struct {
	SelectedCount        int    `json:"selectedCount"`
	TotalCount           int    `json:"totalCount"`
	SubscribedGroupCount int    `json:"subscribedGroupCount"`
	IndividualCount      int    `json:"individualCount"`
	Text                 string `json:"text"`
}

// SelectionSummary counts unique selectable titles across the whole
// catalog. A title shared by two groups is one event, so counting walks a
// seen-set instead of summing per group.
func (e *Engine) SelectionSummary(catalog models.Catalog) Summary {
	effective := e.EffectiveSelection(catalog)

	seen := make(map[string]bool)
	total, selected := 0, 0
	for _, group := range catalog {
		for _, ev := range group.RecurringEvents {
			if !ev.IsSelectable() || seen[ev.Title] {
				continue
			}
			seen[ev.Title] = true

			total++
			if effective[ev.Title] {
				selected++
			}
		}
	}

	return Summary{
		SelectedCount:        selected,
		TotalCount:           total,
		SubscribedGroupCount: len(e.subscribedGroups),
		IndividualCount:      len(e.selectedEvents),
		Text:                 fmt.Sprintf("%d/%d events selected", selected, total),
	}
}

// GroupBreakdownSummary renders the short event-and-group fraction shown in
// the header, e.g. "3/12 Events & 1/4 Groups".
func (e *Engine) GroupBreakdownSummary(catalog models.Catalog) string {
	if len(catalog) == 0 {
		return "Calendar is empty"
	}

	summary := e.SelectionSummary(catalog)
	if summary.TotalCount == 0 {
		return "No events selected"
	}

	subscribed := 0
	for groupID := range catalog {
		if e.subscribedGroups[groupID] {
			subscribed++
		}
	}

	groupPart := fmt.Sprintf("%d/%d Groups", subscribed, len(catalog))
	switch subscribed {
	case len(catalog):
		groupPart = "All groups"
	case 0:
		groupPart = "No groups"
	}

	return fmt.Sprintf(
		"%d/%d Events & %s",
		summary.SelectedCount,
		summary.TotalCount,
		groupPart,
	)
}
