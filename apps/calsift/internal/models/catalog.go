package models

// RecurringEvent is one named series inside a group. EventCount is the
// number of occurrences inside the catalog horizon; series with a count of
// zero stay in the catalog but are invisible to selection.
type RecurringEvent struct {
	Title      string `json:"title"`
	EventCount int    `json:"eventCount"`
}

func (ev RecurringEvent) IsSelectable() bool {
	return ev.EventCount > 0
}

type Group struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	RecurringEvents []RecurringEvent `json:"recurringEvents"`
}

// SelectableTitles returns the titles of all members with at least one
// occurrence, in member order.
func (g Group) SelectableTitles() []string {
	titles := []string{}
	for _, ev := range g.RecurringEvents {
		if ev.IsSelectable() {
			titles = append(titles, ev.Title)
		}
	}
	return titles
}

// Catalog maps group id to group. It is swapped wholesale when a calendar
// is connected or refreshed; nothing diffs old against new.
type Catalog map[string]Group
