package models

import "time"

// Filter is a saved selection: the two ledgers plus the source they were
// made against. Restoring a filter rehydrates an engine from these fields.
type Filter struct {
	Token            string    `json:"token"`
	UserID           string    `json:"-"`
	Name             string    `json:"name"`
	SourceURL        string    `json:"sourceUrl"`
	SelectedEvents   []string  `json:"selectedEvents"`
	SubscribedGroups []string  `json:"subscribedGroups"`
	CreatedAt        time.Time `json:"createdAt"`
}
