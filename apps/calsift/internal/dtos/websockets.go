package dtos

import (
	"time"
)

type SubscribeDto struct {
	Subject string `json:"subject"`
}

// RefreshStateDto tells clients whether a catalog rebuild is in flight
// and when the last one finished.
type RefreshStateDto struct {
	LastRefresh  *time.Time `json:"lastRefresh"`
	IsRefreshing bool       `json:"isRefreshing"`
}

func (dto SubscribeDto) Topic() string {
	return dto.Subject
}

func (dto SubscribeDto) Validate() (bool, map[string]string) {
	return true, make(map[string]string)
}
