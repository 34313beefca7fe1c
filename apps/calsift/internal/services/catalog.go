package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"slices"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"calsift.app/apps/calsift/internal/models"
)

// CatalogService turns a raw ICS source into the group catalog the
// selection engine works against, and renders a filtered ICS back out of
// an effective selection.
type CatalogService struct {
	logger  *slog.Logger
	horizon time.Duration
}

const fallbackGroupName = "Other"

// ============================================================
// Fetch
// ============================================================

func (s *CatalogService) FetchICS(ctx context.Context, url string) ([]byte, error) {
	parsed, err := neturl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar url: %w", err)
	}

	// Allow only HTTP/HTTPS
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", parsed.Scheme)
	}

	// Basic SSRF protection
	host := parsed.Hostname()
	if host == "localhost" ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "172.") {
		return nil, fmt.Errorf("private hosts are not allowed: %s", host)
	}

	client := &http.Client{
		//nolint:mnd // Set a reasonable timeout for fetching external calendars
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", "calsift.app/1.0")
	req.Header.Set("Accept", "text/calendar")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 from calendar: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// ============================================================
// Catalog building
// ============================================================

// BuildCatalog groups VEVENTs by their CATEGORIES values (events without a
// category land in the "Other" group). A recurring event is keyed by
// SUMMARY; its count is the number of occurrences between now and the
// horizon, expanding RRULEs. Series whose occurrences all fall outside the
// window keep a count of zero and are left in the catalog as unselectable.
func (s *CatalogService) BuildCatalog(
	data []byte,
	now time.Time,
) (models.Catalog, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	windowEnd := now.Add(s.horizon)

	type groupEntry struct {
		name   string
		counts map[string]int
		order  []string
	}
	groups := map[string]*groupEntry{}

	for _, comp := range cal.Components {
		ev, ok := comp.(*ics.VEvent)
		if !ok {
			continue
		}

		summaryProp := ev.GetProperty("SUMMARY")
		if summaryProp == nil || summaryProp.Value == "" {
			continue
		}
		summary := summaryProp.Value

		count := s.countOccurrences(ev, now, windowEnd)

		for _, category := range eventCategories(ev) {
			groupID := groupIDFromName(category)

			entry, ok := groups[groupID]
			if !ok {
				entry = &groupEntry{
					name:   category,
					counts: map[string]int{},
				}
				groups[groupID] = entry
			}

			if _, seen := entry.counts[summary]; !seen {
				entry.order = append(entry.order, summary)
			}
			entry.counts[summary] += count
		}
	}

	catalog := models.Catalog{}
	for groupID, entry := range groups {
		group := models.Group{
			ID:              groupID,
			Name:            entry.name,
			RecurringEvents: []models.RecurringEvent{},
		}

		slices.Sort(entry.order)
		for _, title := range entry.order {
			group.RecurringEvents = append(group.RecurringEvents,
				models.RecurringEvent{
					Title:      title,
					EventCount: entry.counts[title],
				})
		}

		catalog[groupID] = group
	}

	return catalog, nil
}

func (s *CatalogService) countOccurrences(
	ev *ics.VEvent,
	from time.Time,
	until time.Time,
) int {
	startProp := ev.GetProperty("DTSTART")
	if startProp == nil {
		return 0
	}

	start, err := parseICSTime(startProp.Value)
	if err != nil {
		return 0
	}

	rruleProp := ev.GetProperty("RRULE")
	if rruleProp == nil {
		if start.Before(from) || start.After(until) {
			return 0
		}
		return 1
	}

	opt, err := rrule.StrToROption(rruleProp.Value)
	if err != nil {
		s.logger.Warn("skipping unparseable RRULE",
			slog.String("rrule", rruleProp.Value),
			slog.String("summary", ev.GetProperty("SUMMARY").Value),
		)
		return 0
	}
	opt.Dtstart = start

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return 0
	}

	return len(rule.Between(from, until, true))
}

func eventCategories(ev *ics.VEvent) []string {
	prop := ev.GetProperty("CATEGORIES")
	if prop == nil || prop.Value == "" {
		return []string{fallbackGroupName}
	}

	categories := []string{}
	for _, category := range strings.Split(prop.Value, ",") {
		category = strings.TrimSpace(category)
		if category != "" {
			categories = append(categories, category)
		}
	}

	if len(categories) == 0 {
		return []string{fallbackGroupName}
	}
	return categories
}

func groupIDFromName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// ============================================================
// Export — IN-PLACE (preserves all timezones)
// ============================================================

// ApplySelection keeps only VEVENTs whose SUMMARY is in the keep set.
// Non-event components (VTIMEZONE etc.) pass through untouched.
func (s *CatalogService) ApplySelection(
	data []byte,
	keep map[string]bool,
) ([]byte, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var newComponents []ics.Component

	for _, comp := range cal.Components {
		ev, ok := comp.(*ics.VEvent)
		if !ok {
			newComponents = append(newComponents, comp)
			continue
		}

		summaryProp := ev.GetProperty("SUMMARY")
		if summaryProp == nil || !keep[summaryProp.Value] {
			continue
		}

		newComponents = append(newComponents, ev)
	}

	cal.Components = newComponents

	return []byte(cal.Serialize()), nil
}

// ============================================================
// ICS TIME PARSER
// ============================================================

func parseICSTime(raw string) (time.Time, error) {
	if t, err := time.Parse("20060102T150405-0700", raw); err == nil {
		return t, nil
	}

	if t, err := time.Parse("20060102T150405Z", raw); err == nil {
		return t, nil
	}

	if t, err := time.Parse("20060102T150405", raw); err == nil {
		return t.In(time.UTC), nil
	}

	if t, err := time.Parse("20060102", raw); err == nil {
		return t.In(time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("cannot parse ICS time: %s", raw)
}
