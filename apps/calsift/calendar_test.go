package calsift_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/test"

	"calsift.app/apps/calsift/internal/dtos"
	"calsift.app/apps/calsift/internal/services"
	"calsift.app/apps/calsift/pkg/discover"
)

type catalogResponse struct {
	Catalog   []services.GroupView    `json:"catalog"`
	Selection services.SelectionState `json:"selection"`
}

func connectCalendar(t *testing.T, sourceURL string) catalogResponse {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/calendar", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(dtos.ConnectCalendarDto{
		SourceURL: sourceURL,
	})

	rs := tReq.Do(t)
	require.Equal(t, http.StatusOK, rs.StatusCode)

	var rsData catalogResponse
	err := json.NewDecoder(rs.Body).Decode(&rsData)
	require.Nil(t, err)

	return rsData
}

func TestConnectCalendarHandler(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	rsData := connectCalendar(t, ts.URL)

	require.Len(t, rsData.Catalog, 2)

	// sorted by group name
	assert.Equal(t, "Company", rsData.Catalog[0].Name)
	assert.Equal(t, "Engineering", rsData.Catalog[1].Name)

	engineering := rsData.Catalog[1]
	assert.Equal(t, "engineering", engineering.ID)
	require.Len(t, engineering.Events, 3)
	assert.Equal(t, "Kickoff", engineering.Events[0].Title)
	assert.Equal(t, 0, engineering.Events[0].EventCount)
	assert.Equal(t, "Retro", engineering.Events[1].Title)
	assert.Positive(t, engineering.Events[1].EventCount)
	assert.Equal(t, "Standup", engineering.Events[2].Title)
	assert.Positive(t, engineering.Events[2].EventCount)

	// connecting starts from a clean slate
	assert.Empty(t, rsData.Selection.EffectiveSelection)
	assert.Equal(t, 0, rsData.Selection.Summary.SelectedCount)
	assert.Equal(t, 3, rsData.Selection.Summary.TotalCount)
}

func TestConnectCalendarHandlerUnreachableSource(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/calendar", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(dtos.ConnectCalendarDto{
		SourceURL: "https://localhost/nope.ics",
	})

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusBadGateway, rs.StatusCode)
}

func TestCatalogHandler(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/catalog", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	require.Equal(t, http.StatusOK, rs.StatusCode)

	var rsData catalogResponse
	err := json.NewDecoder(rs.Body).Decode(&rsData)
	require.Nil(t, err)

	assert.Len(t, rsData.Catalog, 2)
}

func TestDiscoverHandler(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/discover", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(dtos.DiscoverDto{
		PageURL: "https://example.com/calendars",
	})

	rs := tReq.Do(t)
	require.Equal(t, http.StatusOK, rs.StatusCode)

	var rsData []discover.Feed
	err := json.NewDecoder(rs.Body).Decode(&rsData)
	require.Nil(t, err)

	// the mock links the team feed twice, the duplicate is dropped
	require.Len(t, rsData, 2)
	assert.Equal(t, "https://example.com/team.ics", rsData[0].URL)
	assert.Equal(t, "https://example.com/holidays.ics", rsData[1].URL)
}

func TestRefreshHandler(t *testing.T) {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/refresh", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusAccepted, rs.StatusCode)
}
