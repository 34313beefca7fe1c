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
	"calsift.app/apps/calsift/internal/selection"
	"calsift.app/apps/calsift/internal/services"
)

func doSelectionPost(
	t *testing.T,
	path string,
	data any,
) services.SelectionState {
	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api%s", testApp.GetName(), path),
	)

	tReq.AddCookie(&accessToken)

	if data != nil {
		tReq.SetContentType(test.FormContentType)
		tReq.SetData(data)
	}

	rs := tReq.Do(t)
	require.Equal(t, http.StatusOK, rs.StatusCode)

	var rsData services.SelectionState
	err := json.NewDecoder(rs.Body).Decode(&rsData)
	require.Nil(t, err)

	return rsData
}

func TestToggleEventHandler(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	state := doSelectionPost(t, "/events/toggle", dtos.ToggleEventDto{
		Title: "Standup",
	})
	assert.Equal(t, []string{"Standup"}, state.EffectiveSelection)
	assert.Equal(t, 1, state.Summary.IndividualCount)
	assert.Equal(t, "1/3 events selected", state.Summary.Text)

	// toggling twice restores the previous state
	state = doSelectionPost(t, "/events/toggle", dtos.ToggleEventDto{
		Title: "Standup",
	})
	assert.Empty(t, state.EffectiveSelection)
	assert.Equal(t, 0, state.Summary.IndividualCount)
}

func TestSelectDeselectEventsHandlers(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	state := doSelectionPost(t, "/events/select", dtos.EventsDto{
		Titles: []string{"Standup", "Retro"},
	})
	assert.Equal(t, []string{"Retro", "Standup"}, state.EffectiveSelection)

	state = doSelectionPost(t, "/events/deselect", dtos.EventsDto{
		Titles: []string{"Standup"},
	})
	assert.Equal(t, []string{"Retro"}, state.EffectiveSelection)
}

func TestToggleSubscriptionHandler(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	state := doSelectionPost(t, "/groups/engineering/toggle-subscription", nil)

	// a subscription covers every member, dead Kickoff included
	assert.Equal(
		t,
		[]string{"Kickoff", "Retro", "Standup"},
		state.EffectiveSelection,
	)
	assert.Equal(t, 1, state.Summary.SubscribedGroupCount)
	assert.Equal(t, 0, state.Summary.IndividualCount)

	// Kickoff has no occurrences and doesn't count towards the summary
	assert.Equal(t, 2, state.Summary.SelectedCount)

	state = doSelectionPost(t, "/groups/engineering/toggle-subscription", nil)
	assert.Empty(t, state.EffectiveSelection)
	assert.Equal(t, 0, state.Summary.SubscribedGroupCount)
}

func TestToggleSubscriptionHandlerUnknownGroup(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf(
			"/%s/api/groups/marketing/toggle-subscription",
			testApp.GetName(),
		),
	)

	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
}

func TestSubscribeSelectHandlers(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	state := doSelectionPost(t, "/groups/engineering/subscribe-select", nil)
	assert.Equal(
		t,
		[]string{"Kickoff", "Retro", "Standup"},
		state.EffectiveSelection,
	)
	assert.Equal(t, 1, state.Summary.SubscribedGroupCount)

	// only the selectable members land in the individual ledger
	assert.Equal(t, 2, state.Summary.IndividualCount)

	state = doSelectionPost(t, "/groups/engineering/unsubscribe-deselect", nil)
	assert.Empty(t, state.EffectiveSelection)
	assert.Equal(t, 0, state.Summary.SubscribedGroupCount)
	assert.Equal(t, 0, state.Summary.IndividualCount)
}

func TestSubscribeAllHandlers(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	state := doSelectionPost(t, "/groups/subscribe-all", nil)
	assert.Equal(
		t,
		[]string{"All Hands", "Kickoff", "Retro", "Standup"},
		state.EffectiveSelection,
	)
	assert.Equal(t, 2, state.Summary.SubscribedGroupCount)
	assert.True(t, state.AllSelected)
	assert.Equal(t, "3/3 Events & All groups", state.Breakdown)

	state = doSelectionPost(t, "/groups/unsubscribe-all", nil)
	assert.Empty(t, state.EffectiveSelection)
	assert.Equal(t, "0/3 Events & No groups", state.Breakdown)
}

func TestSubscribeSelectAllHandlers(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	state := doSelectionPost(t, "/groups/subscribe-select-all", nil)
	assert.Equal(t, 2, state.Summary.SubscribedGroupCount)
	assert.Equal(t, 3, state.Summary.IndividualCount)

	state = doSelectionPost(t, "/groups/unsubscribe-deselect-all", nil)
	assert.Equal(t, 0, state.Summary.SubscribedGroupCount)
	assert.Equal(t, 0, state.Summary.IndividualCount)
}

func TestClearSelectionHandler(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	doSelectionPost(t, "/groups/subscribe-all", nil)
	state := doSelectionPost(t, "/selection/clear", nil)

	assert.Empty(t, state.EffectiveSelection)
	assert.Equal(t, 0, state.Summary.SubscribedGroupCount)
	assert.Equal(t, 0, state.Summary.IndividualCount)
}

func TestSelectionHandler(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodGet,
		fmt.Sprintf("/%s/api/selection", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	require.Equal(t, http.StatusOK, rs.StatusCode)

	var rsData services.SelectionState
	err := json.NewDecoder(rs.Body).Decode(&rsData)
	require.Nil(t, err)

	assert.Equal(t, 3, rsData.Summary.TotalCount)
}

func TestExpansionHandlers(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/expand/groups/toggle", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	tReq.SetContentType(test.FormContentType)
	tReq.SetData(dtos.ToggleExpansionDto{
		ID: "engineering",
	})

	rs := tReq.Do(t)
	require.Equal(t, http.StatusNoContent, rs.StatusCode)

	// expansion is cosmetic, selection is untouched
	var engineering *services.GroupView
	for _, group := range fetchCatalog(t).Catalog {
		if group.ID == "engineering" {
			g := group
			engineering = &g
		}
	}
	require.NotNil(t, engineering)
	assert.True(t, engineering.Expanded)
	assert.Equal(t, selection.GroupNoneSelected, engineering.State)

	tReqCollapse := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/expand/groups/collapse", testApp.GetName()),
	)

	tReqCollapse.AddCookie(&accessToken)

	rs = tReqCollapse.Do(t)
	require.Equal(t, http.StatusNoContent, rs.StatusCode)
}

func TestExpansionHandlerUnknownKind(t *testing.T) {
	ts := calendarServer()
	defer ts.Close()

	connectCalendar(t, ts.URL)

	tReq := test.CreateRequestTester(
		getRoutes(),
		http.MethodPost,
		fmt.Sprintf("/%s/api/expand/columns/all", testApp.GetName()),
	)

	tReq.AddCookie(&accessToken)

	rs := tReq.Do(t)
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
}

func fetchCatalog(t *testing.T) catalogResponse {
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

	return rsData
}
