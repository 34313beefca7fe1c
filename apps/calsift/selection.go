package calsift

import (
	"fmt"
	"net/http"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"

	"calsift.app/apps/calsift/internal/dtos"
)

//nolint:funlen //route table
func (app *CalSift) selectionRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST %s/events/toggle", prefix),
		app.Services.Auth.Access(app.toggleEventHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/events/select", prefix),
		app.Services.Auth.Access(app.selectEventsHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/events/deselect", prefix),
		app.Services.Auth.Access(app.deselectEventsHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/{id}/toggle-subscription", prefix),
		app.Services.Auth.Access(app.toggleSubscriptionHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/{id}/subscribe-select", prefix),
		app.Services.Auth.Access(app.subscribeSelectHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/{id}/unsubscribe-deselect", prefix),
		app.Services.Auth.Access(app.unsubscribeDeselectHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/subscribe-all", prefix),
		app.Services.Auth.Access(app.subscribeAllHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/unsubscribe-all", prefix),
		app.Services.Auth.Access(app.unsubscribeAllHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/subscribe-select-all", prefix),
		app.Services.Auth.Access(app.subscribeSelectAllHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/groups/unsubscribe-deselect-all", prefix),
		app.Services.Auth.Access(app.unsubscribeDeselectAllHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/selection/clear", prefix),
		app.Services.Auth.Access(app.clearSelectionHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/selection", prefix),
		app.Services.Auth.Access(app.selectionHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/expand/{kind}/toggle", prefix),
		app.Services.Auth.Access(app.toggleExpansionHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/expand/{kind}/all", prefix),
		app.Services.Auth.Access(app.expandAllHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/expand/{kind}/collapse", prefix),
		app.Services.Auth.Access(app.collapseAllHandler),
	)
}

func (app *CalSift) writeSelectionState(w http.ResponseWriter, id string) {
	httptools.WriteJSON(w, http.StatusOK, app.Services.Sessions.State(id), nil)
}

func (app *CalSift) toggleEventHandler(w http.ResponseWriter, r *http.Request) {
	var toggleEventDto dtos.ToggleEventDto

	err := httptools.ReadForm(r, &toggleEventDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := toggleEventDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	id := userID(r)
	app.Services.Sessions.ToggleEvent(id, toggleEventDto.Title)

	app.writeSelectionState(w, id)
}

func (app *CalSift) selectEventsHandler(w http.ResponseWriter, r *http.Request) {
	var eventsDto dtos.EventsDto

	err := httptools.ReadForm(r, &eventsDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	id := userID(r)
	app.Services.Sessions.SelectEvents(id, eventsDto.Titles)

	app.writeSelectionState(w, id)
}

func (app *CalSift) deselectEventsHandler(w http.ResponseWriter, r *http.Request) {
	var eventsDto dtos.EventsDto

	err := httptools.ReadForm(r, &eventsDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	id := userID(r)
	app.Services.Sessions.DeselectEvents(id, eventsDto.Titles)

	app.writeSelectionState(w, id)
}

func (app *CalSift) toggleSubscriptionHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	groupID, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	id := userID(r)
	if !app.Services.Sessions.ToggleGroupSubscription(id, groupID) {
		http.Error(w, "Unknown group", http.StatusNotFound)
		return
	}

	app.writeSelectionState(w, id)
}

func (app *CalSift) subscribeSelectHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	groupID, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	id := userID(r)
	if !app.Services.Sessions.SubscribeAndSelect(id, groupID) {
		http.Error(w, "Unknown group", http.StatusNotFound)
		return
	}

	app.writeSelectionState(w, id)
}

func (app *CalSift) unsubscribeDeselectHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	groupID, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	id := userID(r)
	if !app.Services.Sessions.UnsubscribeAndDeselect(id, groupID) {
		http.Error(w, "Unknown group", http.StatusNotFound)
		return
	}

	app.writeSelectionState(w, id)
}

func (app *CalSift) subscribeAllHandler(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	app.Services.Sessions.SubscribeToAllGroups(id)

	app.writeSelectionState(w, id)
}

func (app *CalSift) unsubscribeAllHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	id := userID(r)
	app.Services.Sessions.UnsubscribeFromAllGroups(id)

	app.writeSelectionState(w, id)
}

func (app *CalSift) subscribeSelectAllHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	id := userID(r)
	app.Services.Sessions.SubscribeAndSelectAllGroups(id)

	app.writeSelectionState(w, id)
}

func (app *CalSift) unsubscribeDeselectAllHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	id := userID(r)
	app.Services.Sessions.UnsubscribeAndDeselectAllGroups(id)

	app.writeSelectionState(w, id)
}

func (app *CalSift) clearSelectionHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	id := userID(r)
	app.Services.Sessions.ClearSelection(id)

	app.writeSelectionState(w, id)
}

func (app *CalSift) selectionHandler(w http.ResponseWriter, r *http.Request) {
	app.writeSelectionState(w, userID(r))
}

func (app *CalSift) toggleExpansionHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	kind, err := parse.URLParam[string](r, "kind", nil)
	if err != nil {
		panic(err)
	}

	var toggleExpansionDto dtos.ToggleExpansionDto

	err = httptools.ReadForm(r, &toggleExpansionDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := toggleExpansionDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	id := userID(r)
	if !app.Services.Sessions.ToggleExpansion(id, kind, toggleExpansionDto.ID) {
		http.Error(w, "Unknown expansion kind", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *CalSift) expandAllHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := parse.URLParam[string](r, "kind", nil)
	if err != nil {
		panic(err)
	}

	if !app.Services.Sessions.ExpandAll(userID(r), kind) {
		http.Error(w, "Unknown expansion kind", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *CalSift) collapseAllHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := parse.URLParam[string](r, "kind", nil)
	if err != nil {
		panic(err)
	}

	if !app.Services.Sessions.CollapseAll(userID(r), kind) {
		http.Error(w, "Unknown expansion kind", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
