package calsift

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/contexttools"

	"calsift.app/apps/calsift/internal/dtos"
	"calsift.app/internal/constants"
	"calsift.app/internal/models"
)

func (app *CalSift) calendarRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST %s/calendar", prefix),
		app.Services.Auth.Access(app.connectCalendarHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/catalog", prefix),
		app.Services.Auth.Access(app.catalogHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/discover", prefix),
		app.Services.Auth.Access(app.discoverHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/state", prefix),
		app.Services.WebSocket.Handler(),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/refresh", prefix),
		app.Services.Auth.Access(app.refreshHandler),
	)
}

func userID(r *http.Request) string {
	user := contexttools.GetValue[models.User](r.Context(), constants.UserContextKey)
	if user == nil {
		panic(errors.New("not signed in"))
	}

	return user.ID
}

func (app *CalSift) connectCalendarHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	var connectCalendarDto dtos.ConnectCalendarDto

	err := httptools.ReadForm(r, &connectCalendarDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := connectCalendarDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	data, err := app.Services.Catalog.FetchICS(
		r.Context(),
		connectCalendarDto.SourceURL,
	)
	if err != nil {
		http.Error(w, "Failed to fetch calendar", http.StatusBadGateway)
		return
	}

	catalog, err := app.Services.Catalog.BuildCatalog(data, time.Now())
	if err != nil {
		http.Error(w, "Failed to parse calendar", http.StatusInternalServerError)
		return
	}

	id := userID(r)
	app.Services.Sessions.ConnectCalendar(id, connectCalendarDto.SourceURL, catalog)

	httptools.WriteJSON(w, http.StatusOK, map[string]any{
		"catalog":   app.Services.Sessions.CatalogView(id),
		"selection": app.Services.Sessions.State(id),
	}, nil)
}

func (app *CalSift) catalogHandler(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	httptools.WriteJSON(w, http.StatusOK, map[string]any{
		"catalog":   app.Services.Sessions.CatalogView(id),
		"selection": app.Services.Sessions.State(id),
	}, nil)
}

func (app *CalSift) discoverHandler(w http.ResponseWriter, r *http.Request) {
	var discoverDto dtos.DiscoverDto

	err := httptools.ReadForm(r, &discoverDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := discoverDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	feeds, err := app.Services.Discover.DiscoverFeeds(discoverDto.PageURL)
	if err != nil {
		http.Error(w, "Failed to fetch page", http.StatusBadGateway)
		return
	}

	httptools.WriteJSON(w, http.StatusOK, feeds, nil)
}

func (app *CalSift) refreshHandler(w http.ResponseWriter, _ *http.Request) {
	for _, id := range app.jobQueue.FetchJobIDs() {
		_, lastRunTime := app.jobQueue.FetchState(id)
		app.Services.WebSocket.PushRefreshState(id, true, lastRunTime)

		app.jobQueue.ForceRun(id)
	}

	w.WriteHeader(http.StatusAccepted)
}
