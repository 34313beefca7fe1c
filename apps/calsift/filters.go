package calsift

import (
	"errors"
	"fmt"
	"net/http"

	httptools "github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"

	"calsift.app/apps/calsift/internal/dtos"
	"calsift.app/apps/calsift/internal/services"
)

func (app *CalSift) filtersRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("POST %s/filters", prefix),
		app.Services.Auth.Access(app.createFilterHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/filters", prefix),
		app.Services.Auth.Access(app.listFiltersHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/filters/{token}/restore", prefix),
		app.Services.Auth.Access(app.restoreFilterHandler),
	)
	mux.HandleFunc(
		fmt.Sprintf("POST %s/filters/{token}/delete", prefix),
		app.Services.Auth.Access(app.deleteFilterHandler),
	)
}

func (app *CalSift) createFilterHandler(w http.ResponseWriter, r *http.Request) {
	var createFilterDto dtos.CreateFilterDto

	err := httptools.ReadForm(r, &createFilterDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := createFilterDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	filter, err := app.Services.Filters.Save(
		r.Context(),
		userID(r),
		createFilterDto.Name,
	)
	if err != nil {
		if errors.Is(err, services.ErrNoCalendarConnected) {
			http.Error(w, "No calendar connected", http.StatusBadRequest)
			return
		}
		panic(err)
	}

	httptools.WriteJSON(w, http.StatusCreated, filter, nil)
}

func (app *CalSift) listFiltersHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := app.Services.Filters.List(r.Context(), userID(r))
	if err != nil {
		panic(err)
	}

	httptools.WriteJSON(w, http.StatusOK, filters, nil)
}

func (app *CalSift) restoreFilterHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	token, err := parse.URLParam[string](r, "token", nil)
	if err != nil {
		panic(err)
	}

	id := userID(r)
	err = app.Services.Filters.Restore(r.Context(), id, token)
	if err != nil {
		http.Error(w, "Filter not found", http.StatusNotFound)
		return
	}

	httptools.WriteJSON(w, http.StatusOK, map[string]any{
		"catalog":   app.Services.Sessions.CatalogView(id),
		"selection": app.Services.Sessions.State(id),
	}, nil)
}

func (app *CalSift) deleteFilterHandler(w http.ResponseWriter, r *http.Request) {
	token, err := parse.URLParam[string](r, "token", nil)
	if err != nil {
		panic(err)
	}

	err = app.Services.Filters.Delete(r.Context(), userID(r), token)
	if err != nil {
		http.Error(w, "Filter not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
