package calsift

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/parse"
)

func (app *CalSift) feedRoutes(prefix string, mux *http.ServeMux) {
	// must stay last, catches /{prefix}/{token}.ics
	mux.HandleFunc(fmt.Sprintf("GET /%s/{token}", prefix), app.feedHandler)
}

// feedHandler serves the filtered ICS for a saved filter. It is the one
// unauthenticated endpoint: tokens are unguessable and calendar clients
// can't sign in.
func (app *CalSift) feedHandler(w http.ResponseWriter, r *http.Request) {
	token, err := parse.URLParam[string](r, "token", nil)
	if err != nil {
		http.Error(w, "Invalid feed URL", http.StatusBadRequest)
		return
	}

	token = strings.TrimSuffix(token, ".ics")

	filter, err := app.Services.Filters.Get(r.Context(), token)
	if err != nil {
		http.Error(w, "Feed not found", http.StatusNotFound)
		return
	}

	filtered, err := app.Services.Filters.Render(r.Context(), *filter)
	if err != nil {
		http.Error(w, "Failed to fetch source calendar", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	_, err = w.Write(filtered)
	if err != nil {
		app.logger.Error("Failed to write filtered calendar", "error", err)
	}
}
