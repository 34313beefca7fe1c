package calsift

import (
	"fmt"
	"net/http"
)

func (app *CalSift) apiRoutes(prefix string, mux *http.ServeMux) {
	apiPrefix := fmt.Sprintf("/%s/api", prefix)
	app.calendarRoutes(apiPrefix, mux)
	app.selectionRoutes(apiPrefix, mux)
	app.filtersRoutes(apiPrefix, mux)
}

func (app *CalSift) Routes(prefix string, mux *http.ServeMux) {
	app.apiRoutes(prefix, mux)
	app.feedRoutes(prefix, mux)
}
