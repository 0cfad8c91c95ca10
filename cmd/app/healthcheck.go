package main

import (
	"net/http"

	"github.com/bmwadforth/articlehub/internal/handlers"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := handlers.Response[envelope]{
		Status: handlers.StatusSuccess,
		Data: envelope{
			"status": "available",
			"system_info": map[string]string{
				"environment": app.config.Environment,
				"version":     app.config.Version,
			},
		},
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
