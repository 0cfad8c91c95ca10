package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bmwadforth/articlehub/internal/authservice"
	"github.com/bmwadforth/articlehub/internal/common"
	"github.com/bmwadforth/articlehub/internal/handlers"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		uri     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.ErrorContext(r.Context(), message, slog.String("method", method), slog.String("uri", uri))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	resp := handlers.Response[any]{Status: handlers.StatusError, Error: message}
	if err := app.writeJSON(w, status, resp, nil); err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// errorResponse maps a service error onto its status code. Anything unrecognised is a 500.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr common.ValidationError
		badRequestErr *badRequestError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &badRequestErr):
		app.badRequestErrorResponse(w, r, err)
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
	case errors.As(err, &maxBytesErr):
		app.writeErrorResponse(w, r, http.StatusRequestEntityTooLarge, "request body is too large")
	case errors.Is(err, common.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, authservice.ErrAuthenticationFailure):
		app.invalidCredentialsErrorResponse(w, r)
	case errors.Is(err, authservice.ErrInvalidToken):
		app.invalidAuthenticationTokenResponse(w, r)
	case errors.Is(err, authservice.ErrDuplicateUsername):
		app.conflictResponse(w, r, map[string]string{"username": "this username is already taken"})
	case errors.Is(err, authservice.ErrDuplicateEmail):
		app.conflictResponse(w, r, map[string]string{"email": "a user with this email address already exists"})
	case errors.Is(err, common.ErrDuplicateKey):
		app.conflictResponse(w, r, "the resource already exists")
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.writeErrorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, message any) {
	app.writeErrorResponse(w, r, http.StatusConflict, message)
}

func (app *application) invalidCredentialsErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid authentication credentials")
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid or missing authentication token")
}

func (app *application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "you must be authenticated to access this resource")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}
