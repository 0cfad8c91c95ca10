package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/v1/healthcheck", app.healthCheckHandler)

	// articles
	router.HandlerFunc(http.MethodGet, "/api/v1/article", app.getArticlesHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/article", app.requireAuth(app.createArticleHandler))
	router.HandlerFunc(http.MethodPut, "/api/v1/article", app.requireAuth(app.updateArticleHandler))
	router.HandlerFunc(http.MethodGet, "/api/v1/article/content", app.getArticleContentHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/article/content", app.requireAuth(app.createArticleContentHandler))
	router.HandlerFunc(http.MethodGet, "/api/v1/article/thumbnail", app.getArticleThumbnailHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/article/thumbnail", app.requireAuth(app.createArticleThumbnailHandler))

	// auth
	router.HandlerFunc(http.MethodPost, "/api/v1/auth/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/auth/token", app.rateLimit(app.issueTokenHandler))

	handler := app.recoverPanic(app.logRequest(app.authenticate(router)))

	return otelhttp.NewHandler(handler, serviceName)
}
