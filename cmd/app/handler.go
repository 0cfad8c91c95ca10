package main

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/bmwadforth/articlehub/internal/handlers"
)

func (app *application) getArticlesHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("articleId") {
		app.getArticleHandler(w, r)
		return
	}

	resp, err := app.handlers.GetArticles(r.Context(), handlers.GetArticlesRequest{})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readArticleIDParam(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.GetArticle(r.Context(), handlers.GetArticleRequest{ArticleID: id})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	var input handlers.CreateArticleRequest

	if err := app.parseJSON(w, r, &input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.CreateArticle(r.Context(), input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readArticleIDParam(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var input handlers.UpdateArticleRequest
	if err := app.parseJSON(w, r, &input); err != nil {
		app.errorResponse(w, r, err)
		return
	}
	input.ArticleID = id

	resp, err := app.handlers.UpdateArticle(r.Context(), input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getArticleContentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readArticleIDParam(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.GetArticleContent(r.Context(), handlers.GetArticleContentRequest{ArticleID: id})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.writeBlob(w, r, resp.Data)
}

func (app *application) createArticleContentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readArticleIDParam(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.CreateArticleContent(r.Context(), handlers.CreateArticleContentRequest{
		ArticleID:   id,
		ContentType: r.Header.Get("Content-Type"),
		Body:        http.MaxBytesReader(w, r.Body, app.config.Blob.MaxUploadBytes),
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getArticleThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readArticleIDParam(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.GetArticleThumbnail(r.Context(), handlers.GetArticleThumbnailRequest{ArticleID: id})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.writeBlob(w, r, resp.Data)
}

func (app *application) createArticleThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readArticleIDParam(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.CreateArticleThumbnail(r.Context(), handlers.CreateArticleThumbnailRequest{
		ArticleID:   id,
		ContentType: r.Header.Get("Content-Type"),
		Body:        http.MaxBytesReader(w, r.Body, app.config.Blob.MaxUploadBytes),
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input handlers.RegisterUserRequest

	if err := app.parseJSON(w, r, &input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.RegisterUser(r.Context(), input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) issueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input handlers.IssueTokenRequest

	if err := app.parseJSON(w, r, &input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	resp, err := app.handlers.IssueToken(r.Context(), input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// writeBlob streams a stored blob back with its original content type.
func (app *application) writeBlob(w http.ResponseWriter, r *http.Request, blob handlers.Blob) {
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		// headers are already sent, so the client only sees a truncated body
		app.logger.ErrorContext(r.Context(), "could not stream blob", slog.String("uri", r.URL.RequestURI()), slog.String("error", err.Error()))
	}
}
