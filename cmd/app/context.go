package main

import (
	"context"
	"net/http"

	"github.com/bmwadforth/articlehub/internal/authservice"
)

type contextKey string

const (
	claimsContextKey        = contextKey("claims")
	tokenRejectedContextKey = contextKey("token_rejected")
)

func (app *application) contextSetClaims(r *http.Request, claims *authservice.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsContextKey, claims)
	return r.WithContext(ctx)
}

// contextGetClaims returns nil for anonymous requests.
func (app *application) contextGetClaims(r *http.Request) *authservice.Claims {
	claims, ok := r.Context().Value(claimsContextKey).(*authservice.Claims)
	if !ok {
		return nil
	}
	return claims
}

// contextSetTokenRejected marks a request whose Authorization header could not be verified.
func (app *application) contextSetTokenRejected(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), tokenRejectedContextKey, true)
	return r.WithContext(ctx)
}

func (app *application) contextTokenRejected(r *http.Request) bool {
	rejected, _ := r.Context().Value(tokenRejectedContextKey).(bool)
	return rejected
}
