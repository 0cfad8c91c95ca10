package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmwadforth/articlehub/internal/authservice"
)

func TestRecoverPanic(t *testing.T) {
	app := newBareApplication(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	rr := httptest.NewRecorder()
	app.recoverPanic(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
}

func TestAuthenticate(t *testing.T) {
	app := newBareApplication(t)

	valid, err := testTokenManager(t).GenerateToken(authservice.Claims{UserID: 42, Username: "writer"})
	require.NoError(t, err)

	otherKey, err := authservice.NewTokenManager("not-the-server-key", "articlehub", "articlehub")
	require.NoError(t, err)
	forged, err := otherKey.GenerateToken(authservice.Claims{UserID: 42, Username: "writer"})
	require.NoError(t, err)

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
		expectedClaims *authservice.Claims
		rejected       bool
	}{
		{
			name:           "no authorization header",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid bearer token",
			header:         "Bearer " + valid.Token,
			expectedStatus: http.StatusOK,
			expectedClaims: &authservice.Claims{UserID: 42, Username: "writer"},
		},
		{
			name:           "lower case scheme",
			header:         "bearer " + valid.Token,
			expectedStatus: http.StatusOK,
			expectedClaims: &authservice.Claims{UserID: 42, Username: "writer"},
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusOK,
			rejected:       true,
		},
		{
			name:           "forged token",
			header:         "Bearer " + forged.Token,
			expectedStatus: http.StatusOK,
			rejected:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *authservice.Claims
			var rejected bool
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = app.contextGetClaims(r)
				rejected = app.contextTokenRejected(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			app.authenticate(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedClaims, seen)
			assert.Equal(t, tc.rejected, rejected)
			assert.Equal(t, "Authorization", rr.Header().Get("Vary"))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := newBareApplication(t)

	handler := app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))

	rr = httptest.NewRecorder()
	req := app.contextSetClaims(httptest.NewRequest(http.MethodPost, "/", nil), &authservice.Claims{UserID: 1})
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestExpiredTokenOnPublicAndProtectedRoutes(t *testing.T) {
	app := newBareApplication(t)

	issuedAt := time.Now().Add(-4 * time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		Issuer:    "articlehub",
		Audience:  jwt.ClaimStrings{"articlehub"},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(authservice.TokenLifetime)),
	}).SignedString([]byte(testAuthKey))
	require.NoError(t, err)

	public := app.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	protected := app.authenticate(app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	public.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid or missing authentication token")
}

func TestRateLimit(t *testing.T) {
	app := newBareApplication(t)
	app.limiter = newIPRateLimiter(1, 2)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	app.limiter.now = func() time.Time { return fixed }

	handler := app.rateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))

	fixed = fixed.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5003"))
}
