package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	rdauth "github.com/rdboard/rd-tracker-backend/internal/auth"
)

type stubVerifier map[string]*auth.Token

func (s stubVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if t, ok := s[token]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := stubVerifier{
		"good": {UID: "uid-1", Claims: map[string]interface{}{"email": "ann@example.com"}},
	}

	r := gin.New()
	r.Use(FirebaseAuthMiddleware(verifier))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": rdauth.UserFirebaseUID(c)})
	})

	cases := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"invalid", "Bearer nope", "", http.StatusUnauthorized},
		{"bearer", "Bearer good", "", http.StatusOK},
		{"query token", "", "?token=good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusOK {
				assert.JSONEq(t, `{"uid":"uid-1"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rdauth.OptionalUser())
	r.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, rdauth.UserFirebaseUID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, "demo-user", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-Id", "ann")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "ann", w.Body.String())
}
