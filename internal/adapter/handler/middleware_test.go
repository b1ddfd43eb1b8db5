package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fixedVerifier struct{ email string }

func (v fixedVerifier) Verify(string) (string, error) { return v.email, nil }

type adminFunc func(ctx context.Context, email string) (bool, error)

func (f adminFunc) IsAdmin(ctx context.Context, email string) (bool, error) { return f(ctx, email) }

func guarded(checker AdminChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAuth(fixedVerifier{"a@example.com"}), RequireAdmin(checker), func(c *gin.Context) {
		c.String(http.StatusOK, currentEmail(c))
	})
	r.GET("/admin-only", RequireAdmin(checker), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_StoreFailure(t *testing.T) {
	r := guarded(adminFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("server selection timeout")
	}))
	assert.Equal(t, http.StatusInternalServerError, serve(r, "/admin").Code)
}

func TestRequireAdmin_PassesEmailThrough(t *testing.T) {
	var seen string
	r := guarded(adminFunc(func(_ context.Context, email string) (bool, error) {
		seen = email
		return true, nil
	}))
	w := serve(r, "/admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@example.com", seen)
	assert.Equal(t, "a@example.com", w.Body.String())
}

func TestRequireAdmin_WithoutAuthentication(t *testing.T) {
	called := false
	r := guarded(adminFunc(func(context.Context, string) (bool, error) {
		called = true
		return true, nil
	}))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/admin-only").Code)
	assert.False(t, called)
}
