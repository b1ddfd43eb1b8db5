package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxEmail = "email"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAuth admits requests carrying a valid "Authorization: Bearer" token
// and stores the token's email in the context. No header at all is 401;
// anything unusable is 403.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access"})
			return
		}
		scheme, tokenStr, _ := strings.Cut(header, " ")
		if !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}
		email, err := tokens.Verify(strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}
		c.Set(ctxEmail, email)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. The role is looked up on every
// request, so a demotion takes effect immediately.
func RequireAdmin(users AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ctxEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access"})
			return
		}
		admin, err := users.IsAdmin(c.Request.Context(), email)
		if err != nil {
			log.Printf("admin check for %s: %v", email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}
		c.Next()
	}
}

func currentEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}
