package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account-api/internal/core/auth"
	resp "account-api/internal/transport/http/response"
)

const keyIdentity = "identity"

// Identity is the verified {id, role} carried by a bearer token.
type Identity struct {
	ID   string
	Role string
}

// TokenVerifier is satisfied by *auth.JWTer.
type TokenVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token. Every failure
// yields the same 401 so callers cannot tell why.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, tok, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
			resp.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := v.Parse(strings.TrimSpace(tok))
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(keyIdentity, Identity{ID: claims.ID, Role: claims.Role})
		c.Next()
	}
}

// Authorize admits only identities whose role equals role exactly. A missing
// identity is denied.
func Authorize(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || role == "" || id.Role != role {
			resp.Abort(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.ID != ""
}
