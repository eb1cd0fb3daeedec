package middleware

import (
	"context"
	"strings"

	"agromart/internal/domain"
	"agromart/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// Context keys populated by Authenticate.
const (
	CtxUserID  = "user_id"
	CtxRole    = "role"
	CtxContact = "contact"
	CtxUser    = "user"
)

// UserResolver loads the account behind a token subject.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticate parses the Bearer token when one is present, resolves the
// account behind it, and stores the caller's identity in the request
// context. Requests without a usable token pass through unauthenticated;
// route-level guards decide whether that is acceptable. The gateway performs
// the strict perimeter check, so rejecting here would only duplicate its 401.
func Authenticate(tokens *token.Service, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.Next()
			return
		}

		// The token is only as good as the account behind it. A deleted
		// user's still-unexpired token must not authenticate.
		if users != nil {
			user, err := users.GetByID(c.Request.Context(), userID)
			if err != nil {
				c.Next()
				return
			}
			c.Set(CtxUser, user)
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxContact, claims.Contact)
		c.Next()
	}
}
