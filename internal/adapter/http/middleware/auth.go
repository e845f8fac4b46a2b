package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"
)

// CurrentUserKey is where the access gate stores the resolved identity.
const CurrentUserKey = "x-current-user"

const bearerPrefix = "Bearer "

// AccessGate authenticates a request before it reaches business logic. The
// credential must verify cryptographically AND match the token stored for
// the user the claims name; either check failing is unauthorized. One store
// read per gated request, no mutation.
func AccessGate(users port.UserRepository, jwt port.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.AbortWithError(c, domain.Unauthorized("Missing authorization header."))
			return
		}

		if !strings.HasPrefix(bearer, bearerPrefix) {
			helper.AbortWithError(c, domain.Unauthorized("Invalid authorization format."))
			return
		}

		token := strings.TrimPrefix(bearer, bearerPrefix)

		userID, err := jwt.VerifyToken(token)

		if errors.Is(err, auth.ErrInvalidToken) {
			helper.AbortWithError(c, domain.Unauthorized("Invalid token."))
			return
		}

		if err != nil {
			helper.AbortWithError(c, domain.Internal(err))
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)

		if errors.Is(err, domain.ErrNotFound) {
			helper.AbortWithError(c, domain.Unauthorized("Action not allowed."))
			return
		}

		if err != nil {
			helper.AbortWithError(c, domain.Internal(err))
			return
		}

		// Logout clears the stored token, so an old credential can still be
		// well-signed yet no longer name the live session.
		if user.Token == nil || *user.Token != token {
			helper.AbortWithError(c, domain.Unauthorized("Action not allowed."))
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity the access gate attached.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(CurrentUserKey)

	if !ok {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
