package middleware

import (
	"strings"

	domainerrors "yamdb/internal/errors"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/response"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Authenticate resolves an optional bearer token to the current user. Requests
// without an Authorization header continue anonymously; a malformed or invalid
// token is rejected with 401.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// format: "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Error(c, domainerrors.Unauthorized("invalid authorization header format"))
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequirePermission applies the policy to routes whose decision does not depend on
// an object owner.
func RequirePermission(res policy.Resource, act policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Enforce(policy.SubjectOf(CurrentUser(c)), res, act, ""); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
