package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/interfaces/http/response"
	"ecohub.backend/internal/usecases"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// TokenCookieName is the cookie mirroring the bearer token
	TokenCookieName = "ecohub_token"
	// AccountKey is the context key for the resolved account
	AccountKey = "account"
)

// RequireAuth resolves the bearer token (header or cookie) to the live
// account row and attaches it to the context. The database read happens
// on every call so that suspension takes effect immediately, without a
// token blacklist.
func RequireAuth(authUsecase *usecases.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeTokenInvalid, "Authorization required", domainerrors.ErrTokenInvalid))
			c.Abort()
			return
		}

		account, err := authUsecase.VerifyToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(AccountKey, account)
		c.Next()
	}
}

// RequireRole requires exact role membership. Runs after RequireAuth.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			response.Error(c, domainerrors.TokenInvalid())
			c.Abort()
			return
		}

		for _, role := range roles {
			if account.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin requires the admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.RoleAdmin)
}

// RequirePermission requires the resolved account's role to hold the
// action in the static permission table. Unknown actions are denied.
func RequirePermission(action entities.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			response.Error(c, domainerrors.TokenInvalid())
			c.Abort()
			return
		}

		if !entities.RoleCan(account.Role, action) {
			response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAccount gets the resolved account from context.
func GetAccount(c *gin.Context) (*entities.Account, bool) {
	val, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	account, ok := val.(*entities.Account)
	return account, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}

	if cookie, err := c.Cookie(TokenCookieName); err == nil {
		return cookie
	}

	return ""
}
