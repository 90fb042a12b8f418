package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ecohub.backend/internal/config"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/interfaces/http/middleware"
	"ecohub.backend/internal/interfaces/http/response"
	"ecohub.backend/internal/usecases"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	cookieCfg    config.CookieConfig
	cookieMaxAge int
}

// NewAuthHandler creates a new auth handler. cookieMaxAge is in seconds
// and should match the token expiry.
func NewAuthHandler(authUsecase *usecases.AuthUsecase, cookieCfg config.CookieConfig, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		cookieCfg:    cookieCfg,
		cookieMaxAge: cookieMaxAge,
	}
}

// Register handles account registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookie(c, authResponse.Token)

	response.Success(c, http.StatusCreated, authResponse)
}

// Login handles account login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookie(c, authResponse.Token)

	response.Success(c, http.StatusOK, authResponse)
}

// Verify returns the current account, profile and impact snapshot
// GET /api/v1/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.TokenInvalid())
		return
	}

	current, profile, impact, err := h.authUsecase.CurrentAccount(c.Request.Context(), account.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"account": current,
		"profile": profile,
		"impact":  impact,
	})
}

// UpdateProfile updates the allow-listed account and profile fields
// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.TokenInvalid())
		return
	}

	var input entities.UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	updated, profile, err := h.authUsecase.UpdateProfile(c.Request.Context(), account.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"account": updated,
		"profile": profile,
	})
}

// ChangePassword rotates the password after re-verifying the current one
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.TokenInvalid())
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), account.ID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// Logout clears the session cookie. The bearer token itself stays valid
// until expiry; there is no server-side revocation list.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.cookieCfg.Secure, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(middleware.TokenCookieName, token, h.cookieMaxAge, "/", "", h.cookieCfg.Secure, true)
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch h.cookieCfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
