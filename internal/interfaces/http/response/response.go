package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/pkg/logger"
	"go.uber.org/zap"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error recovers a domain error at the request boundary and maps it to
// a status code and a stable, user-safe payload. Internal causes are
// logged server-side and never echoed to the client.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.InvalidCredentials()
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.TokenExpired()
	case errors.Is(err, domainerrors.ErrTokenInvalid):
		return domainerrors.TokenInvalid()
	case errors.Is(err, domainerrors.ErrAccountSuspended):
		return domainerrors.Suspended()
	case errors.Is(err, domainerrors.ErrPermissionDenied):
		return domainerrors.Forbidden("Insufficient permissions")
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.Validation("Invalid input")
	case errors.Is(err, domainerrors.ErrRateLimited):
		return domainerrors.RateLimited()
	case errors.Is(err, domainerrors.ErrTerminalState):
		return domainerrors.Conflict("State transition not allowed")
	}

	return domainerrors.InternalError(err)
}
