package middleware

import (
	"errors"

	apierrors "expense-tracker/internal/errors"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid bearer token and puts
// the caller's identity on the context for handlers
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apierrors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, apierrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apierrors.AuthInvalidToken)
			}

			identity, err := services.IdentityFromClaims(claims)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidToken, apierrors.WithDetails("Invalid user ID in token"))
			}

			c.Set(handlers.UserIDContextKey, identity.UserID)
			c.Set(handlers.IdentityContextKey, identity)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
