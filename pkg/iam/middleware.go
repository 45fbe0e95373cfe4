package iam

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/luminahr/portal/pkg/kernel"
)

const authLocalKey = "auth"

// TokenMiddleware protege rutas del staff validando el bearer token
type TokenMiddleware struct {
	tokenService TokenService
}

// NewTokenMiddleware crea el middleware de autenticación
func NewTokenMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

// Authenticate valida el token y adjunta el AuthContext al request
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return ErrUnauthorized()
		}

		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		userID := claims.UserID
		authContext := &kernel.AuthContext{
			UserID: &userID,
			Email:  claims.Email,
			Name:   claims.Name,
			Scopes: claims.Scopes,
		}

		c.Locals(authLocalKey, authContext)
		return c.Next()
	}
}

// RequireScope exige un scope específico además de autenticación
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}

		if !authContext.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}

		return c.Next()
	}
}

// GetAuthContext recupera el AuthContext adjuntado por Authenticate
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals(authLocalKey).(*kernel.AuthContext)
	return authContext, ok
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}
	}

	return c.Cookies("access_token")
}
