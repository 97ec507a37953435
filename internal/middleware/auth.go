package middleware

import (
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT.
// Токен берется из заголовка Authorization, для websocket - из query-параметра token.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "token rejected", "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware - как AuthMiddleware, но анонимный запрос пропускается
func OptionalAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := extractToken(c); tokenStr != "" {
			if claims, err := tokens.ParseToken(tokenStr); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		caller := CallerFromContext(c)
		if !caller.Authenticated() {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[caller.Role] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// CallerFromContext собирает идентичность вызывающего; для анонимного запроса - nil
func CallerFromContext(c *gin.Context) *auth.Caller {
	userID := c.GetString(contextkeys.UserIDKey)
	if userID == "" {
		return nil
	}
	return &auth.Caller{
		ID:    userID,
		Role:  models.UserRole(c.GetString(contextkeys.RoleKey)),
		Email: c.GetString(contextkeys.UserEmailKey),
		Name:  c.GetString(contextkeys.UserNameKey),
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(contextkeys.UserIDKey, claims.UserID())
	c.Set(contextkeys.RoleKey, claims.Role)
	c.Set(contextkeys.UserEmailKey, claims.Email)
	c.Set(contextkeys.UserNameKey, claims.Name)

	ctx := logger.WithUserID(c.Request.Context(), claims.UserID())
	ctx = logger.WithRole(ctx, claims.Role)
	c.Request = c.Request.WithContext(ctx)
}
