package middleware

import (
	"context"
	"learning_path_backend/internal/util"
	"learning_path_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RevocationChecker 判断令牌是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware 校验 Bearer 令牌；revoked 为 nil 时不检查注销
func AuthMiddleware(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" || tokenString == authHeader {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				util.RespondError(c, util.NewStoreError("Failed to verify token", err), "Failed to verify token")
				c.Abort()
				return
			}
			if isRevoked {
				util.Unauthorized(c)
				c.Abort()
				return
			}
		}

		util.SetUserInContext(c, claims)
		c.Next()
	}
}
