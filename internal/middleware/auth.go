package middleware

import (
	"first20_backend/internal/util"
	"first20_backend/pkg/logger"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
			return strings.TrimSpace(authHeader[7:])
		}
		return ""
	}
	// 日历应用只能通过 URL 携带令牌
	return c.Query("token")
}

// AuthMiddleware rejects requests without a valid access token and stores
// the claims under util.ContextUserKey.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Error(c, 401, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware records last_seen at most once per interval per user.
func ActivityMiddleware(repo UserActivityRepo, interval time.Duration) gin.HandlerFunc {
	var seen sync.Map
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			now := time.Now()
			if last, ok := seen.Load(claims.UserID); !ok || now.Sub(last.(time.Time)) >= interval {
				seen.Store(claims.UserID, now)
				// 异步更新，不阻塞主流程
				go func(id uint) {
					if err := repo.UpdateLastSeen(id); err != nil {
						logger.Log.Warn("update last seen failed", zap.Uint("user_id", id), zap.Error(err))
					}
				}(claims.UserID)
			}
		}
		c.Next()
	}
}
