package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the Bearer token, checks its hash against the
// auth cache and loads the account. A cache miss falls back to a database
// lookup and re-primes the cache, so a Redis flush only costs one extra read.
func JWTAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID
		authCache := utils.GetAuthCacheClient()

		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash != computedHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
				return
			}
			_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			c.Set("userID", userID)
			c.Set("userRole", role)
			c.Next()
			return
		}
		if err != redis.Nil {
			logger.Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
		}

		// Cache miss: the signature already proved authenticity, so confirm
		// the account still exists and is allowed in, then re-prime the cache.
		usr, err := repo.GetByID(userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if usr.Status != models.StatusActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is not active"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err(); err != nil {
			logger.Warn("failed to re-prime auth cache", zap.String("user_id", userID), zap.Error(err))
		}

		c.Set("userID", userID)
		c.Set("userRole", usr.Role)
		c.Next()
	}
}
