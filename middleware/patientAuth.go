package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sanjudas/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const authCachePrefix = "authClaims:"

// PatientAuthMiddleware resolves the bearer credential into an explicit
// session context and attaches it to the request. Parsed claims are cached in
// Redis keyed by token hash so repeated requests skip signature verification.
// An invalid or expired credential clears any stored session context and
// answers with the session-expired signal.
func PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		tokenHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + tokenHash
		authCache := utils.GetAuthCacheClient()

		var claims *utils.TokenClaims
		if cached, err := authCache.HGetAll(ctx, cacheKey).Result(); err == nil && len(cached) > 0 {
			claims = &utils.TokenClaims{
				PatientID: cached["patientId"],
				Email:     cached["email"],
				Name:      cached["name"],
				Role:      cached["role"],
			}
			_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
		}

		if claims == nil || claims.PatientID == "" {
			parsed, err := utils.ExtractClaimsFromToken(tokenString)
			if err != nil {
				// Expired or forged credential: drop any stored session
				// context and tell the client to run its logout flow.
				utils.JSONSessionExpired(c, "credential expired or invalid")
				c.Abort()
				return
			}
			claims = parsed
			_ = authCache.HSet(ctx, cacheKey, map[string]interface{}{
				"patientId": claims.PatientID,
				"email":     claims.Email,
				"name":      claims.Name,
				"role":      claims.Role,
			}).Err()
			_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
		}

		session := utils.PatientSession{
			PatientID: claims.PatientID,
			Email:     claims.Email,
			Name:      claims.Name,
			Role:      claims.Role,
			Token:     tokenString,
			CreatedAt: time.Now(),
		}
		sessionCache := utils.GetSessionCacheClient()
		if err := utils.SavePatientSession(sessionCache, session); err != nil && err != redis.Nil {
			utils.GetLogger().Warn("failed to persist patient session context")
		}

		c.Set("session", &session)
		c.Next()
	}
}

// SessionFromContext returns the session context attached by the auth
// middleware.
func SessionFromContext(c *gin.Context) (*utils.PatientSession, bool) {
	v, exists := c.Get("session")
	if !exists {
		return nil, false
	}
	session, ok := v.(*utils.PatientSession)
	return session, ok
}
