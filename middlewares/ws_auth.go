package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/utils"
)

// WSAuthMiddleware reads the JWT from ?token= first (browsers cannot set
// headers on a websocket handshake), then from the Authorization header.
// Deactivated accounts are refused like on the REST routes.
func WSAuthMiddleware(secret string, users ActiveChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing token"})
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}
		if users != nil {
			ok, err := users.IsActive(c.Request.Context(), claims.UserID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
				return
			}
			if !ok {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "account inactive"})
				return
			}
		}
		utils.SetPrincipal(c, utils.Principal{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		})
		c.Next()
	}
}
