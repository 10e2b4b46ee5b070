package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

// ActiveChecker reports whether an account may still use its token.
type ActiveChecker interface {
	IsActive(ctx context.Context, userID uint) (bool, error)
}

// AuthMiddleware validates the Bearer token and attaches the principal.
func AuthMiddleware(secret string, users ActiveChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			return
		}
		claims, err := utils.ParseToken(strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			return
		}

		if users != nil {
			ok, err := users.IsActive(c.Request.Context(), claims.UserID)
			if err != nil {
				resp.ServerError(c, err)
				c.Abort()
				return
			}
			if !ok {
				resp.Forbidden(c, "account inactive")
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

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.CurrentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		resp.Forbidden(c, "forbidden")
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// lets anonymous requests through untouched.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			if claims, err := utils.ParseToken(strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), secret); err == nil {
				utils.SetPrincipal(c, utils.Principal{
					ID:       claims.UserID,
					Username: claims.Username,
					Email:    claims.Email,
					Role:     claims.Role,
				})
			}
		}
		c.Next()
	}
}
