package middleware

import (
	"strings"

	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer token and gates the route on a minimum role.
func Auth(minRole string) gin.HandlerFunc {
	minRank := model.RoleRank(minRole)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if payload, valid := jwt.ParseToken(token); !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		} else if model.RoleRank(payload.Role) < minRank {
			response.Fail(c, response.ErrUnauthorized)
			c.Abort()
			return
		} else {
			c.Set("payload", payload)
		}
		c.Next()
	}
}
