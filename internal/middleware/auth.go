package middleware

import (
	"poe_tracker_backend/internal/config"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// ActiveChecker is the slice of the user store the middleware needs to
// reject tokens of deactivated accounts.
type ActiveChecker interface {
	FindByID(id uint) (*model.User, error)
}

func AuthMiddleware(cfg *config.Config, users ActiveChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		// A token survives deactivation; the account flag does not.
		user, err := users.FindByID(claims.UserID)
		if err != nil || !user.Active {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			// Async update, does not block the request.
			go repo.UpdateLastSeen(claims.UserID)
		}
		c.Next()
	}
}
