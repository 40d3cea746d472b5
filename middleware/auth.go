package middleware

import (
	"net/http"
	"strings"

	mechanicRepo "roadcare/database/repository/mechanic"
	"roadcare/models"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// JWTAuthMiddleware validates the bearer token and places the authenticated
// actor in the request context. Mechanic tokens are resolved to their mechanic
// record so downstream checks can compare mechanic ids directly.
func JWTAuthMiddleware(mechanics mechanicRepo.MechanicRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		actor := models.Actor{UserID: subject, Role: models.Role(role)}
		if actor.Role == models.RoleMechanic {
			mech, err := mechanics.GetByUserID(c.Request.Context(), subject)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No mechanic record for this account"})
				return
			}
			actor.MechanicID = mech.ID
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole aborts unless the authenticated actor holds one of the roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}

// GetActor returns the authenticated actor stored by JWTAuthMiddleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
