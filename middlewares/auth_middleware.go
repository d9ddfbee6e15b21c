package middlewares

import (
	"net/http"
	"strings"

	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

// ProfileIDKey is where the middleware stores the authenticated
// profile id on the gin context.
const ProfileIDKey = "profileID"

// AuthMiddleware requires a valid "Bearer <access token>" header. The
// individual checks are distinct but every failure surfaces as the
// same unauthorized-class response.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Error : Missing Authorization Header provided!")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Error : Auth Token Not Found!")
			return
		}
		if parts[0] != "Bearer" {
			utils.AbortError(c, http.StatusUnauthorized, "Error : Invalid auth method!")
			return
		}

		claims, err := services.VerifyAccessToken(parts[1])
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Error : Invalid token!")
			return
		}

		c.Set(ProfileIDKey, claims.ProfileID)
		c.Next()
	}
}
