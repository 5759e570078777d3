package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"asset_manager/internal/models"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint            `json:"uid"`
	Role   models.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// JWT validates the bearer token and verifies the user still exists. The
// parsed claims are stored in the context under "claims".
func JWT(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, "Bearer "))

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole gates a route to the given roles.
func RequireRole(roles ...models.RoleName) gin.HandlerFunc {
	allowed := map[models.RoleName]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := CurrentActor(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "role " + string(claims.Role) + " is not authorized for this action",
			})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the claims set by the JWT middleware, or nil.
func CurrentActor(c *gin.Context) *Claims {
	claimsI, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, ok := claimsI.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
