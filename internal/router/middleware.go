package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inslanka/shop-api/pkg/auth"
	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// AuthRequired validates the access token and stores the caller's
// identity on the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := auth.TokenFromRequest(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(raw, auth.TokenTypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			c.Abort()
			return
		}

		userID, err := bson.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireAction enforces the role policy. Must run after AuthRequired.
func RequireAction(action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ctxRole)
		if !ok || !auth.Allows(role.(models.Role), action) {
			c.JSON(http.StatusForbidden, global.ErrorResponse("You do not have permission to perform this action", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) bson.ObjectID {
	return c.MustGet(ctxUserID).(bson.ObjectID)
}

func currentRole(c *gin.Context) models.Role {
	return c.MustGet(ctxRole).(models.Role)
}
