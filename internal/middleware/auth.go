package middleware

import (
	"net/http"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// UserLookup resolves the user behind a session
type UserLookup interface {
	GetUserByID(id string) (*models.User, error)
}

// AuthRequired middleware rejects requests without a valid session
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)

		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse(models.ErrUnauthorized))
			return
		}

		c.Next()
	}
}

// LoadIdentity puts the GitHub identity of the session user into the context.
// A user without a stored token gets no identity; handlers report that as missing GitHub context.
func LoadIdentity(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.Next()
			return
		}

		user, err := users.GetUserByID(session.UserID)
		if err != nil {
			ClearSession(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse(models.ErrUnauthorized))
			return
		}

		if identity := user.Identity(); identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// GetIdentity returns the identity set by LoadIdentity, or nil
func GetIdentity(c *gin.Context) *models.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}

	identity, _ := value.(*models.Identity)
	return identity
}
