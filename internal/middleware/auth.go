package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/response"
)

const (
	ctxUserID   = "userId"
	ctxUserType = "userType"
	ctxUser     = "user"
)

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Query("token")
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Fail(c, http.StatusUnauthorized, response.CodeAuth, "Authorization header or token query parameter required")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			status, code := response.Classify(err)
			if status != http.StatusInternalServerError {
				status = http.StatusUnauthorized
			}
			if code == "user_not_found" {
				code = "invalid_token"
			}
			response.Fail(c, status, code, "Invalid token")
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// RequireStaff lets only field owners and admins through. It must run after
// AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff() {
			response.Error(c, models.ErrForbidden)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetUser attaches user to the request as AuthMiddleware does.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(ctxUserID, user.ID)
	c.Set(ctxUserType, string(user.UserType))
	c.Set(ctxUser, user)
}
