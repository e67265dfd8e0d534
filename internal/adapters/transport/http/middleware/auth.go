package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/dto"
	appsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/auth/service"
)

const userIDKey = "userId"

// AuthRequired пропускает дальше только запросы с живым access-токеном.
// Токен берём из cookie, для API-клиентов поддержан и заголовок Authorization.
func AuthRequired(auth appsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := auth.Validate(c.Request.Context(), dto.ValidateDTO{AccessToken: token})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// UserID возвращает идентификатор, положенный AuthRequired.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
