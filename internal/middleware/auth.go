package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/pkg/log"
	"wardrobe-assistant/pkg/response"
)

const (
	scopeKey        = "scope"
	headerUserID    = "X-User-ID"
	headerRequestID = "X-Request-ID"
	bearerPrefix    = "Bearer "
)

// RequestID tags every request with an id, reusing the caller's X-Request-ID.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Auth resolves the caller into a model.Scope.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if m.jwtManager == nil {
			userID := strings.TrimSpace(c.GetHeader(headerUserID))
			if userID == "" {
				response.Unauthorized(c)
				return
			}
			SetScope(c, model.Scope{UserID: userID})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c)
			return
		}

		payload, err := m.jwtManager.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth: %v", err)
			response.Unauthorized(c)
			return
		}

		SetScope(c, model.Scope{UserID: payload.UserID})
		c.Next()
	}
}

// SetScope stores sc on the request.
func SetScope(c *gin.Context, sc model.Scope) {
	c.Set(scopeKey, sc)
}

// GetScope returns the scope stored by Auth.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	if !ok || !sc.Valid() {
		return model.Scope{}, false
	}
	return sc, true
}
