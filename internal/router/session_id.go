package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDContextKey is where the per-session id is exposed to handlers.
const SessionIDContextKey = "session_id"

// SessionIDMiddleware ensures every session carries a stable id. Cookie
// sessions have no server-side identity of their own, and the submit
// handler needs one to reject a second submission while the first is
// still in flight.
func SessionIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		var id string
		if existing, ok := session.Get(SessionIDContextKey).(string); ok && existing != "" {
			id = existing
		} else {
			id = uuid.New().String()
			session.Set(SessionIDContextKey, id)
			if err := session.Save(); err != nil {
				c.AbortWithStatus(500)
				return
			}
		}

		c.Set(SessionIDContextKey, id)
		c.Next()
	}
}
