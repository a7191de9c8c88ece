package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"

// Session attaches a browser session identifier to every request.
//
// The id lives in an HttpOnly cookie; a missing or malformed cookie gets a
// fresh UUID. Handlers read it with SessionID(c).
func Session(cookieName string, maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err == nil {
			if _, perr := uuid.Parse(id); perr != nil {
				err = perr
			}
		}
		if err != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, maxAgeSeconds, "/", "", false, true)
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the id stored by Session, or "" when the middleware did not run.
func SessionID(c *gin.Context) string {
	v, _ := c.Get(SessionIDKey)
	return toString(v)
}
