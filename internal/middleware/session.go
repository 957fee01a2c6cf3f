package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/internal/service"
)

// ContextSessionKey is the gin context key storing the visitor session.
const ContextSessionKey = "session"

// SessionOptions configures the visitor session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the visitor session from its cookie, minting a new id when
// the cookie is absent or malformed.
func Session(sessions *service.SessionService, opts SessionOptions) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = "rr_session"
	}
	return func(c *gin.Context) {
		id, err := c.Cookie(opts.CookieName)
		if err == nil {
			_, err = uuid.Parse(id)
		}
		if err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, id, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
		}
		c.Set(ContextSessionKey, sessions.Load(c.Request.Context(), id))
		c.Next()
	}
}

// SessionFromContext returns the session resolved by Session.
func SessionFromContext(c *gin.Context) models.SessionContext {
	if value, ok := c.Get(ContextSessionKey); ok {
		if sess, ok := value.(models.SessionContext); ok {
			return sess
		}
	}
	return models.SessionContext{}
}
