// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const (
	SessionKey         = "session"
	SessionIDKey       = "session_id"
	SessionTokenHeader = "X-Session-Token"
)

// Session resolves the storefront session of the request from the session
// cookie or a bearer token. Requests without a valid token get a new session
// and a fresh token in both the cookie and the X-Session-Token header.
func Session(cfg *config.Config, jwtManager *auth.JWTManager, sessions *session.Manager, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if token := sessionToken(c, cfg.Session.CookieName); token != "" {
			claims, err := jwtManager.ValidateSessionToken(token)
			if err != nil {
				logger.WithError(err).Debug("Discarding invalid session token")
			} else {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = auth.NewSessionID()
			token, _, err := jwtManager.GenerateSessionToken(sessionID)
			if err != nil {
				logger.WithError(err).Error("Failed to issue session token")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to start session",
				})
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.Expiry.Seconds()), "/", "", cfg.Session.Secure, true)
			c.Header(SessionTokenHeader, token)
		}

		s, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			logger.WithError(err).Error("Failed to open session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to open session",
			})
			return
		}

		c.Set(SessionKey, s)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if token, err := c.Cookie(cookieName); err == nil {
		return token
	}
	return ""
}

// GetSession returns the session resolved by the Session middleware
func GetSession(c *gin.Context) *session.Session {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	s, _ := value.(*session.Session)
	return s
}
