package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/pkg/session"
)

// ContextSessionKey is the gin context key storing the trainer session.
const ContextSessionKey = "trainerSession"

// Session attaches the trainer credential to every request. The Authorization
// header wins over the stored credential. A request without one proceeds
// anonymously and the primary backend decides whether that is enough.
func Session(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		sess, err := session.Resolve(c.Request.Context(), c.GetHeader("Authorization"), store)
		if err != nil {
			logger.Warn("session store unavailable", zap.Error(err))
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session attached by Session, or an anonymous one.
func SessionFrom(c *gin.Context) session.Session {
	if c == nil {
		return session.Session{}
	}
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return session.Session{}
	}
	sess, ok := value.(session.Session)
	if !ok {
		return session.Session{}
	}
	return sess
}
