package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/reflective-room/internal/models"
)

// Audit logs curation actions after successful requests.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if value, ok := c.Get(ContextAdminKey); ok {
			if claims, ok := value.(*models.AdminClaims); ok {
				fields = append(fields, zap.String("token_id", claims.ID))
			}
		}
		if row := c.Param("row"); row != "" {
			fields = append(fields, zap.String("row", row))
		}
		logger.Info("admin action", fields...)
	}
}
