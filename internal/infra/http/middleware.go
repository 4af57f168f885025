package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		route := c.FullPath()
		status := c.Writer.Status()
		if s.metrics != nil {
			s.metrics.ObserveHTTP(c.Request.Method, route, status, elapsed)
		}
		if route == "/healthz" || route == "/metrics" {
			return
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			s.logger.Error("request failed", append(fields, zap.String("error", c.Errors.String()))...)
			return
		}
		s.logger.Info("request", fields...)
	}
}
