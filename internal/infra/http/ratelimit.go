package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sigval/internal/usecase"
)

// admit charges the request against the client's window for the requested
// policy. It writes the error response itself and reports whether the handler
// may continue.
func (s *Server) admit(c *gin.Context, policyName string) bool {
	decision, err := s.validateUC.Admit(c.Request.Context(), c.ClientIP(), policyName)
	writeRateLimitHeaders(c, decision)
	if err != nil {
		writeError(c, err)
		return false
	}
	return true
}

func writeRateLimitHeaders(c *gin.Context, decision usecase.RateLimitDecision) {
	if decision.Limit > 0 {
		c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	}
	if decision.Limit > 0 && decision.Remaining >= 0 {
		c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if decision.ResetAt.IsZero() {
		return
	}
	c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
	if !decision.Allowed {
		retryAfter := int64(time.Until(decision.ResetAt).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
	}
}
