package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/metrics"
	"github.com/azniosman/Project-Fortress/internal/models"
	"github.com/azniosman/Project-Fortress/internal/ratelimit"
)

const (
	GeneralLimitMessage = "Too many payment requests from this IP, please try again later"
	FailedLimitMessage  = "Too many failed payment attempts from this IP, please try again after an hour"
)

// RateLimit enforces the general per-IP limit on every request entering the
// payment routes.
func RateLimit(general *ratelimit.Limiter, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := general.Allow(c.Request.Context(), c.ClientIP())
		setRateLimitHeaders(c, res)

		if !res.Allowed {
			m.RateLimitRejections.WithLabelValues(general.Tier()).Inc()
			logger.Warn("rate limit exceeded",
				zap.String("tier", general.Tier()),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.NewErrorResponse(GeneralLimitMessage))
			return
		}

		c.Next()
	}
}

// FailedAttemptGuard enforces the stricter failed-attempt tier on payment
// creation. The counter only moves on failures: the request is checked up
// front and counted afterwards if anything went wrong, validation and gateway
// rejections alike.
func FailedAttemptGuard(failed *ratelimit.Limiter, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		res := failed.Check(c.Request.Context(), ip)
		if !res.Allowed {
			setRateLimitHeaders(c, res)
			m.RateLimitRejections.WithLabelValues(failed.Tier()).Inc()
			logger.Warn("failed attempt limit exceeded",
				zap.String("tier", failed.Tier()),
				zap.String("client_ip", ip),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.NewErrorResponse(FailedLimitMessage))
			return
		}

		c.Next()

		// The error middleware downstream may not have written the response
		// yet, so consult attached errors as well as the status.
		if c.Writer.Status() >= http.StatusBadRequest || len(c.Errors) > 0 {
			failed.Record(c.Request.Context(), ip)
		}
	}
}

func setRateLimitHeaders(c *gin.Context, res ratelimit.Result) {
	c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
	c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))

	reset := int64(time.Until(res.ResetAt).Seconds())
	if reset < 0 {
		reset = 0
	}
	c.Header("RateLimit-Reset", strconv.FormatInt(reset, 10))
}
