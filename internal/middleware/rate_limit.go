package middleware

import (
	"math"
	"net/http"
	"time"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/deppfellow/happy/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// rateLimitVisitorTTL is how long an idle client keeps its token bucket.
const rateLimitVisitorTTL = 3 * time.Minute

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit allows perSecond requests per client IP on the routes it wraps.
// A non-positive rate disables limiting.
func (r *RateLimitMiddleware) Limit(endpoint string, perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(math.Max(1, math.Ceil(perSecond))),
		ExpiresIn: rateLimitVisitorTTL,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewStatusError(http.StatusForbidden, "")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(endpoint)
			GetLogger(c).Warn().Str("endpoint", endpoint).Msg("rate limit exceeded")
			return errs.NewStatusError(http.StatusTooManyRequests, "Too many submissions, try again later")
		},
	})
}

// RecordRateLimitHit reports a denied request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// CreateRate is the configured orphanage submission rate per client.
func (r *RateLimitMiddleware) CreateRate() float64 {
	return r.server.Config.Server.CreateRateLimit
}
