package middleware

import (
	"github.com/deppfellow/happy/internal/server"
)

// Middlewares groups every middleware component so router setup builds
// them once from the application container.
type Middlewares struct {
	// Global holds the middleware applied to every route plus the global
	// error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer stores a request-scoped logger on each request.
	ContextEnhancer *ContextEnhancer

	// Tracing wires New Relic transactions. It is a no-op without an
	// APM application.
	Tracing *TracingMiddleware

	// RateLimit throttles orphanage submissions per client IP.
	RateLimit *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
