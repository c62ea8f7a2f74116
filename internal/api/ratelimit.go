package api

import (
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// rateLimitWrites throttles POST operations per client IP.
// Returns 429 Too Many Requests when limit is exceeded.
func (s *Server) rateLimitWrites(ctx huma.Context, next func(huma.Context)) {
	op := ctx.Operation()
	if s.writeLimiter == nil || op == nil || op.Method != http.MethodPost {
		next(ctx)
		return
	}

	key := clientIP(ctx)
	if !s.writeLimiter.Allow(key) {
		s.logger.Warn("rate limit exceeded",
			"ip", key,
			"operation", op.OperationID,
		)
		s.metrics.RateLimited(op.Path)
		ctx.SetHeader("Retry-After", "60")
		if err := huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "Too many requests. Please try again later."); err != nil {
			s.logger.Error("failed to write rate limit response", "error", err)
		}
		return
	}

	next(ctx)
}

// clientIP keys the limiter on the connection address. Behind a trusted
// proxy, middleware.RealIP has already rewritten it from the proxy headers.
func clientIP(ctx huma.Context) string {
	addr := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
