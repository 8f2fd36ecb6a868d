package middleware

import (
	"wardrobe-assistant/pkg/log"
	"wardrobe-assistant/pkg/scope"
)

type Middleware struct {
	l          log.Logger
	jwtManager scope.Manager
	limiter    *rateLimiter
}

// New creates the HTTP middleware set. jwtManager may be nil, in which case
// Auth trusts the X-User-ID header. requestsPerMin <= 0 disables rate limiting.
func New(l log.Logger, jwtManager scope.Manager, requestsPerMin int) Middleware {
	m := Middleware{
		l:          l,
		jwtManager: jwtManager,
	}
	if requestsPerMin > 0 {
		m.limiter = newRateLimiter(requestsPerMin)
	}
	return m
}
