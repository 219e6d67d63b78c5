package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// newCORS allows cross-origin POST /generate calls from the configured
// origins. Websocket origins are checked by websocket.Accept instead.
func newCORS(origins []string, logger *slog.Logger) *cors.Cors {
	logger.Debug("CORS configured", "allowed_origins", origins)

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
}

// rateLimiter limits requests per client IP. A zero rps disables it.
type rateLimiter struct {
	rps     rate.Limit
	burst   int
	clients map[string]*rate.Limiter
	mu      sync.Mutex
	logger  *slog.Logger
}

func newRateLimiter(ctx context.Context, rps float64, burst int, logger *slog.Logger) *rateLimiter {
	rl := &rateLimiter{
		rps:     rate.Limit(rps),
		burst:   max(burst, 1),
		clients: make(map[string]*rate.Limiter),
		logger:  logger.With("middleware", "rate_limit"),
	}
	if rps > 0 {
		go rl.cleanupClients(ctx)
	}
	return rl
}

func (rl *rateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.clients[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.clients[ip] = limiter
	}
	return limiter
}

// cleanupClients forgets clients whose bucket has refilled.
func (rl *rateLimiter) cleanupClients(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, limiter := range rl.clients {
				if limiter.TokensAt(now) >= float64(rl.burst) {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.rps <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.getLimiter(ip).Allow() {
			rl.logger.Warn("Rate limit exceeded",
				"client_ip", ip,
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr ("192.168.1.1:12345" -> "192.168.1.1").
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
