// Package middleware carries the HTTP cross-cutting concerns: JWT
// authentication, role and permission gates, and a per-IP rate limiter.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/models"
)

// contextKey keeps request-scoped values from colliding with other packages.
type contextKey string

// UserContextKey holds the validated *models.Claims for the request.
const UserContextKey contextKey = "user"

// Paths reachable without a token.
var openPaths = []string{
	"/api/auth/login",
	"/health",
}

// AuthMiddleware validates bearer tokens and attaches claims to the request.
type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate rejects requests without a valid bearer token, except on the
// open paths. Claims land in the request context under UserContextKey.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isOpenPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			denyJSON(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		claims, err := m.authService.ValidateToken(authHeader)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a handler on the caller's role. Admins pass every gate.
func (m *AuthMiddleware) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserFromContext(r.Context())
			if !ok {
				denyJSON(w, http.StatusUnauthorized, "no user in context")
				return
			}
			if claims.Role != role && claims.Role != models.RoleAdmin {
				denyJSON(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a handler on a named action, resolved through the
// role permission table.
func (m *AuthMiddleware) RequirePermission(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserFromContext(r.Context())
			if !ok {
				denyJSON(w, http.StatusUnauthorized, "no user in context")
				return
			}
			user := models.User{Role: claims.Role}
			if !user.HasPermission(action) {
				denyJSON(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the claims Authenticate stored, if any.
func GetUserFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok
}

func isOpenPath(path string) bool {
	for _, p := range openPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// denyJSON writes a rejection in the same envelope the handlers use.
func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// RateLimitMiddleware is a fixed-window per-IP limiter. Good enough for a
// single instance; a shared store would be needed behind a load balancer.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	requests map[string][]int64
}

func NewRateLimitMiddleware() *RateLimitMiddleware {
	return &RateLimitMiddleware{requests: make(map[string][]int64)}
}

// RateLimit allows maxRequests per client IP within a sliding window of
// windowSeconds.
func (m *RateLimitMiddleware) RateLimit(maxRequests, windowSeconds int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			now := time.Now().Unix()
			windowStart := now - int64(windowSeconds)

			m.mu.Lock()
			kept := m.requests[ip][:0]
			for _, ts := range m.requests[ip] {
				if ts >= windowStart {
					kept = append(kept, ts)
				}
			}
			if len(kept) >= maxRequests {
				m.requests[ip] = kept
				m.mu.Unlock()
				denyJSON(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			m.requests[ip] = append(kept, now)
			m.mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		host = host[:i]
	}
	return host
}
