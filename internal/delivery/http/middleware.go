package http

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"blueskyvhs/internal/application/services"
	"blueskyvhs/internal/domain/entities"
)

// sessionCookie is the cookie carrying the opaque session token.
const sessionCookie = "auth"

const userContextKey = "currentUser"

// CurrentUser returns the user the session middleware attached to the
// request, if any.
func CurrentUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(userContextKey).(*entities.User)
	return user, ok
}

// SessionMiddleware resolves the auth cookie into a user record. Both
// variants share the same resolution; they differ only in what happens
// when it fails.
type SessionMiddleware struct {
	auth *services.AuthService
}

func NewSessionMiddleware(auth *services.AuthService) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

func (m *SessionMiddleware) resolve(c echo.Context) (*entities.User, bool) {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	user, err := m.auth.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil, false
	}
	return user, true
}

// RequireUser redirects to the home page when no valid session is
// presented; the handler never runs.
func (m *SessionMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := m.resolve(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/")
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// OptionalUser attaches the user when the session resolves and proceeds
// either way.
func (m *SessionMiddleware) OptionalUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, ok := m.resolve(c); ok {
			c.Set(userContextKey, user)
		}
		return next(c)
	}
}

// RequestLogger writes one "<timestamp>: METHOD /path" line per request
// to stdout and appends it to logPath. A failing append is logged and
// the request continues; the log file never takes the site down.
func RequestLogger(logPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			line := fmt.Sprintf("%s: %s %s",
				time.Now().UTC().Format(time.RFC3339),
				c.Request().Method,
				c.Request().RequestURI,
			)
			log.Println(line)

			if logPath != "" {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					log.Printf("request log: %v", err)
				} else {
					fmt.Fprintln(f, line)
					f.Close()
				}
			}
			return next(c)
		}
	}
}

// Maintenance short-circuits every request with the maintenance banner.
func Maintenance() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return c.HTML(http.StatusServiceUnavailable, "<h1>Maintenance</h1>")
		}
	}
}

// AuthRateLimit limits requests per client IP using a token bucket per
// visitor. Stale visitors are dropped periodically.
func AuthRateLimit(interval time.Duration, burst int) echo.MiddlewareFunc {
	l := newIPRateLimiter(rate.Every(interval), burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.allow(c.RealIP()) {
				return c.String(http.StatusTooManyRequests, "Too many requests, please try again later")
			}
			return next(c)
		}
	}
}

type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	l := &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
	go l.cleanupStaleEntries()
	return l
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (l *ipRateLimiter) cleanupStaleEntries() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-1 * time.Hour)
		for ip, v := range l.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}
