package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/yahipe-backend/api/responses"
	"github.com/angelmondragon/yahipe-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
)

// maxLoginBody bounds how much of the login body is buffered for the email key.
const maxLoginBody = 8 << 10

// CounterStore increments a windowed counter; pkg/redis.Client satisfies it.
type CounterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(parts ...string) string
}

// LoginRateLimit throttles login attempts per client IP and per email.
type LoginRateLimit struct {
	window     time.Duration
	ipLimit    int64
	emailLimit int64
}

// NewLoginRateLimit reads the limits from configuration.
func NewLoginRateLimit(cfg config.AuthRateLimitConfig) LoginRateLimit {
	return LoginRateLimit{
		window:     cfg.LoginWindow,
		ipLimit:    int64(cfg.LoginIPLimit),
		emailLimit: int64(cfg.LoginEmailLimit),
	}
}

func (p LoginRateLimit) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// Middleware applies the limits using store. A nil store disables limiting, and
// a failing store lets the request through so logins survive a Redis outage.
func (p LoginRateLimit) Middleware(store CounterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !p.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if p.ipLimit > 0 {
				if ip := clientIP(r); ip != "" {
					if !p.allow(ctx, w, store, logg, "ip", store.RateLimitKey("login", "ip", ip), p.ipLimit) {
						return
					}
				}
			}

			if p.emailLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBody))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if email := normalizeEmail(extractEmail(body)); email != "" {
					key := store.RateLimitKey("login", "email", hashValue(email))
					if !p.allow(ctx, w, store, logg, "email", key, p.emailLimit) {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (p LoginRateLimit) allow(ctx context.Context, w http.ResponseWriter, store CounterStore, logg *logger.Logger, scope, key string, limit int64) bool {
	count, err := store.IncrWithTTL(ctx, key, p.window)
	if err != nil {
		if logg != nil {
			logg.Error(logg.WithField(ctx, "scope", scope), "auth.rate_limit.store_failed", err)
		}
		return true
	}
	if count <= limit {
		return true
	}
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(p.window.Seconds()),
		}), "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(p.window.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later"))
	return false
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
