// Package middleware provides HTTP middleware components.
package middleware

import (
	"math"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/utils"
	"github.com/vivahmatch/backend/internal/utils/ratelimit"
)

// SecurityHeaders sets defensive response headers on every response.
// API responses carry personal data, so they are never cached.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			h.Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			h.Set(constants.HeaderXXSSProtection, constants.XSSProtectionModeBlock)
			h.Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			h.Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)

			if strings.HasPrefix(r.URL.Path, constants.APIBasePath) {
				h.Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
				h.Set(constants.HeaderPragma, constants.PragmaNoCache)
				h.Set(constants.HeaderExpires, constants.ExpiresZero)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit is middleware that limits the rate of requests from clients.
//
// Parameters:
//   - store: The limiter store holding one token bucket per client and category
//   - category: The endpoint category to apply limits for (e.g., "auth", "search")
//
// Returns:
//   - A middleware function that can be used with an HTTP handler
func RateLimit(store *ratelimit.Store, category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			limiter := store.GetLimiter(clientIP, category)
			if !limiter.Allow() {
				retryAfter := int(math.Ceil(limiter.RetryAfter().Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}

				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("category", category).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				utils.TooManyRequests(w, retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP address from the request.
// chi's RealIP middleware has already folded proxy headers into RemoteAddr.
func getClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If there's no port in the address, use it as is
		return r.RemoteAddr
	}
	return ip
}

// isExemptedPath returns true if the path should be exempted from rate limiting
func isExemptedPath(path string) bool {
	exemptPrefixes := []string{
		constants.HealthPath,
		constants.VersionPath,
		constants.DefaultMetricsPath,
	}

	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
