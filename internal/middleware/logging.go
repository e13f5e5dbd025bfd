package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vivahmatch/backend/internal/utils"
)

// RequestLogger logs every completed request with its status and latency
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			utils.LogHTTPRequest(
				middleware.GetReqID(r.Context()),
				r.Method,
				r.URL.Path,
				r.RemoteAddr,
				r.UserAgent(),
				status,
				time.Since(start),
			)
		})
	}
}
