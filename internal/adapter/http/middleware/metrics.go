package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/recyclo/cashbook/internal/infrastructure/metrics"
)

// Metrics creates a middleware recording request counts and durations on
// the shared metrics set.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// idBearingPrefixes are the routes carrying a record ID segment.
var idBearingPrefixes = []string{
	"/api/v1/cashbook/",
	"/api/v1/inventory/purchases/",
}

// normalizePath collapses record IDs to keep label cardinality bounded.
// /api/v1/cashbook/01ABC123 -> /api/v1/cashbook/:id
func normalizePath(path string) string {
	for _, prefix := range idBearingPrefixes {
		rest, found := strings.CutPrefix(path, prefix)
		if !found || rest == "" {
			continue
		}

		head := rest
		suffix := ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			head = rest[:i]
			suffix = rest[i:]
		}

		// Static sub-routes share the prefix with ID routes.
		switch head {
		case "summary", "monthly", "overall", "report":
			return path
		}

		return prefix + ":id" + suffix
	}

	return path
}
