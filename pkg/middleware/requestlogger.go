package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rohanbadgujar20011/food-delivery-app/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched
// with correlation_id, user_id, and the current trace/span IDs. Handlers
// retrieve it with logger.FromContext. Mount after RequestLogging and
// Tracing so both sources are populated.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := r.Header.Get("X-User-ID"); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
