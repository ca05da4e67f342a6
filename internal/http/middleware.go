package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-blog/internal/logging"
)

// unmatchedRoute labels requests no route matched, keeping arbitrary paths
// out of metric labels.
const unmatchedRoute = "unmatched"

// observe logs each request and records it against its route pattern so
// metric labels do not grow with slugs.
func (api *API) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		requestID := chimiddleware.GetReqID(r.Context())
		ctx := logging.ContextWithFields(r.Context(), map[string]any{"request_id": requestID})

		next.ServeHTTP(ww, r.WithContext(ctx))

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)

		api.logger.WithContext(ctx).Info("http.request",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", took,
		)
		if api.metrics != nil {
			api.metrics.ObserveRequest(r.Method, route, status, took)
		}
	})
}
