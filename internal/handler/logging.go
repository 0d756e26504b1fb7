package handler

import (
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger scopes the context logger to the request id assigned by
// middleware.RequestID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := clog.FromContext(ctx).With("request_id", middleware.GetReqID(ctx), "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(clog.WithLogger(ctx, logger)))
	})
}
