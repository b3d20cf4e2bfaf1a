package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/apperr"
)

func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						"request_id", GetRequestID(r.Context()),
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					response.Error(w, apperr.New(apperr.KindInternal, "internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
