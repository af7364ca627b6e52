package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recoverer turns a panic into a 500 and logs the stack with the request ID.
// API routes get a JSON body; pages get plain text.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			switch {
			case rec == nil:
				return
			case rec == http.ErrAbortHandler:
				panic(rec)
			}
			slog.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
				slog.String("request_id", chimw.GetReqID(r.Context())),
				slog.String("route", r.Method+" "+r.URL.Path),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))
			const msg = "internal server error"
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, msg, http.StatusInternalServerError)
				return
			}
			writeError(w, msg, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
