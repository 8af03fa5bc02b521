package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/templui/cuidador/internal/ui"
)

// Recover turns a panicking handler into a 500 alert. The panic is logged
// at Error, so it reaches Sentry when configured.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			slog.Error("handler panicked",
				"panic", p,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestID(r),
				"stack", string(debug.Stack()),
			)
			ui.RenderAlert(w, r, http.StatusInternalServerError, ui.Alert{
				Title:       "Error",
				Description: "Something went wrong. Please try again.",
			})
		}()

		next.ServeHTTP(w, r)
	})
}
