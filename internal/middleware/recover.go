package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"petmate/internal/platform/httpjson"
	"petmate/internal/platform/i18n"
	"petmate/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con nuestro logger
// y responde el mismo cuerpo de error que el resto de la API.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler es un corte intencional del cliente
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})

				if r.Header.Get("Connection") != "Upgrade" {
					httpjson.WriteError(w, r, http.StatusInternalServerError, "internal", i18n.MsgGeneric)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
