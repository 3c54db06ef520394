package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/mlegrand/equilog-backend/api/responses"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// Recoverer converts handler panics into a 500 envelope. The panic value and
// stack are logged; the client only sees the generic internal error.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				val := recover()
				if val == nil {
					return
				}
				err := fmt.Errorf("panic: %v", val)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic": val,
						"stack": string(debug.Stack()),
					})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
