package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/anush47/salaryapp-backend-go/internal/handler/http/response"
)

type companyIDKey struct{}

// AuthRequired rejects requests without a valid access token and stores
// the token's company_id claim on the context for the handlers.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid access token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid access token")
				return
			}

			ctx := r.Context()
			if companyID, ok := claims["company_id"].(string); ok && companyID != "" {
				ctx = context.WithValue(ctx, companyIDKey{}, companyID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// CompanyIDFromContext returns the company the token is scoped to.
func CompanyIDFromContext(ctx context.Context) (string, bool) {
	companyID, ok := ctx.Value(companyIDKey{}).(string)
	return companyID, ok
}
