package middleware

import (
	"fmt"
	"net/http"

	"github.com/Starlord12336/payrol-ltracking-sub002/internal/domain/approval"
	"github.com/Starlord12336/payrol-ltracking-sub002/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireCapability checks that the access-token role grants a capability.
// Fine-grained per-kind checks still happen inside the workflow service; this
// middleware only rejects requests that could never succeed.
func RequireCapability(capability approval.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", capability))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", capability))
				return
			}

			actor := approval.ActorForRole("", roleStr)
			if !actor.Has(capability) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", capability, roleStr))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
