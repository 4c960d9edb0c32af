package middleware

import (
	"net/http"

	"github.com/kliniki/clinic-api/pkg/response"
)

// RequireRoles authorizes the request when the identity's role set
// intersects the allowed set. Each route declares exactly one allowed-role
// set; the token itself is verified once, by Authenticate.
func RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication failed")
				return
			}

			if !identity.HasAnyRole(allowedRoles...) {
				response.Unauthorized(w, "Authorization failed: insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
