package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/response"
)

type principalKey struct{}

// Auth validates the Bearer token and stores the resulting Principal in the
// request context. Downstream handlers read it with PrincipalFromCtx and pass
// it explicitly into service calls; services never reach into ambient state.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		if token == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		p := auth.Principal{UserID: claims.UserID, Role: claims.Role}
		ctx := context.WithValue(r.Context(), principalKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromCtx returns the authenticated Principal stored by Auth.
func PrincipalFromCtx(r *http.Request) (auth.Principal, bool) {
	p, ok := r.Context().Value(principalKey{}).(auth.Principal)
	return p, ok
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	p, ok := PrincipalFromCtx(r)
	return p.UserID, ok
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	p, ok := PrincipalFromCtx(r)
	return p.Role, ok
}
