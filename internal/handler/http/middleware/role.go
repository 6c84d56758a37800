package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/user"
	"github.com/rosterlab/shift-backend-go/internal/handler/http/response"
)

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagerPrivilegeRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagerPrivilegeRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleManager && role != user.RoleAdmin {
			response.HandleError(w, user.ErrManagerPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
