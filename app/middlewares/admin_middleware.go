package middlewares

import (
	"log"
	"net/http"
	"slices"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/unrolled/render"
)

func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(helpers.ContextKeyUser).(*models.User)
	return user
}

// APIAuthMiddleware answers 401 JSON for requests without a session user.
func APIAuthMiddleware(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CurrentUser(r) == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, helpers.ErrorResponse{Error: "Silakan login terlebih dahulu."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole answers 403 JSON when the session user holds none of roles.
// It must run after APIAuthMiddleware.
func RequireRole(rnd *render.Render, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r)
			if user == nil || !slices.Contains(roles, user.Role) {
				if user != nil {
					log.Printf("RequireRole: user %s with role %s denied %s %s", user.Email, user.Role, r.Method, r.URL.Path)
				}
				_ = rnd.JSON(w, http.StatusForbidden, helpers.ErrorResponse{Error: "Anda tidak memiliki akses ke fitur ini."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminPageMiddleware redirects anonymous visitors of the admin shell to the
// login page.
func AdminPageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			log.Printf("AdminPageMiddleware: anonymous request to %s, redirecting to login.", r.URL.Path)
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
