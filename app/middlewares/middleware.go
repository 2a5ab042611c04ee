package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/Rakhulsr/go-kindergarten/app/utils/sessions"
)

// SessionUserMiddleware puts the logged-in user, if any, into the request
// context. A session pointing at a deleted user is cleared.
func SessionUserMiddleware(store sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := store.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("SessionUserMiddleware: Error finding user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				if err := store.ClearUserID(w, r); err != nil {
					log.Printf("SessionUserMiddleware: Error clearing stale session: %v", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
