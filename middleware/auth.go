package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/campus-feedback/authenticator"
	"github.com/blogem/campus-feedback/userctx"
)

// AdminGate returns the admin gate bound to the request session
func AdminGate(r *http.Request, verifier authenticator.Verifier) *authenticator.Gate {
	return authenticator.NewGate(session.GetSession(r), verifier)
}

// AdminLoginGate is AdminGate for the login handler. A successful login
// regenerates the session ID before the session is marked authenticated.
func AdminLoginGate(w http.ResponseWriter, r *http.Request, verifier authenticator.Verifier) *authenticator.Gate {
	return AdminGate(r, verifier).WithRenewal(func() (authenticator.SessionStore, error) {
		return session.RegenerateSession(w, r)
	})
}

// Actor puts the acting identity into the request context based on the
// session's admin gate state
func Actor(verifier authenticator.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := userctx.AnonymousActor
			if AdminGate(r, verifier).IsAuthenticated() {
				actor = userctx.AdminActor
			}
			next.ServeHTTP(w, r.WithContext(userctx.SetActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin ensures the admin gate is open.
// Anonymous clients are sent back to the admin login form.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userctx.GetActor(r.Context()) != userctx.AdminActor {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
