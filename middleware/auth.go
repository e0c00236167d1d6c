package middleware

import (
	"context"
	"net/http"

	"github.com/songurtechnology/wafelinvest/utils"
)

// Actor is the authenticated identity resolved once at the request
// boundary. Role is "user" or "admin"; requests with no valid token never
// reach handlers that require an actor.
type Actor struct {
	ID       uint
	Username string
	Role     string
}

type contextKey string

const actorKey contextKey = "actor"

// ActorFrom returns the actor stored by the auth middleware.
func ActorFrom(r *http.Request) (Actor, bool) {
	a, ok := r.Context().Value(actorKey).(Actor)
	return a, ok
}

func resolveActor(r *http.Request) (Actor, bool) {
	token := utils.BearerToken(r)
	if token == "" {
		return Actor{}, false
	}
	claims, err := utils.ValidateAccessToken(token)
	if err != nil {
		return Actor{}, false
	}

	var id uint
	switch v := claims["id"].(type) {
	case float64:
		id = uint(v)
	case int:
		id = uint(v)
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if id == 0 || username == "" {
		return Actor{}, false
	}
	return Actor{ID: id, Username: username, Role: role}, true
}

// RequireUser admits authenticated actors with the user role.
func RequireUser(next http.Handler) http.Handler {
	return requireRole("user", next)
}

// RequireAdmin admits authenticated actors with the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole("admin", next)
}

// RequireAuth admits any authenticated actor regardless of role.
func RequireAuth(next http.Handler) http.Handler {
	return requireRole("", next)
}

func requireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := resolveActor(r)
		if !ok {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		if role != "" && actor.Role != role {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Access denied",
			})
			return
		}
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
