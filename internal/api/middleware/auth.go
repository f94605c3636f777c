package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TeamScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role
// Роль по умолчанию cleaner
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок "+HeaderUserID)
			return
		}

		role := domain.ActorRole(r.Header.Get(HeaderUserRole))
		switch role {
		case "":
			role = domain.RoleCleaner
		case domain.RoleCleaner, domain.RoleOwner, domain.RoleAdmin:
		default:
			handlers.RespondBadRequest(w, "некорректная роль пользователя")
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достаёт пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
