package middleware

import (
	"net/http"

	"github.com/angelmondragon/yahipe-backend/api/responses"
	"github.com/angelmondragon/yahipe-backend/api/validators"
	"github.com/angelmondragon/yahipe-backend/internal/session"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/google/uuid"
)

// SessionHeader carries the handle returned by the login endpoint.
const SessionHeader = "X-Session-Id"

type sessionResolver interface {
	Get(id uuid.UUID) (*session.Session, bool)
}

// Session resolves X-Session-Id into a live session and seeds the request context.
func Session(resolver sessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, err := validators.ParseSessionID(r.Header.Get(SessionHeader))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing or invalid session"))
				return
			}
			sess, ok := resolver.Get(id)
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session not found"))
				return
			}
			user, ok := sess.User()
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session ended"))
				return
			}

			ctx = WithSession(ctx, sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID.String())
				ctx = logg.WithFields(logg.WithUserID(ctx, user.ID), map[string]any{"actor_role": user.Role.String()})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
