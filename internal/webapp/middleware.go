package webapp

import (
	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/session"
)

const (
	ctxKeySessionID = "session_id"
	ctxKeyUser      = "session_user"
)

// Session resolves the signed session cookie into a session record and
// stashes both on the request context. An unreadable cookie, an invalid
// token, or an absent record all resolve to a nil user; pages decide for
// themselves what an anonymous request may see.
func Session(codec *session.TokenCodec, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := codec.Parse(cookie.Value)
			if err != nil {
				return next(c)
			}

			c.Set(ctxKeySessionID, sid)
			if record := store.Get(c.Request().Context(), sid); record != nil {
				c.Set(ctxKeyUser, record)
			}
			return next(c)
		}
	}
}

// currentUser returns the session record for the request, or nil.
func currentUser(c echo.Context) *domain.SessionRecord {
	record, _ := c.Get(ctxKeyUser).(*domain.SessionRecord)
	return record
}

// sessionID returns the request's session id, or "".
func sessionID(c echo.Context) string {
	sid, _ := c.Get(ctxKeySessionID).(string)
	return sid
}
