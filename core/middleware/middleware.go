package middleware

import (
	"net/http"
	"time"

	"go-booking-api/core/cache"
	"go-booking-api/core/constants"
	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/core/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	codec      *session.Codec
	cache      cache.Cache
	cookieName string
}

func NewMiddleware(codec *session.Codec, c cache.Cache, cookieName string) *Middleware {
	if cookieName == "" {
		cookieName = "session"
	}
	return &Middleware{codec: codec, cache: c, cookieName: cookieName}
}

func (m *Middleware) CookieName() string {
	return m.cookieName
}

// SessionMiddleware resolves the session cookie into a host id. Requests
// with a missing, invalid, expired or revoked token continue anonymously.
func (m *Middleware) SessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(m.cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			hostID, err := m.codec.Verify(cookie.Value)
			if err != nil {
				logger.Debug("Middleware:Session:Rejected", "error", err)
				return next(c)
			}

			if m.cache != nil {
				revoked, err := m.cache.IsTokenBlacklisted(c.Request().Context(), cookie.Value)
				if err != nil {
					logger.Warn("Middleware:Session:Blacklist:Error", "error", err)
				} else if revoked {
					return next(c)
				}
			}

			c.Set(constants.ContextHostID, hostID)
			c.Set(constants.ContextSessionToken, cookie.Value)
			return next(c)
		}
	}
}

// AuthMiddleware rejects anonymous requests with 401.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := GetHostID(c); !ok {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}

func GetHostID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(constants.ContextHostID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetSessionToken(c echo.Context) string {
	token, _ := c.Get(constants.ContextSessionToken).(string)
	return token
}

// RequestLogger logs one line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			logger.Info("HTTP:Request",
				"method", req.Method,
				"path", c.Path(),
				"uri", req.RequestURI,
				"status", c.Response().Status,
				"latency", time.Since(start).String(),
				"remote_ip", c.RealIP(),
			)
			return nil
		}
	}
}
