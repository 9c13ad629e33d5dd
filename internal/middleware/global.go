package middleware

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/deppfellow/happy/internal/server"
	"github.com/deppfellow/happy/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows the web frontend origins from config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// BodyLimit rejects request bodies larger than upload.max_body_size with a
// 413.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(global.server.Config.Upload.MaxBodySize)
}

// RequestLogger writes one "API" line per request, leveled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler writes the response after this runs, so a
			// failed request still reports 200 here. Derive the status from
			// the error instead.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = ToHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors for GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: false,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().Err(err).Bytes("stack", stack).Msg("panic recovered")
			return err
		},
	})
}

// Secure adds the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ToHTTPError classifies any error returned by the handler chain.
//
//   - *errs.HTTPError values are used as they are.
//   - Echo errors keep their status: unknown routes, methods, oversized
//     bodies. Echo 5xx become internal errors.
//   - Everything else goes through sqlerr, which turns driver errors into
//     client errors where it can and into internal errors otherwise.
func ToHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch {
		case echoErr.Code == http.StatusNotFound:
			return errs.NewNotFoundError("Route not found", nil)
		case echoErr.Code >= 500:
			return errs.NewInternalError(err)
		default:
			message, _ := echoErr.Message.(string)
			return errs.NewStatusError(echoErr.Code, message)
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalError(err)
}

// GlobalErrorHandler is the final error funnel for the HTTP server. It
// writes the JSON body of the classified error and logs it. Internal
// errors are logged with the original cause and stack, which clients never
// see.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := ToHTTPError(err)
	logger := GetLogger(c)

	if httpErr.Status >= 500 {
		logger.Error().Stack().
			Err(err).
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code).
			Msg(httpErr.Message)
	} else {
		logger.Debug().
			Err(err).
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code).
			Strs("fields", httpErr.Errors.Fields()).
			Msg(httpErr.Message)
	}

	if c.Response().Committed {
		return
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Status)
	} else {
		writeErr = c.JSON(httpErr.Status, httpErr)
	}
	if writeErr != nil {
		logger.Error().Err(fmt.Errorf("write error response: %w", writeErr)).Msg("failed to write error response")
	}
}
