// Package response renders errors and shared context values for the gin handlers.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	domainerrors "yamdb/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	loggerKey    = "logger"
	requestIDKey = "request_id"
)

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// Error writes err as the error envelope and aborts the chain. Errors outside the
// domain taxonomy are logged and reported as INTERNAL without their text.
func Error(c *gin.Context, err error) {
	var de *domainerrors.Error
	if !errors.As(err, &de) {
		Logger(c).Error("unhandled error", "error", err, "path", c.FullPath())
		de = domainerrors.Internal("internal server error", err)
	} else if de.Code == domainerrors.CodeInternal || de.Code == domainerrors.CodeTransport {
		Logger(c).Error("request failed", "code", de.Code, "error", err, "path", c.FullPath())
	}

	msg := de.Message
	if msg == "" {
		msg = http.StatusText(de.HTTPStatus())
	}
	c.AbortWithStatusJSON(de.HTTPStatus(), ErrorBody{
		Error:   msg,
		Code:    string(de.Code),
		Details: de.Details,
	})
}

// BadRequest reports a malformed body or parameter.
func BadRequest(c *gin.Context, msg string) {
	Error(c, domainerrors.Validation(msg))
}

func SetLogger(c *gin.Context, logger *slog.Logger) {
	c.Set(loggerKey, logger)
}

// Logger returns the request-scoped logger, or slog.Default outside the middleware chain.
func Logger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

func SetRequestID(c *gin.Context, id string) {
	c.Set(requestIDKey, id)
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
