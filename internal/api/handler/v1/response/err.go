package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CodeNoCandidatesLeft  = "NO_CANDIDATES_LEFT"
	CodeConcurrencyRetry  = "CONCURRENCY_RETRY"
	CodeIdentityAmbiguous = "IDENTITY_AMBIGUOUS"
)

type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"error"`
	// StartTime is only set when a scheduled game has not started yet.
	StartTime *time.Time `json:"startTime,omitempty"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Message:        err.Error(),
	}
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	return &Err{
		Err:            fmt.Errorf("%s with %s %v not found", resource, field, value),
		HTTPStatusCode: http.StatusNotFound,
		Message:        fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func ErrUserNotFound() *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Message:        "User not found",
	}
}

func ErrConflict(code string) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		Message:        code,
	}
}

func ErrGameClosed() *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		Message:        "Game is closed.",
	}
}

func ErrGameNotStarted(startTime time.Time) *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		Message:        "Game not started yet",
		StartTime:      &startTime,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "wrong credentials",
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "unauthorized",
	}
}

func ErrTooManyRequests() *Err {
	return &Err{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "Too many requests",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "Internal server error",
	}
}
