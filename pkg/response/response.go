package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/pkg/apperror"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
)

type ErrorBody struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
}

func build[T any](ctx *gin.Context, status int, success bool, message string, data T, meta interface{}) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   success,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := build(ctx, status, true, message, data, meta)
	ctx.JSON(status, resp)
	return resp
}

// Message writes a success envelope without data.
func Message(ctx *gin.Context, status int, message string) APIResponse[any] {
	return Success[any](ctx, status, nil, message, nil)
}

func errorResponse(ctx *gin.Context, status int, message string, details interface{}) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := build[any](ctx, status, false, "", nil, nil)
	resp.Error = &ErrorBody{Message: message, Details: details}
	return resp
}

// Error writes an error envelope and returns it.
func Error(ctx *gin.Context, status int, message string, details interface{}) APIResponse[any] {
	resp := errorResponse(ctx, status, message, details)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort writes an error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, details interface{}) {
	resp := errorResponse(ctx, status, message, details)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// Fail maps err onto its typed status and message. Untyped errors become a
// generic 500; the cause is logged, never returned.
func Fail(ctx *gin.Context, logger *logrus.Logger, err error) APIResponse[any] {
	e := apperror.From(err)
	if e.Kind == apperror.Internal {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": ctx.GetString("request_id"),
			"path":       ctx.Request.URL.Path,
		})
	}
	return Error(ctx, e.Kind.Status(), e.Message, nil)
}
