package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-connect/config"
	"campus-connect/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// ResponseBody is the JSON envelope every endpoint writes.
type ResponseBody struct {
	Code int32           `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

type envelope struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// Success writes the 200 envelope, optionally with a payload.
func Success(c *gin.Context, data ...any) {
	body := envelope{Code: 200, Msg: "ok"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Created writes the 201 envelope for successful resource creation.
func Created(c *gin.Context, data ...any) {
	body := envelope{Code: 201, Msg: "created"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusCreated, body)
}

// Fail writes the error envelope. Server-side failures (5xx) are reported to
// Sentry; business failures are not.
func Fail(c *gin.Context, err error) {
	FailWithData(c, err, nil)
}

// FailWithData writes the error envelope with an attached payload, e.g. the
// overlapping events of a scheduling conflict.
func FailWithData(c *gin.Context, err error, data any) {
	var respErr *Error
	if !errors.As(err, &respErr) {
		respErr = ErrInternal.WithOrigin(err)
	}

	body := envelope{Code: respErr.Code, Msg: respErr.Message, Data: data}
	// The raw origin is debug-only; release clients only see the message.
	if respErr.Origin != "" && config.Get().Mode == config.ModeDebug {
		body.Origin = respErr.Origin
	}

	c.Set(ErrorContextKey, respErr)
	c.Set(ResponseContextKey, body)

	if respErr.Status() >= http.StatusInternalServerError {
		sentry.CaptureException(c, respErr)
	}

	c.JSON(respErr.Status(), body)
}

// Recovery converts a panic into a 500 envelope. Installed per-request via
// the recovery middleware.
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = errors.New("panic in handler")
		}
		sentry.CaptureException(c, err)
		c.JSON(http.StatusInternalServerError, envelope{
			Code: ErrInternal.Code,
			Msg:  ErrInternal.Message,
		})
		c.Abort()
	}
}
