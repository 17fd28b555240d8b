package controller

import (
	"net/http"
	"time"

	"go-booking-api/core/errors"
	"go-booking-api/core/logger"

	"github.com/labstack/echo/v4"
)

// Response types
type (
	ErrorResponse struct {
		Error     string           `json:"error"`
		Code      errors.ErrorCode `json:"code"`
		Details   any              `json:"details,omitempty"`
		Timestamp time.Time        `json:"timestamp"`
	}

	SuccessFlag struct {
		Success bool `json:"success"`
	}
)

// Response handler interface and implementation
type BaseController interface {
	BadRequest(appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError
	NotFound(appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError
	Unauthorized(appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError
	OK(c echo.Context, data any) error
	Created(c echo.Context, data any) error
	Success(c echo.Context) error
	ErrorResponse(c echo.Context, err *errors.AppError) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

// Error response functions
func NewErrorResponse(httpStatusCode int, appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	err := &ErrorResponse{
		Error:     message,
		Code:      appErrCode,
		Timestamp: time.Now(),
	}
	if len(details) > 0 && details[0] != nil {
		err.Details = details[0]
	}
	return echo.NewHTTPError(httpStatusCode, err)
}

// StatusFor maps an application error code to its HTTP status.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrAlreadyExists:
		return http.StatusConflict
	case errors.ErrTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HTTP Error handlers
func (h *responseHandler) BadRequest(appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusBadRequest, appErrCode, message, details...)
}

func (h *responseHandler) NotFound(appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusNotFound, appErrCode, message, details...)
}

func (h *responseHandler) Unauthorized(appErrCode errors.ErrorCode, message string, details ...any) *echo.HTTPError {
	return NewErrorResponse(http.StatusUnauthorized, appErrCode, message, details...)
}

func (h *responseHandler) OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

func (h *responseHandler) Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

func (h *responseHandler) Success(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessFlag{Success: true})
}

func (h *responseHandler) ErrorResponse(c echo.Context, err *errors.AppError) error {
	if err == nil {
		err = errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}
	httpStatus := StatusFor(err.Code)
	msg := err.Message
	if msg == "" {
		msg = http.StatusText(httpStatus)
	}

	if httpStatus >= http.StatusInternalServerError {
		logger.Error("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", err.Code,
			"message", msg,
			"error", err.Err,
		)
	} else {
		logger.Debug("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", err.Code,
			"message", msg,
		)
	}
	return NewErrorResponse(httpStatus, err.Code, msg)
}
