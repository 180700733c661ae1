package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"airplane-seating-cli/service"
)

const (
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, errorResponse{Error: msg, Code: code})
}

// writeDomainError maps an error from the seating operations to its status
// and wire code. Unknown errors become a generic 500.
func writeDomainError(c echo.Context, err error) error {
	code := service.ErrorCode(err)
	switch code {
	case service.CodeNameCountMismatch,
		service.CodeInvalidSeatCount,
		service.CodeInvalidPassengerName,
		service.CodeUnknownFareClass,
		service.CodeUnknownSortKey:
		return writeError(c, http.StatusBadRequest, code, err.Error())
	case service.CodeInsufficientSeats:
		return writeError(c, http.StatusConflict, code, err.Error())
	case service.CodeCorruptState:
		return writeError(c, http.StatusUnprocessableEntity, code, err.Error())
	default:
		c.Logger().Errorf("internal error: %v", err)
		return writeError(c, http.StatusInternalServerError, service.CodeInternal, "internal error")
	}
}

// httpErrorHandler renders echo's own errors (unknown route, wrong method,
// recovered panics) in the same JSON shape as the handlers.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	code := service.CodeInternal
	msg := "internal error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			code, msg = codeNotFound, "not found"
		case http.StatusMethodNotAllowed:
			code, msg = codeMethodNotAllowed, "method not allowed"
		case http.StatusBadRequest:
			code, msg = service.CodeInvalidRequestBody, "invalid request body"
		}
	}
	if err := writeError(c, status, code, msg); err != nil {
		c.Logger().Error(err)
	}
}
