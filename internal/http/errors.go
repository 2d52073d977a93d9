package http

import (
	"net/http"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/acme/customer-service/internal/service/customers"
)

// errorResponse is the error envelope returned on every failure.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// respondError maps domain error kinds 1:1 to HTTP statuses. Anything
// unrecognized becomes an opaque 500; the real cause is logged, never
// leaked.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "Unexpected error"

	switch {
	case customers.IsValidation(err):
		status = http.StatusBadRequest
		msg = err.Error()
	case customers.IsNotFound(err):
		status = http.StatusNotFound
		msg = err.Error()
	case customers.IsConflict(err):
		status = http.StatusConflict
		msg = err.Error()
	default:
		log.Errorf("unhandled error on %s: %v", c.Request().URL.Path, err)
	}

	return c.JSON(status, errorResponse{
		Timestamp: time.Now(),
		Path:      c.Request().URL.Path,
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
	})
}

// outcomeOf labels an operation result for the metrics counter.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case customers.IsValidation(err):
		return "validation"
	case customers.IsNotFound(err):
		return "not_found"
	case customers.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}
