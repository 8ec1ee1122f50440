// Package handler implements the HTTP surface of the registration
// platform.  Handlers bind requests, delegate to the service and
// repository layers, and translate domain errors into status codes.
// The body of an error response always names the specific rejection
// reason so clients can tell "sold out" from "event not published".
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/ledger"
	"github.com/gatherly/event-registration/internal/repository"
)

// getUserID extracts the authenticated user's ID from the context,
// where JWTAuth stored the token's subject claim.  The claim may
// arrive as a string or a JSON number depending on the issuer.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, nil
	case int:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case float64:
		return uint64(v), nil
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// respondDomainError maps domain errors onto HTTP responses.  Business
// rejections keep their specific reason; transient storage errors get
// 503 so clients know a retry with backoff may succeed, while business
// rejections must not be retried.
func respondDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": ledger.ErrNotFound.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting state"})
	case errors.Is(err, ledger.ErrCapacityFull),
		errors.Is(err, ledger.ErrTierSoldOut):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrEventNotAvailable),
		errors.Is(err, ledger.ErrInvalidTier):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrTransientStore):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage temporarily unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
