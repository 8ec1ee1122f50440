package middleware

// identity.go holds helpers shared across middleware files.  The rate
// limiter keys buckets by user where possible so one hot attendee
// cannot exhaust the budget of everyone behind the same NAT.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string, or
// "guest" when the request carries no identity.  JWTAuth stores the
// subject claim under "user_id"; the claim may decode as a string or a
// JSON number depending on the issuer.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "guest"
}
