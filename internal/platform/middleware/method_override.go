package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// MethodOverride rewrites a POST carrying a `_method` form field into the
// method it names. Legacy dashboard clients submit updates and deletes as
// multipart POSTs with `_method=PUT` or `_method=DELETE`; this middleware lets
// those requests reach the same routes as native PUT/DELETE.
func MethodOverride() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost {
				return next(c)
			}

			ct := req.Header.Get(echo.HeaderContentType)
			if !strings.HasPrefix(ct, echo.MIMEMultipartForm) &&
				!strings.HasPrefix(ct, echo.MIMEApplicationForm) {
				return next(c)
			}

			override := strings.ToUpper(c.FormValue("_method"))
			switch override {
			case http.MethodPut, http.MethodDelete, http.MethodPatch:
				req.Method = override
			}
			return next(c)
		}
	}
}
