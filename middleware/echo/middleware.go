// Package echomw adapts oaskema request validators to echo.
package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/middleware"
	"github.com/reoring/oaskema/openapi"
)

// Validate runs v before next. On failure it responds 400 with an Issues
// payload; on success the parsed value is stored in the request context.
func Validate(v *middleware.Validation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !v.Location().Supported() {
			return next
		}
		return func(c echo.Context) error {
			val, err := v.ParseRequest(c.Request(), c.Param)
			if err != nil {
				if iss, ok := oaskema.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), v.Location(), val)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Value fetches the parsed value for loc.
func Value(c echo.Context, loc openapi.Location) (any, bool) {
	return middleware.ValueFromContext(c.Request().Context(), loc)
}

// Object fetches the parsed value for loc as an object.
func Object(c echo.Context, loc openapi.Location) (map[string]any, bool) {
	return middleware.ObjectFromContext(c.Request().Context(), loc)
}

// Add registers h on e behind the validators and records the operation in
// doc. path uses echo syntax ("/users/:id").
func Add(doc *openapi.Document, e *echo.Echo, method, path string, op openapi.Operation, h echo.HandlerFunc, validators ...*middleware.Validation) error {
	var frags []*openapi.Fragment
	mws := make([]echo.MiddlewareFunc, 0, len(validators))
	for _, v := range validators {
		frags = append(frags, v.Fragment())
		mws = append(mws, Validate(v))
	}
	if err := doc.AddOperation(method, middleware.TemplatePath(path), op, frags...); err != nil {
		return err
	}
	e.Add(method, path, h, mws...)
	return nil
}
