// Package ginmw adapts oaskema request validators to gin.
package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/middleware"
	"github.com/reoring/oaskema/openapi"
)

// Validate runs v before the next handler. On failure it aborts with 400 and
// an Issues payload; on success the parsed value is stored in the request
// context. Validators for unsupported locations let every request through.
func Validate(v *middleware.Validation) gin.HandlerFunc {
	if !v.Location().Supported() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		val, err := v.ParseRequest(c.Request, c.Param)
		if err != nil {
			if iss, ok := oaskema.AsIssues(err); ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), v.Location(), val))
		c.Next()
	}
}

// Value fetches the parsed value for loc.
func Value(c *gin.Context, loc openapi.Location) (any, bool) {
	return middleware.ValueFromContext(c.Request.Context(), loc)
}

// Object fetches the parsed value for loc as an object.
func Object(c *gin.Context, loc openapi.Location) (map[string]any, bool) {
	return middleware.ObjectFromContext(c.Request.Context(), loc)
}

// Handle registers h on r behind the validators and records the operation in
// doc. path uses gin syntax ("/users/:id").
func Handle(doc *openapi.Document, r gin.IRoutes, method, path string, op openapi.Operation, h gin.HandlerFunc, validators ...*middleware.Validation) error {
	var frags []*openapi.Fragment
	handlers := make([]gin.HandlerFunc, 0, len(validators)+1)
	for _, v := range validators {
		frags = append(frags, v.Fragment())
		handlers = append(handlers, Validate(v))
	}
	if err := doc.AddOperation(method, middleware.TemplatePath(path), op, frags...); err != nil {
		return err
	}
	r.Handle(method, path, append(handlers, h)...)
	return nil
}
