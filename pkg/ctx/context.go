// Package ctx provides the request context handed to controllers.
//
// A handler receives a single *Context instead of (w, r):
//
//	func (c *OrderController) Index(cx *ctx.Context) {
//	    orders, err := c.service.List(cx.Context(), cx.Query("name"))
//	    ...
//	    cx.JSON(http.StatusOK, orders)
//	}
//
// and is registered through Wrap:
//
//	r.Get("/orders", "orders.index", ctx.Wrap(c.Index))
package ctx

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/orderdesk/delivery/pkg/bind"
	"github.com/orderdesk/delivery/pkg/logger"
	"github.com/orderdesk/delivery/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter ("/items/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Bind decodes the body (JSON, urlencoded or multipart) into dest. An empty
// body leaves dest untouched. On failure it replies 400 and returns false:
//
//	var in createOrderRequest
//	if !c.Bind(&in) {
//	    return
//	}
func (c *Context) Bind(dest any) bool {
	if err := c.Decode(dest); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// Decode is Bind without the reply: the caller decides how to answer a
// malformed body. An empty body is not an error.
func (c *Context) Decode(dest any) error {
	if err := bind.Body(c.R, dest); err != nil && !errors.Is(err, bind.ErrEmptyBody) {
		return err
	}
	return nil
}

// File returns the uploaded multipart file for field, or nil.
func (c *Context) File(field string) *multipart.FileHeader {
	return bind.File(c.R, field)
}

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// Success sends 200 {"success":true, ...fields}.
func (c *Context) Success(fields map[string]any) {
	c.status = http.StatusOK
	response.Success(c.W, fields)
}

// Error sends {"error": message} with the given status.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
