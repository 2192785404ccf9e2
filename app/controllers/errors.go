package controllers

import (
	"errors"
	"net/http"

	"github.com/orderdesk/delivery/app/services"
	"github.com/orderdesk/delivery/pkg/ctx"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Backend failures are logged and answered with a generic message.
func respondError(c *ctx.Context, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.Error(http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrNotFound):
		c.Error(http.StatusNotFound, notFound)
	default:
		c.Log().Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "internal server error")
	}
}
