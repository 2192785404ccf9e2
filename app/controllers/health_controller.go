package controllers

import (
	"context"
	"net/http"

	"github.com/orderdesk/delivery/pkg/ctx"
)

// HealthController answers liveness probes. check reports whether the
// document store handle is available.
type HealthController struct {
	check func(context.Context) error
}

func NewHealthController(check func(context.Context) error) *HealthController {
	return &HealthController{check: check}
}

// Show handles GET /healthz.
func (hc *HealthController) Show(c *ctx.Context) {
	if err := hc.check(c.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
