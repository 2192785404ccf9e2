package controllers

import (
	"net/http"

	"github.com/orderdesk/delivery/app/services"
	"github.com/orderdesk/delivery/pkg/bind"
	"github.com/orderdesk/delivery/pkg/ctx"
)

const orderNotFound = "order not found"

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type createOrderRequest struct {
	Name     string    `json:"name"`
	Menu     any       `json:"menu"`
	Quantity bind.Text `json:"quantity"`
	Type     string    `json:"type"`
}

// Store handles POST /order.
func (oc *OrderController) Store(c *ctx.Context) {
	var req createOrderRequest
	if !c.Bind(&req) {
		return
	}
	order, err := oc.service.Create(c.Context(), services.CreateOrderInput{
		Name:     req.Name,
		Menu:     req.Menu,
		Quantity: string(req.Quantity),
		Type:     req.Type,
	})
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.Success(map[string]any{"insertedId": order.ID})
}

// Index handles GET /orders?name=
func (oc *OrderController) Index(c *ctx.Context) {
	orders, err := oc.service.List(c.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /order/{id}.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	var req struct {
		Status bind.Text `json:"status"`
	}
	if err := c.Decode(&req); err != nil {
		respondError(c, oc.service.RejectUpdate(c.Context(), c.Param("id"), err), orderNotFound)
		return
	}
	if err := oc.service.UpdateStatus(c.Context(), c.Param("id"), string(req.Status)); err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.Success(nil)
}

// UpdateQuantity handles PATCH /orders/{id}.
func (oc *OrderController) UpdateQuantity(c *ctx.Context) {
	var req struct {
		Quantity bind.Text `json:"quantity"`
	}
	if err := c.Decode(&req); err != nil {
		respondError(c, oc.service.RejectUpdate(c.Context(), c.Param("id"), err), orderNotFound)
		return
	}
	if err := oc.service.UpdateQuantity(c.Context(), c.Param("id"), string(req.Quantity)); err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.Success(nil)
}

// Destroy handles DELETE /orders/{id}.
func (oc *OrderController) Destroy(c *ctx.Context) {
	if err := oc.service.Delete(c.Context(), c.Param("id")); err != nil {
		respondError(c, err, orderNotFound)
		return
	}
	c.Success(nil)
}
