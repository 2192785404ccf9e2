package routes

import (
	"github.com/orderdesk/delivery/app/controllers"
	"github.com/orderdesk/delivery/pkg/ctx"
	"github.com/orderdesk/delivery/pkg/router"
)

// Controllers bundles the handlers mounted by RegisterAPI.
type Controllers struct {
	Items   *controllers.ItemController
	Orders  *controllers.OrderController
	GraphQL *controllers.GraphQLController
	Health  *controllers.HealthController
}

func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/items", "items.index", ctx.Wrap(c.Items.Index))
	r.Post("/items", "items.store", ctx.Wrap(c.Items.Store))
	r.Patch("/items/{id}", "items.update", ctx.Wrap(c.Items.Update))
	r.Delete("/items/{id}", "items.destroy", ctx.Wrap(c.Items.Destroy))

	// Singular /order for placing and status changes, plural for the rest.
	r.Post("/order", "orders.store", ctx.Wrap(c.Orders.Store))
	r.Get("/orders", "orders.index", ctx.Wrap(c.Orders.Index))
	r.Patch("/order/{id}", "orders.status", ctx.Wrap(c.Orders.UpdateStatus))
	r.Patch("/orders/{id}", "orders.quantity", ctx.Wrap(c.Orders.UpdateQuantity))
	r.Delete("/orders/{id}", "orders.destroy", ctx.Wrap(c.Orders.Destroy))

	r.Post("/graphql", "graphql", ctx.Wrap(c.GraphQL.Query))
	r.Get("/healthz", "health", ctx.Wrap(c.Health.Show))
}
