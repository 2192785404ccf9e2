// Package kernel assembles the HTTP handler: global middleware, the
// metrics and upload endpoints, and the API routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/orderdesk/delivery/app/controllers"
	"github.com/orderdesk/delivery/app/routes"
	"github.com/orderdesk/delivery/app/services"
	"github.com/orderdesk/delivery/config"
	"github.com/orderdesk/delivery/pkg/metrics"
	"github.com/orderdesk/delivery/pkg/middleware"
	"github.com/orderdesk/delivery/pkg/reqid"
	"github.com/orderdesk/delivery/pkg/router"
	"github.com/orderdesk/delivery/pkg/storage"
)

// Deps are the collaborators the kernel wires into the controllers.
type Deps struct {
	Items  services.ItemStore
	Orders services.OrderStore

	// Disk stores item images; DefaultImage names the shared fallback.
	Disk         storage.Disk
	DefaultImage string

	// Uploads is served under /uploads when it is a local directory.
	Uploads storage.Disk

	// Health reports whether the document store is reachable.
	Health func(context.Context) error
}

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(d Deps) (*HTTPKernel, error) {
	items := services.NewItemService(d.Items, d.Disk, d.DefaultImage)
	orders := services.NewOrderService(d.Orders)

	gql, err := controllers.NewGraphQLController(items, orders)
	if err != nil {
		return nil, err
	}
	health := d.Health
	if health == nil {
		health = func(context.Context) error { return nil }
	}

	r := router.New()

	// Outermost first: metrics see total latency, recovery catches panics
	// before the logger, request ids exist before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins()...)))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))

	r.Handle("/metrics", "metrics", metrics.Handler())

	if rooted, ok := d.Uploads.(storage.Rooted); ok {
		r.Static("/uploads", "uploads", http.FileServer(http.Dir(rooted.Root())))
	}

	routes.RegisterAPI(r, routes.Controllers{
		Items:   controllers.NewItemController(items),
		Orders:  controllers.NewOrderController(orders),
		GraphQL: gql,
		Health:  controllers.NewHealthController(health),
	})

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the mounted routes for route:list.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
