package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/app/services"
	"github.com/orderdesk/delivery/pkg/ctx"
	gql "github.com/orderdesk/delivery/pkg/graphql"
)

// GraphQLController serves the read-only query endpoint:
//
//	{ items(type: "food") { id name image } orders(name: "Alice") { id status createdAt } }
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(items *services.ItemService, orders *services.OrderService) (*GraphQLController, error) {
	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Item",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: resolveItemID},
			"name":  &graphql.Field{Type: graphql.String},
			"type":  &graphql.Field{Type: graphql.String},
			"image": &graphql.Field{Type: graphql.String},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: resolveOrderID},
			"name":      &graphql.Field{Type: graphql.String},
			"menu":      &graphql.Field{Type: graphql.String, Resolve: resolveMenu},
			"quantity":  &graphql.Field{Type: graphql.Int},
			"type":      &graphql.Field{Type: graphql.String},
			"status":    &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"items": &graphql.Field{
				Type: graphql.NewList(itemType),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					typ, _ := p.Args["type"].(string)
					return items.List(p.Context, typ)
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					return orders.List(p.Context, name)
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query handles POST /graphql.
func (gc *GraphQLController) Query(c *ctx.Context) {
	var req gql.Request
	if !c.Bind(&req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.Error(http.StatusBadRequest, "query is required")
		return
	}
	res := gql.Execute(c.Context(), gc.schema, req)
	c.JSON(gql.Status(res), res)
}

func resolveItemID(p graphql.ResolveParams) (any, error) {
	if it, ok := p.Source.(models.Item); ok {
		return it.ID.Hex(), nil
	}
	return nil, nil
}

func resolveOrderID(p graphql.ResolveParams) (any, error) {
	if o, ok := p.Source.(models.Order); ok {
		return o.ID.Hex(), nil
	}
	return nil, nil
}

// resolveMenu returns plain-string menus as is and encodes structured
// ones as JSON.
func resolveMenu(p graphql.ResolveParams) (any, error) {
	o, ok := p.Source.(models.Order)
	if !ok || o.Menu == nil {
		return nil, nil
	}
	if s, ok := o.Menu.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(o.Menu)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
