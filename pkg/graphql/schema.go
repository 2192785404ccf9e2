// Package graphql executes read-only GraphQL queries over the record
// services. Schemas carry a Query root only, so mutations are rejected
// during validation.
package graphql

import (
	"context"
	"net/http"

	"github.com/graphql-go/graphql"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// NewSchema creates a new GraphQL schema from a provided RootQuery
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Execute runs req against schema.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// Status picks the HTTP status for a result: documents that failed to parse
// or validate produce no data and answer 400.
func Status(res *graphql.Result) int {
	if res.HasErrors() && res.Data == nil {
		return http.StatusBadRequest
	}
	return http.StatusOK
}
