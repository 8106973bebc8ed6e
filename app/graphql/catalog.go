// Package graphql exposes a read-only catalog query surface alongside the
// REST API. Same visibility rules apply: only published products resolve.
package graphql

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/services"
	gqlschema "github.com/shashiranjanraj/inkstore/pkg/graphql"
	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/response"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return int(product.ID), nil
			},
		},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"category":    &graphql.Field{Type: graphql.String},
		"productType": &graphql.Field{Type: graphql.String},
		"imageUrl":    &graphql.Field{Type: graphql.String},
	},
})

var (
	buildOnce sync.Once
	schema    graphql.Schema
	schemaErr error
)

func catalogSchema() (graphql.Schema, error) {
	buildOnce.Do(func() {
		catalog := services.NewCatalogService()

		root := graphql.NewObject(graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"products": &graphql.Field{
					Type: graphql.NewList(productType),
					Args: graphql.FieldConfigArgument{
						"category": &graphql.ArgumentConfig{Type: graphql.String},
						"type":     &graphql.ArgumentConfig{Type: graphql.String},
						"q":        &graphql.ArgumentConfig{Type: graphql.String},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						filter := services.CatalogFilter{}
						if v, ok := p.Args["category"].(string); ok {
							filter.Category = v
						}
						if v, ok := p.Args["type"].(string); ok {
							filter.ProductType = v
						}
						if v, ok := p.Args["q"].(string); ok {
							filter.Search = v
						}
						return catalog.List(filter)
					},
				},
				"product": &graphql.Field{
					Type: productType,
					Args: graphql.FieldConfigArgument{
						"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						id, _ := p.Args["id"].(int)
						product, err := catalog.Get(uint(id))
						if err != nil {
							return nil, err
						}
						return product, nil
					},
				},
			},
		})

		schema, schemaErr = gqlschema.NewSchema(root)
	})
	return schema, schemaErr
}

type queryPayload struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Handler serves POST /api/graphql.
func Handler(w http.ResponseWriter, r *http.Request) {
	s, err := catalogSchema()
	if err != nil {
		logger.Error("graphql schema build failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "schema unavailable")
		return
	}

	var payload queryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid query payload")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         s,
		RequestString:  payload.Query,
		VariableValues: payload.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
