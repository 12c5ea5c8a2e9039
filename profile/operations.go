package profile

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Operation summarises one operation of a GraphQL document.
type Operation struct {
	Type   string   `json:"type"`
	Name   string   `json:"name,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// Operations parses a GraphQL query document without a schema and lists its
// operations with their top level fields. Aliased fields are reported by alias.
func Operations(query string) ([]Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql document: %w", err)
	}

	ops := make([]Operation, 0, len(doc.Operations))
	for _, def := range doc.Operations {
		op := Operation{
			Type: string(def.Operation),
			Name: def.Name,
		}
		for _, sel := range def.SelectionSet {
			if field, ok := sel.(*ast.Field); ok {
				name := field.Name
				if field.Alias != "" {
					name = field.Alias
				}
				op.Fields = append(op.Fields, name)
			}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// EntryOperations returns the operations of every GraphQL document sent by
// entry, including each element of a batch. Documents that fail to parse are
// skipped.
func EntryOperations(params any) []Operation {
	var queries []string

	switch p := params.(type) {
	case map[string]any:
		if batch, ok := p["graphqlBatch"].([]any); ok {
			for _, element := range batch {
				if m, ok := element.(map[string]any); ok {
					if q, ok := m["query"].(string); ok {
						queries = append(queries, q)
					}
				}
			}
		} else if q, ok := p["query"].(string); ok {
			queries = append(queries, q)
		}
	case []any:
		// apollo style batches are a bare array of requests
		for _, element := range p {
			if m, ok := element.(map[string]any); ok {
				if q, ok := m["query"].(string); ok {
					queries = append(queries, q)
				}
			}
		}
	}

	var ops []Operation
	for _, q := range queries {
		parsed, err := Operations(q)
		if err != nil {
			continue
		}
		ops = append(ops, parsed...)
	}
	return ops
}
