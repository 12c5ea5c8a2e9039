package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pb33f/netlogs/har"
)

const (
	TagGraphQL      = "GQL"
	TagGraphQLBatch = "BGQL"
)

// captures the operation keyword and the optional operation name
var queryRegex = regexp.MustCompile(`(?P<type>query|mutation)\s?(?:\s(?P<name>[\p{L}\p{N}_]+?))?\s*[({]`)

type graphqlProfile struct{}

// GraphQL unwraps GraphQL envelopes and names requests after their operation.
var GraphQL Profile = graphqlProfile{}

func (graphqlProfile) Name(entry *har.Entry) string {
	params, ok := Default.Params(entry).(map[string]any)
	if !ok {
		return ""
	}

	if name, ok := params["operationName"].(string); ok && name != "" {
		return name
	}

	if query, ok := params["query"].(string); ok && query != "" {
		if name := operationFromQuery(query); name != "" {
			return name
		}
	}

	if hash, ok := params["query_hash"].(string); ok && hash != "" {
		return hash
	}
	return ""
}

func (graphqlProfile) Tag(entry *har.Entry) string {
	if isBatchedParams(Default.Params(entry)) {
		return TagGraphQLBatch
	}
	return TagGraphQL
}

func (graphqlProfile) Params(entry *har.Entry) any {
	return Default.Params(entry)
}

func (graphqlProfile) Meta(entry *har.Entry) any {
	return Default.Meta(entry)
}

func (graphqlProfile) IsError(entry *har.Entry) bool {
	if Default.IsError(entry) {
		return true
	}
	result, ok := Default.Result(entry, responseText(entry)).(map[string]any)
	if !ok {
		return false
	}
	_, hasErrors := result["errors"]
	return hasErrors
}

func (graphqlProfile) ShouldShow(_ *har.Entry) bool {
	return true
}

// Result returns the data of a successful envelope, or the data of every
// envelope in a batch. When anything carries errors the raw wrapper is returned
// unchanged so callers do not mistake it for a clean success.
func (graphqlProfile) Result(entry *har.Entry, content string) any {
	wrapper := Default.Result(entry, content)

	if envelope, ok := wrapper.(map[string]any); ok && isGraphQLResult(envelope) {
		if !hasErrors(envelope) {
			if data, ok := envelope["data"]; ok {
				return data
			}
		}
		return wrapper
	}

	if batch, ok := wrapper.([]any); ok && isBatchedResult(batch) {
		data := make([]any, 0, len(batch))
		for _, element := range batch {
			envelope := element.(map[string]any)
			if hasErrors(envelope) {
				return wrapper
			}
			data = append(data, envelope["data"])
		}
		return data
	}

	return wrapper
}

// IsGraphQL matches batched GraphQL params, GraphQL params, or params that
// only weakly look like GraphQL when the response mentions __typename or has
// not arrived yet.
func IsGraphQL(params, _ any, resultText string) bool {
	if isBatchedParams(params) || isGraphQLParams(params) {
		return true
	}
	return isGraphQLParamsWeak(params) && (resultText == "" || strings.Contains(resultText, "__typename"))
}

func operationFromQuery(query string) string {
	match := queryRegex.FindStringSubmatch(query)
	if match == nil {
		return ""
	}

	opType := match[queryRegex.SubexpIndex("type")]
	if opType == "" {
		opType = "query"
	}
	opName := match[queryRegex.SubexpIndex("name")]
	if opName == "" {
		opName = "Unnamed"
	}
	return fmt.Sprintf("%s::%s", opType, opName)
}

func isGraphQLParams(params any) bool {
	p, ok := params.(map[string]any)
	if !ok {
		return false
	}
	if query, ok := p["query"].(string); ok && (strings.Contains(query, "query") || strings.Contains(query, "mutation")) {
		return true
	}
	// persisted queries only send a hash
	_, hasHash := p["query_hash"]
	return hasHash
}

// some clients send operationName and variables without the query document
func isGraphQLParamsWeak(params any) bool {
	p, ok := params.(map[string]any)
	if !ok {
		return false
	}
	_, hasName := p["operationName"]
	_, hasVariables := p["variables"]
	return hasName && hasVariables
}

func isBatchedParams(params any) bool {
	p, ok := params.(map[string]any)
	if !ok {
		return false
	}
	batch, ok := p["graphqlBatch"].([]any)
	if !ok {
		return false
	}
	for _, element := range batch {
		if !isGraphQLParams(element) {
			return false
		}
	}
	return true
}

func isGraphQLResult(result map[string]any) bool {
	_, hasData := result["data"]
	_, hasErrors := result["errors"]
	return hasData || hasErrors
}

func isBatchedResult(results []any) bool {
	for _, element := range results {
		envelope, ok := element.(map[string]any)
		if !ok || !isGraphQLResult(envelope) {
			return false
		}
	}
	return true
}

// errors: null counts as no errors
func hasErrors(envelope map[string]any) bool {
	errs, ok := envelope["errors"]
	return ok && errs != nil
}
