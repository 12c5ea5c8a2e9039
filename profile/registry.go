package profile

import (
	"github.com/pb33f/netlogs/har"
)

// Registry resolves the profile for an entry. Rules are evaluated in order and
// the first match wins; the fallback profile always matches.
type Registry struct {
	rules    []Rule
	fallback Profile
}

// NewRegistry creates a registry with the given rules, falling back to Default.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{
		rules:    append([]Rule(nil), rules...),
		fallback: Default,
	}
}

// DefaultRegistry returns a registry that knows about GraphQL.
func DefaultRegistry() *Registry {
	return NewRegistry(Rule{
		Name:    "graphql",
		Matches: IsGraphQL,
		Profile: GraphQL,
	})
}

// Register appends a rule. Rules registered earlier take priority.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns the names of the registered rules in priority order.
func (r *Registry) Rules() []string {
	names := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return names
}

// Resolve returns the profile that applies to entry.
func (r *Registry) Resolve(entry *har.Entry) Profile {
	if len(r.rules) == 0 {
		return r.fallback
	}

	text := responseText(entry)
	params := Default.Params(entry)
	result := Default.Result(entry, text)

	for _, rule := range r.rules {
		if rule.Matches != nil && rule.Matches(params, result, text) {
			return rule.Profile
		}
	}
	return r.fallback
}
