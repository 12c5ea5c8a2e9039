package hargen

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
)

// JSONGenerator creates random JSON objects with dictionary words
type JSONGenerator struct {
	dict     *Dictionary
	maxDepth int
	maxNodes int
	rng      *rand.Rand
}

// NewJSONGenerator creates a new JSON generator
func NewJSONGenerator(dict *Dictionary, maxDepth, maxNodes int, rng *rand.Rand) *JSONGenerator {
	if maxDepth == 0 {
		maxDepth = 3
	}
	if maxNodes == 0 {
		maxNodes = 10
	}

	return &JSONGenerator{
		dict:     dict,
		maxDepth: maxDepth,
		maxNodes: maxNodes,
		rng:      rng,
	}
}

// GenerateObject creates a random JSON object with dictionary words
func (jg *JSONGenerator) GenerateObject(depth int) map[string]any {
	// at max depth, just create simple key-value pair
	if depth >= jg.maxDepth {
		return map[string]any{
			jg.dict.RandomWord(jg.rng): jg.dict.RandomWord(jg.rng),
		}
	}

	nodeCount := jg.rng.Intn(jg.maxNodes) + 1
	obj := make(map[string]any, nodeCount)

	for i := 0; i < nodeCount; i++ {
		key := jg.dict.RandomWord(jg.rng)

		switch roll := jg.rng.Float32(); {
		case depth < jg.maxDepth-1 && roll < 0.2:
			obj[key] = jg.GenerateObject(depth + 1)
		case roll < 0.3:
			obj[key] = jg.GenerateArray(depth+1, 0)
		case roll < 0.4:
			obj[key] = float64(jg.rng.Intn(10000))
		case roll < 0.45:
			obj[key] = jg.rng.Float32() < 0.5
		default:
			obj[key] = jg.dict.RandomWord(jg.rng)
		}
	}

	return obj
}

// GenerateArray creates a random JSON array with dictionary words or objects
func (jg *JSONGenerator) GenerateArray(depth int, length int) []any {
	if length == 0 {
		length = jg.rng.Intn(5) + 1
	}

	arr := make([]any, length)
	for i := range arr {
		if depth < jg.maxDepth && jg.rng.Float32() < 0.3 {
			arr[i] = jg.GenerateObject(depth + 1)
		} else {
			arr[i] = jg.dict.RandomWord(jg.rng)
		}
	}
	return arr
}

// InjectTerm injects a term into obj as a key or a value at a random location
// and returns the dot path where it landed (e.g. "user.name").
func (jg *JSONGenerator) InjectTerm(obj map[string]any, term string) string {
	if len(obj) == 0 {
		key := jg.dict.RandomWord(jg.rng)
		obj[key] = term
		return key
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	// map order is random, sort for reproducible seeds
	slices.Sort(keys)

	// existing keys and string values are extended, never dropped, so
	// several terms can land in the same object
	if jg.rng.Float32() < 0.5 {
		obj[term] = obj[keys[jg.rng.Intn(len(keys))]]
		return term
	}

	targetKey := keys[jg.rng.Intn(len(keys))]
	switch v := obj[targetKey].(type) {
	case map[string]any:
		return targetKey + "." + jg.InjectTerm(v, term)
	case string:
		obj[targetKey] = v + " " + term
	default:
		obj[targetKey] = term
	}
	return targetKey
}

// String values to generate for common fields
var commonFieldValues = map[string][]string{
	"email":    {"user@example.com", "test@test.com", "admin@company.org"},
	"country":  {"US", "UK", "CA", "DE", "FR", "JP"},
	"currency": {"USD", "EUR", "GBP", "JPY"},
	"status":   {"active", "pending", "completed", "failed"},
}

// GenerateRealisticObject creates a JSON object with common field patterns
func (jg *JSONGenerator) GenerateRealisticObject(pattern string) map[string]any {
	switch pattern {
	case "user":
		return map[string]any{
			"__typename": "User",
			"id":         fmt.Sprintf("u-%d", jg.rng.Intn(10000)),
			"username":   jg.dict.RandomWord(jg.rng) + jg.dict.RandomWord(jg.rng),
			"email":      jg.realisticValue("email"),
			"country":    jg.realisticValue("country"),
		}
	case "product":
		return map[string]any{
			"__typename":  "Product",
			"id":          fmt.Sprintf("prod-%d", jg.rng.Intn(1000)),
			"name":        jg.dict.RandomWord(jg.rng) + " " + jg.dict.RandomWord(jg.rng),
			"price":       float64(jg.rng.Intn(100000)) / 100,
			"currency":    jg.realisticValue("currency"),
			"description": strings.Join(jg.dict.RandomWords(10, jg.rng), " "),
		}
	case "api_response":
		return map[string]any{
			"status":  jg.realisticValue("status"),
			"message": strings.Join(jg.dict.RandomWords(5, jg.rng), " "),
			"data":    jg.GenerateObject(1),
		}
	default:
		return jg.GenerateObject(0)
	}
}

func (jg *JSONGenerator) realisticValue(field string) string {
	if values, ok := commonFieldValues[field]; ok {
		return values[jg.rng.Intn(len(values))]
	}
	return jg.dict.RandomWord(jg.rng)
}
