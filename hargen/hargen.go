// Package hargen generates synthetic netlogs captures: REST calls, GraphQL
// operations and batches, persisted queries, base64 bodies, annotations,
// custom transactions and websocket sessions. Search terms can be injected at
// known locations to exercise the search predicate.
package hargen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pb33f/netlogs/har"
)

// Shape is the kind of exchange an entry models
type Shape int

const (
	REST Shape = iota
	GraphQL
	GraphQLBatch
	GraphQLPersisted
	Binary
	Annotation
	RPC
	Socket
)

var shapeNames = []string{"rest", "graphql", "graphql-batch", "graphql-persisted", "binary", "annotation", "rpc", "socket"}

// AllShapes lists every shape
var AllShapes = []Shape{REST, GraphQL, GraphQLBatch, GraphQLPersisted, Binary, Annotation, RPC, Socket}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// ParseShape parses a shape name as printed by String
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, name) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape: %s (expected one of %s)", name, strings.Join(shapeNames, ", "))
}

// InjectionLocation defines where to inject a search term
type InjectionLocation int

const (
	RequestBody InjectionLocation = iota
	ResponseBody
	URL
)

// String returns the string representation of the injection location
func (il InjectionLocation) String() string {
	switch il {
	case RequestBody:
		return "request.body"
	case ResponseBody:
		return "response.body"
	case URL:
		return "url"
	default:
		return "unknown"
	}
}

// ParseLocation parses an injection location name
func ParseLocation(name string) (InjectionLocation, error) {
	switch strings.ToLower(name) {
	case "request.body", "requestbody", "params":
		return RequestBody, nil
	case "response.body", "responsebody", "content":
		return ResponseBody, nil
	case "url", "name":
		return URL, nil
	}
	return 0, fmt.Errorf("unknown injection location: %s", name)
}

// InjectedTerm represents a term that was injected and where
type InjectedTerm struct {
	Term       string            // the injected word/phrase
	Location   InjectionLocation // where it was injected
	EntryIndex int               // which har entry contains it
	FieldPath  string            // for bodies: dot path like "variables.user.name"
}

// GenerateOptions configures har generation
type GenerateOptions struct {
	EntryCount         int                 // number of entries to generate
	Shapes             []Shape             // shapes to pick from (if empty, use all)
	InjectTerms        []string            // terms to inject for testing
	InjectionLocations []InjectionLocation // where to inject (if empty, use all)
	DictionaryPath     string              // path to word dictionary (empty: built in list)
	MaxJSONDepth       int                 // max nesting level (default: 3)
	MaxJSONNodes       int                 // max nodes per level (default: 6)
	ErrorRate          float64             // share of failing exchanges, 0 to 1
	Seed               int64               // random seed for reproducibility (0 = use time)
	Start              time.Time           // startedDateTime of the first entry (zero = now)
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	EntryCount:   10,
	MaxJSONDepth: 3,
	MaxJSONNodes: 6,
	ErrorRate:    0.1,
}

type injectionRequest struct {
	term     string
	location InjectionLocation
}

// Generate creates a netlogs capture in memory
func Generate(opts GenerateOptions) (*har.Document, []InjectedTerm, error) {
	if opts.MaxJSONDepth == 0 {
		opts.MaxJSONDepth = DefaultGenerateOptions.MaxJSONDepth
	}
	if opts.MaxJSONNodes == 0 {
		opts.MaxJSONNodes = DefaultGenerateOptions.MaxJSONNodes
	}
	if len(opts.Shapes) == 0 {
		opts.Shapes = AllShapes
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}

	// local rng, never the global source
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	dict, err := LoadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	jsonGen := NewJSONGenerator(dict, opts.MaxJSONDepth, opts.MaxJSONNodes, rng)
	entryGen := NewEntryGenerator(dict, jsonGen, rng, opts.Start, opts.ErrorRate)

	plan := createInjectionPlan(opts.InjectTerms, opts.EntryCount, opts.InjectionLocations, rng)

	doc := har.NewDocument("netlogs-hargen", "1.0.0")
	var allInjected []InjectedTerm
	for i := 0; i < opts.EntryCount; i++ {
		shape := opts.Shapes[rng.Intn(len(opts.Shapes))]
		entry, injected := entryGen.GenerateEntry(i, shape, plan[i])
		doc.Log.Entries = append(doc.Log.Entries, *entry)
		allInjected = append(allInjected, injected...)
	}
	return doc, allInjected, nil
}

// GenerateToFile generates a capture and writes it to path
func GenerateToFile(path string, opts GenerateOptions) (*har.Document, []InjectedTerm, error) {
	doc, injected, err := Generate(opts)
	if err != nil {
		return nil, nil, err
	}
	if err := har.WriteFile(path, doc); err != nil {
		return nil, nil, err
	}
	return doc, injected, nil
}

// createInjectionPlan distributes terms across entries
func createInjectionPlan(terms []string, entryCount int, locations []InjectionLocation, rng *rand.Rand) map[int][]injectionRequest {
	plan := make(map[int][]injectionRequest)
	if len(terms) == 0 || entryCount == 0 {
		return plan
	}

	for _, term := range terms {
		entryIndex := rng.Intn(entryCount)
		plan[entryIndex] = append(plan[entryIndex], injectionRequest{
			term:     term,
			location: randomLocation(locations, rng),
		})
	}
	return plan
}

func randomLocation(locations []InjectionLocation, rng *rand.Rand) InjectionLocation {
	if len(locations) == 0 {
		return InjectionLocation(rng.Intn(3))
	}
	return locations[rng.Intn(len(locations))]
}
