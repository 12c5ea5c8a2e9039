// Package item holds the normalised log item. Every captured exchange,
// annotation, custom transaction and socket becomes an Item whose Kind selects
// how its display fields are derived.
package item

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pb33f/netlogs/har"
	"github.com/pb33f/netlogs/search"
)

// ErrNotWebSocket is returned by frame operations on items of other kinds.
var ErrNotWebSocket = errors.New("item is not a websocket")

// Item is a single log entry. Items are immutable once built, except that a
// websocket item grows by appending frames.
type Item struct {
	id        string
	kind      Kind
	timestamp int64

	name     string
	tag      string
	params   any
	content  any
	meta     any
	duration float64
	isError  bool

	// network items only
	entry   *har.Entry
	visible bool

	// websocket items only
	mu       sync.RWMutex
	frames   []Frame
	abnormal bool
}

// extractor derives the display fields of one kind.
type extractor struct {
	name      func(*Item) string
	tag       func(*Item) string
	isError   func(*Item) bool
	params    func(*Item) any
	content   func(*Item) any
	meta      func(*Item) any
	duration  func(*Item) float64
	visible   func(*Item) bool
	toEntry   func(*Item) *har.Entry
	fromEntry func(*har.Entry, Resolver) (*Item, error)
}

var extractors [kindCount]extractor

func init() {
	extractors = [kindCount]extractor{
		KindNetwork:     networkExtractor,
		KindTransaction: transactionExtractor,
		KindContentOnly: contentOnlyExtractor,
		KindWebSocket:   webSocketExtractor,
	}
}

func newItem(kind Kind, timestamp int64) *Item {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Item{
		id:        id.String(),
		kind:      kind,
		timestamp: timestamp,
		visible:   true,
	}
}

func (it *Item) ID() string {
	return it.id
}

func (it *Item) Kind() Kind {
	return it.kind
}

// Timestamp is the capture time in milliseconds since the unix epoch.
func (it *Item) Timestamp() int64 {
	return it.timestamp
}

func (it *Item) Name() string {
	return extractors[it.kind].name(it)
}

func (it *Item) Tag() string {
	return extractors[it.kind].tag(it)
}

func (it *Item) IsError() bool {
	return extractors[it.kind].isError(it)
}

func (it *Item) Params() any {
	return extractors[it.kind].params(it)
}

func (it *Item) Content() any {
	return extractors[it.kind].content(it)
}

func (it *Item) Meta() any {
	return extractors[it.kind].meta(it)
}

// Duration in milliseconds, 0 when unknown.
func (it *Item) Duration() float64 {
	return extractors[it.kind].duration(it)
}

// SearchContent returns the content as the search predicate sees it. MIME
// wrapped bodies are replaced by their raw form; the stored content is never
// modified.
func (it *Item) SearchContent() any {
	content := it.Content()
	if mime, ok := content.(MimeContent); ok {
		return mime.Raw()
	}
	return content
}

// Listed reports whether the item's profile lets it be listed at all.
func (it *Item) Listed() bool {
	return extractors[it.kind].visible(it)
}

// ShouldShow reports whether the item passes cfg.
func (it *Item) ShouldShow(cfg search.Config) bool {
	if !it.Listed() {
		return false
	}
	return search.Match(it.Name(), it.Params(), it.SearchContent(), cfg)
}

// ToEntry serializes the item as a HAR entry. The entry comment carries the
// kind so FromEntry rebuilds the same variant.
func (it *Item) ToEntry() *har.Entry {
	return extractors[it.kind].toEntry(it)
}

// Env exposes the item to filter expressions.
func (it *Item) Env() search.Env {
	return search.Env{
		ID:        it.id,
		Kind:      it.kind.String(),
		Name:      it.Name(),
		Tag:       it.Tag(),
		Error:     it.IsError(),
		Duration:  it.Duration(),
		Timestamp: it.timestamp,
		Params:    it.Params(),
		Content:   it.SearchContent(),
		Meta:      it.Meta(),
	}
}

// Tree returns params, content and meta as one document for path filters.
func (it *Item) Tree() map[string]any {
	return map[string]any{
		"params":  it.Params(),
		"content": it.SearchContent(),
		"meta":    it.Meta(),
	}
}

func alwaysVisible(*Item) bool { return true }

func storedName(it *Item) string { return it.name }
func storedTag(it *Item) string { return it.tag }
func storedParams(it *Item) any { return it.params }
func storedContent(it *Item) any { return it.content }
func storedMeta(it *Item) any { return it.meta }
func storedDuration(it *Item) float64 { return it.duration }
func storedIsError(it *Item) bool { return it.isError }
func storedVisible(it *Item) bool { return it.visible }
