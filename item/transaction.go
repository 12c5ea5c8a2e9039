package item

import (
	"encoding/json"

	"github.com/pb33f/netlogs/har"
	"github.com/pb33f/netlogs/profile"
)

const noName = "No name"

// TransactionConfig describes a named operation that did not come from a
// captured HTTP exchange, such as an RPC call reported by the host.
type TransactionConfig struct {
	Name      string
	Tag       string
	Params    any
	Result    any
	Meta      any
	Duration  float64
	Timestamp int64
}

// NewTransaction creates a transaction item. The tag is kept only for HAR
// export, where it becomes the request method; Tag() of a transaction is
// always empty. Params, result and meta are stored as decoded JSON, so an int
// becomes a float64 and a typed slice becomes []any.
func NewTransaction(cfg TransactionConfig) *Item {
	it := newItem(KindTransaction, cfg.Timestamp)
	it.name = cfg.Name
	if it.name == "" {
		it.name = noName
	}
	it.tag = cfg.Tag
	it.params = plainJSON(cfg.Params)
	it.content = plainJSON(cfg.Result)
	it.meta = plainJSON(cfg.Meta)
	it.duration = cfg.Duration
	return it
}

var transactionExtractor = extractor{
	name:     storedName,
	tag:      func(*Item) string { return "" },
	isError:  func(*Item) bool { return false },
	params:   storedParams,
	content:  storedContent,
	meta:     storedMeta,
	duration: storedDuration,
	visible:  alwaysVisible,
	toEntry: func(it *Item) *har.Entry {
		entry := syntheticEntry(it, it.tag, it.name, stringify(it.params), stringify(it.content))
		entry.Meta = it.meta
		return entry
	},
	fromEntry: func(entry *har.Entry, _ Resolver) (*Item, error) {
		ts := entryTimestamp(entry)
		return NewTransaction(TransactionConfig{
			Name:      entry.Request.URL,
			Tag:       entry.Request.Method,
			Params:    profile.ParseBody(entry.Request.Body.Content),
			Result:    profile.ParseBody(entry.Response.Body.Content),
			Meta:      entry.Meta,
			Duration:  entry.Time,
			Timestamp: ts,
		}), nil
	},
}

// StoredTag returns the tag a transaction was built with. It is the value
// exported as the request method.
func (it *Item) StoredTag() string {
	return it.tag
}

// plainJSON returns v as encoding/json would decode it. Values that cannot be
// marshalled are kept as they are.
func plainJSON(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
