package item

import (
	"fmt"

	"github.com/pb33f/netlogs/har"
	"github.com/pb33f/netlogs/profile"
)

// Resolver picks the profile for an entry. *profile.Registry implements it.
type Resolver interface {
	Resolve(entry *har.Entry) profile.Profile
}

// NewNetwork builds an item from a captured HTTP exchange. The profile chosen
// by resolver derives every display field once, here; the entry itself is kept
// for export.
func NewNetwork(entry *har.Entry, resolver Resolver) (*Item, error) {
	if entry == nil {
		return nil, fmt.Errorf("network item requires an entry")
	}
	ts := entryTimestamp(entry)
	if resolver == nil {
		resolver = profile.DefaultRegistry()
	}

	p := resolver.Resolve(entry)
	it := newItem(KindNetwork, ts)
	it.entry = entry
	it.name = p.Name(entry)
	it.tag = p.Tag(entry)
	it.params = p.Params(entry)
	it.meta = p.Meta(entry)
	it.isError = p.IsError(entry)
	it.visible = p.ShouldShow(entry)
	it.duration = entry.Time

	body := entry.Response.Body
	if body.Encoding == "base64" {
		it.content = NewMimeContent(body.MIMEType, body.Content)
	} else {
		it.content = p.Result(entry, body.Content)
	}
	return it, nil
}

// Entry returns the captured exchange behind a network item, nil for other
// kinds.
func (it *Item) Entry() *har.Entry {
	return it.entry
}

var networkExtractor = extractor{
	name:     storedName,
	tag:      storedTag,
	isError:  storedIsError,
	params:   storedParams,
	content:  storedContent,
	meta:     storedMeta,
	duration: storedDuration,
	visible:  storedVisible,
	toEntry: func(it *Item) *har.Entry {
		entry := *it.entry
		return &entry
	},
	fromEntry: NewNetwork,
}
