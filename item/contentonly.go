package item

import "github.com/pb33f/netlogs/har"

// NewContentOnly creates an annotation such as a "file opened" message.
func NewContentOnly(tag, content string, timestamp int64) *Item {
	it := newItem(KindContentOnly, timestamp)
	it.tag = tag
	it.name = content
	it.params = content
	it.content = content
	return it
}

var contentOnlyExtractor = extractor{
	name:     storedName,
	tag:      storedTag,
	isError:  func(*Item) bool { return false },
	params:   storedParams,
	content:  storedContent,
	meta:     func(*Item) any { return nil },
	duration: func(*Item) float64 { return 0 },
	visible:  alwaysVisible,
	toEntry: func(it *Item) *har.Entry {
		return syntheticEntry(it, it.tag, "", "", it.name)
	},
	fromEntry: func(entry *har.Entry, _ Resolver) (*Item, error) {
		ts := entryTimestamp(entry)
		return NewContentOnly(entry.Request.Method, entry.Response.Body.Content, ts), nil
	},
}
