package item

import (
	"fmt"

	"github.com/pb33f/netlogs/har"
)

// FromEntry rebuilds an item from a HAR entry. The entry comment selects the
// kind; entries without a known comment are network exchanges whose fields
// come from the profile resolver picks.
func FromEntry(entry *har.Entry, resolver Resolver) (*Item, error) {
	if entry == nil {
		return nil, fmt.Errorf("cannot build item from nil entry")
	}
	return extractors[KindFromComment(entry.Comment)].fromEntry(entry, resolver)
}

// FromDocument builds one item per entry. It fails on the first entry that
// cannot be built and returns no items in that case.
func FromDocument(doc *har.Document, resolver Resolver) ([]*Item, error) {
	items := make([]*Item, 0, len(doc.Log.Entries))
	for i := range doc.Log.Entries {
		it, err := FromEntry(&doc.Log.Entries[i], resolver)
		if err != nil {
			return nil, fmt.Errorf("failed to build item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// ToHAR assembles items into an export document.
func ToHAR(items []*Item, creatorName, creatorVersion string) *har.Document {
	doc := har.NewDocument(creatorName, creatorVersion)
	for _, it := range items {
		doc.Log.Entries = append(doc.Log.Entries, *it.ToEntry())
	}
	return doc
}
