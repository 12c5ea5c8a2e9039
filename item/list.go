package item

import "sync"

// List is the item collection owned by the viewer. Writes replace the backing
// slice instead of mutating it, so a slice returned by Items stays a stable
// snapshot for readers.
type List struct {
	mu    sync.RWMutex
	items []*Item
}

func NewList() *List {
	return &List{}
}

// SetList replaces the collection, or appends to it when appendItems is true.
func (l *List) SetList(items []*Item, appendItems bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var next []*Item
	if appendItems {
		next = make([]*Item, 0, len(l.items)+len(items))
		next = append(next, l.items...)
	} else {
		next = make([]*Item, 0, len(items))
	}
	l.items = append(next, items...)
}

// Items returns the current snapshot.
func (l *List) Items() []*Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Clear drops every item.
func (l *List) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

// Find looks an item up by id.
func (l *List) Find(id string) (*Item, bool) {
	for _, it := range l.Items() {
		if it.ID() == id {
			return it, true
		}
	}
	return nil, false
}

// Visible returns the items that pass chain, in order.
func (l *List) Visible(chain *FilterChain) []*Item {
	return chain.Apply(l.Items())
}
