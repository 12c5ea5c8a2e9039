package item

// Kind identifies the variant of an item. It is fixed at construction and
// decides which operations are legal.
type Kind int

const (
	KindNetwork Kind = iota
	KindTransaction
	KindContentOnly
	KindWebSocket

	kindCount
)

var kindNames = [kindCount]string{
	KindNetwork:     "Network",
	KindTransaction: "Transaction",
	KindContentOnly: "ContentOnly",
	KindWebSocket:   "WebSocket",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds lists every kind.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindFromComment maps the HAR comment discriminant to a kind. Anything that is
// not a known synthetic kind is a network exchange.
func KindFromComment(comment string) Kind {
	switch comment {
	case "ContentOnly":
		return KindContentOnly
	case "Transaction":
		return KindTransaction
	case "WebSocket":
		return KindWebSocket
	}
	return KindNetwork
}
