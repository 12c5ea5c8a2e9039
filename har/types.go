package har

import (
	"time"

	"github.com/pb33f/harhar"
)

// Document represents the root of an HTTP Archive document.
type Document struct {
	Log Log `json:"log"`

	// Hash is the xxhash digest of the raw document, empty for documents built in memory.
	Hash string `json:"-"`

	// Size of the raw document in bytes.
	Size int64 `json:"-"`
}

// Log represents a set of captured entries.
type Log struct {
	Version string          `json:"version"`
	Creator harhar.Creator  `json:"creator"`
	Browser *harhar.Creator `json:"browser,omitempty"`
	Pages   []harhar.Page   `json:"pages,omitempty"`
	Entries []Entry         `json:"entries"`
	Comment string          `json:"comment,omitempty"`
}

// Entry is a standard HAR entry plus the extension fields netlogs writes for
// items that are not plain HTTP exchanges. The embedded entry's Comment field
// carries the item kind.
type Entry struct {
	harhar.Entry

	// WebSocketMessages uses the same shape chrome devtools writes for sockets.
	WebSocketMessages []WebSocketMessage `json:"_webSocketMessages,omitempty"`

	// WebSocketAbnormalClose is true when the socket did not close cleanly.
	WebSocketAbnormalClose bool `json:"_webSocketAbnormalClose,omitempty"`

	// Meta holds the metadata tree of synthetic transactions.
	Meta any `json:"_meta,omitempty"`
}

// WebSocketMessage is a single socket frame.
type WebSocketMessage struct {
	// Type is either "send" or "receive".
	Type string `json:"type"`

	// Time is seconds since the unix epoch, with fractional milliseconds.
	Time float64 `json:"time"`

	// Opcode is the websocket opcode, 1 for text and 2 for binary.
	Opcode int `json:"opcode"`

	// Data is the frame payload.
	Data string `json:"data"`
}

const (
	MessageSend    = "send"
	MessageReceive = "receive"
)

// ISOTime is the javascript Date.toISOString layout, used for startedDateTime.
const ISOTime = "2006-01-02T15:04:05.000Z07:00"

// NewDocument creates an empty HTTP Archive document with the provided creator.
func NewDocument(creatorName, creatorVersion string) *Document {
	return &Document{
		Log: Log{
			Version: "1.2",
			Creator: harhar.Creator{
				Name:    creatorName,
				Version: creatorVersion,
			},
			Entries: make([]Entry, 0),
		},
	}
}

// StartedAt parses startedDateTime.
func (e *Entry) StartedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, e.Start)
}

// FormatStart formats a millisecond timestamp the way startedDateTime is written.
func FormatStart(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(ISOTime)
}
