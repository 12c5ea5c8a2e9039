package item

import (
	"encoding/json"
	"math"

	"github.com/pb33f/netlogs/har"
)

// TagWebSocket is the tag shown for socket items.
const TagWebSocket = "WS"

// Direction of a socket frame.
type Direction string

const (
	Send    Direction = har.MessageSend
	Receive Direction = har.MessageReceive
)

// Frame is one websocket message.
type Frame struct {
	Direction Direction `json:"direction"`

	// Timestamp in milliseconds since the unix epoch.
	Timestamp int64 `json:"timestamp"`

	// Opcode is 1 for text frames and 2 for binary frames.
	Opcode int `json:"opcode"`

	Payload string `json:"payload"`
}

// WebSocketConfig describes a socket at creation.
type WebSocketConfig struct {
	URL           string
	Timestamp     int64
	AbnormalClose bool
	Frames        []Frame
}

// NewWebSocket creates a socket item owning an ordered frame sequence.
func NewWebSocket(cfg WebSocketConfig) *Item {
	it := newItem(KindWebSocket, cfg.Timestamp)
	it.name = cfg.URL
	it.tag = TagWebSocket
	it.abnormal = cfg.AbnormalClose
	it.frames = append([]Frame(nil), cfg.Frames...)
	return it
}

// AppendFrame adds f after every frame seen so far.
func (it *Item) AppendFrame(f Frame) error {
	if it.kind != KindWebSocket {
		return ErrNotWebSocket
	}
	it.mu.Lock()
	it.frames = append(it.frames, f)
	it.mu.Unlock()
	return nil
}

// Frames returns a copy of the frames in arrival order.
func (it *Item) Frames() ([]Frame, error) {
	if it.kind != KindWebSocket {
		return nil, ErrNotWebSocket
	}
	it.mu.RLock()
	defer it.mu.RUnlock()
	return append([]Frame(nil), it.frames...), nil
}

// Close records how the socket ended. An abnormal close marks the item as an
// error.
func (it *Item) Close(abnormal bool) error {
	if it.kind != KindWebSocket {
		return ErrNotWebSocket
	}
	it.mu.Lock()
	it.abnormal = abnormal
	it.mu.Unlock()
	return nil
}

func (it *Item) snapshotFrames() []Frame {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return append([]Frame(nil), it.frames...)
}

func payloads(frames []Frame, dir Direction) []any {
	out := make([]any, 0, len(frames))
	for _, f := range frames {
		if f.Direction != dir {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(f.Payload), &v); err != nil {
			v = f.Payload
		}
		out = append(out, v)
	}
	return out
}

var webSocketExtractor = extractor{
	name: storedName,
	tag:  storedTag,
	isError: func(it *Item) bool {
		it.mu.RLock()
		defer it.mu.RUnlock()
		return it.abnormal
	},
	params: func(it *Item) any {
		return payloads(it.snapshotFrames(), Send)
	},
	content: func(it *Item) any {
		return payloads(it.snapshotFrames(), Receive)
	},
	meta: func(it *Item) any {
		return map[string]any{"frames": len(it.snapshotFrames())}
	},
	duration: func(it *Item) float64 {
		frames := it.snapshotFrames()
		if len(frames) < 2 {
			return 0
		}
		return float64(frames[len(frames)-1].Timestamp - frames[0].Timestamp)
	},
	visible: alwaysVisible,
	toEntry: func(it *Item) *har.Entry {
		frames := it.snapshotFrames()
		entry := syntheticEntry(it, "GET", it.name, "", "")
		entry.Time = it.Duration()
		entry.Response.StatusCode = 101
		entry.Response.StatusText = "Switching Protocols"
		entry.WebSocketAbnormalClose = it.IsError()
		entry.WebSocketMessages = make([]har.WebSocketMessage, 0, len(frames))
		for _, f := range frames {
			opcode := f.Opcode
			if opcode == 0 {
				opcode = 1
			}
			entry.WebSocketMessages = append(entry.WebSocketMessages, har.WebSocketMessage{
				Type:   string(f.Direction),
				Time:   float64(f.Timestamp) / 1000,
				Opcode: opcode,
				Data:   f.Payload,
			})
		}
		return entry
	},
	fromEntry: func(entry *har.Entry, _ Resolver) (*Item, error) {
		ts := entryTimestamp(entry)
		frames := make([]Frame, 0, len(entry.WebSocketMessages))
		for _, m := range entry.WebSocketMessages {
			frames = append(frames, Frame{
				Direction: Direction(m.Type),
				Timestamp: int64(math.Round(m.Time * 1000)),
				Opcode:    m.Opcode,
				Payload:   m.Data,
			})
		}
		return NewWebSocket(WebSocketConfig{
			URL:           entry.Request.URL,
			Timestamp:     ts,
			AbnormalClose: entry.WebSocketAbnormalClose,
			Frames:        frames,
		}), nil
	},
}
