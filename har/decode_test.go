package har

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pb33f/harhar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHAR = `{
  "log": {
    "version": "1.2",
    "creator": {"name": "netlogs", "version": "1.0.0"},
    "extra": {"nested": [1, 2, {"deep": true}]},
    "entries": [
      {
        "startedDateTime": "2024-01-02T03:04:05.678Z",
        "time": 12.5,
        "request": {
          "method": "POST",
          "url": "https://api.example.com/graphql",
          "httpVersion": "HTTP/1.1",
          "cookies": [],
          "headers": [],
          "queryString": [],
          "postData": {"mimeType": "application/json", "text": "{\"query\":\"query GetUser { id }\"}"},
          "headersSize": -1,
          "bodySize": -1
        },
        "response": {
          "status": 200,
          "statusText": "OK",
          "httpVersion": "HTTP/1.1",
          "cookies": [],
          "headers": [],
          "content": {"size": 10, "mimeType": "application/json", "text": "{\"data\":{}}"},
          "redirectURL": "",
          "headersSize": -1,
          "bodySize": -1
        },
        "cache": {},
        "timings": {"send": 1, "wait": 10, "receive": 1.5},
        "comment": "Transaction"
      },
      {
        "startedDateTime": "2024-01-02T03:04:06.000Z",
        "time": 0,
        "request": {"method": "GET", "url": "wss://socket.example.com"},
        "response": {"status": 101, "content": {"size": 0, "mimeType": ""}},
        "cache": {},
        "timings": {"send": 0, "wait": 0, "receive": 0},
        "comment": "WebSocket",
        "_webSocketMessages": [
          {"type": "send", "time": 1704164646.1, "opcode": 1, "data": "hello"}
        ],
        "_webSocketAbnormalClose": true
      }
    ]
  }
}`

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(sampleHAR))
	require.NoError(t, err)

	assert.Equal(t, "1.2", doc.Log.Version)
	assert.Equal(t, "netlogs", doc.Log.Creator.Name)
	require.Len(t, doc.Log.Entries, 2)

	first := doc.Log.Entries[0]
	assert.Equal(t, "POST", first.Request.Method)
	assert.Equal(t, "Transaction", first.Comment)
	assert.Equal(t, 12.5, first.Time)
	assert.Contains(t, first.Request.Body.Content, "GetUser")

	second := doc.Log.Entries[1]
	assert.Equal(t, "WebSocket", second.Comment)
	require.Len(t, second.WebSocketMessages, 1)
	assert.Equal(t, MessageSend, second.WebSocketMessages[0].Type)
	assert.True(t, second.WebSocketAbnormalClose)

	assert.NotEmpty(t, doc.Hash)
	assert.Equal(t, int64(len(sampleHAR)), doc.Size)
}

func TestDecode_HashIsStable(t *testing.T) {
	a, err := Decode([]byte(sampleHAR))
	require.NoError(t, err)
	b, err := Decode([]byte(sampleHAR))
	require.NoError(t, err)
	assert.Equal(t, a.Hash, b.Hash)
}

func TestDecode_MissingEntries(t *testing.T) {
	cases := map[string]string{
		"no log":       `{"foo": 1}`,
		"no entries":   `{"log": {"version": "1.2"}}`,
		"null entries": `{"log": {"version": "1.2", "entries": null}}`,
		"null log":     `{"log": null}`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(input))
			assert.ErrorIs(t, err, ErrMissingEntries)
		})
	}
}

func TestDecode_EmptyEntries(t *testing.T) {
	doc, err := Decode([]byte(`{"log": {"entries": []}}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Log.Entries)
	assert.Len(t, doc.Log.Entries, 0)
}

func TestDecode_BrokenEntry(t *testing.T) {
	_, err := Decode([]byte(`{"log": {"entries": [{"startedDateTime": 5}]}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse entry 0")
}

func TestDecode_NotJSON(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingEntries)
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := NewDocument("netlogs", "test")
	doc.Log.Entries = append(doc.Log.Entries, Entry{
		Entry: harhar.Entry{
			Start:   FormatStart(1704164645678),
			Request: harhar.Request{Method: "GET", URL: "https://example.com"},
			Comment: "ContentOnly",
		},
		Meta: map[string]any{"k": "v"},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, decoded.Log.Entries, 1)

	entry := decoded.Log.Entries[0]
	assert.Equal(t, "2024-01-02T03:04:05.678Z", entry.Start)
	assert.Equal(t, "ContentOnly", entry.Comment)
	assert.Equal(t, map[string]any{"k": "v"}, entry.Meta)

	started, err := entry.StartedAt()
	require.NoError(t, err)
	assert.Equal(t, int64(1704164645678), started.UnixMilli())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.har")
	require.NoError(t, WriteFile(path, NewDocument("netlogs", "test")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, doc.Log.Entries)
}
