package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pb33f/netlogs/har"
	"github.com/pb33f/netlogs/i18n"
	"github.com/pb33f/netlogs/ingest"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	infos     []string
	errors    []string
	dismissed []int
}

func (n *recordingNotifier) Info(msg string) int {
	n.infos = append(n.infos, msg)
	return len(n.infos)
}

func (n *recordingNotifier) Error(msg string) {
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Dismiss(id int) {
	n.dismissed = append(n.dismissed, id)
}

type hostEvent struct {
	event   string
	payload string
}

type fixture struct {
	list     *item.List
	notifier *recordingNotifier
	events   []hostEvent
	importer *Importer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		list:     item.NewList(),
		notifier: &recordingNotifier{},
	}
	f.importer = New(f.list, Options{
		Translate: func(key string, vars map[string]string) string {
			if key == i18n.KeyFileOpened {
				return "File opened: " + vars["name"]
			}
			return "msg:" + key
		},
		NotifyHost: func(event, payload string) {
			f.events = append(f.events, hostEvent{event, payload})
		},
		Notifier: f.notifier,
		Now:      func() time.Time { return time.UnixMilli(1704164645678) },
	})
	return f
}

const graphqlCapture = `{"log":{"version":"1.2","creator":{"name":"test","version":"1"},"entries":[
{"startedDateTime":"2024-01-02T03:04:05.000Z","time":10,
 "request":{"method":"POST","url":"/graphql","postData":{"mimeType":"application/json","text":"{\"query\":\"mutation Foo(){}\"}"}},
 "response":{"status":200,"content":{"mimeType":"application/json","text":%q}}}]}}`

func capture(responseText string) []byte {
	return []byte(fmt.Sprintf(graphqlCapture, responseText))
}

func TestImportData_GraphQLMutation(t *testing.T) {
	f := newFixture(t)

	n, err := f.importer.ImportData("capture.har", capture(`{"data":{"ok":true}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items := f.list.Items()
	require.Len(t, items, 2)

	opened := items[0]
	assert.Equal(t, item.KindContentOnly, opened.Kind())
	assert.Equal(t, TagNetLogs, opened.Tag())
	assert.Equal(t, "File opened: capture.har", opened.Name())
	assert.Equal(t, int64(1704164645678), opened.Timestamp())

	gql := items[1]
	assert.Equal(t, "GQL", gql.Tag())
	assert.Equal(t, "mutation::Foo", gql.Name())
	assert.Equal(t, map[string]any{"ok": true}, gql.Content())
	assert.False(t, gql.IsError())

	assert.Equal(t, []hostEvent{{EventFileOpen, "1"}}, f.events)
	assert.Empty(t, f.notifier.errors)
}

func TestImportData_GraphQLErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.ImportData("capture.har", capture(`{"errors":[{"message":"bad"}]}`))
	require.NoError(t, err)

	gql := f.list.Items()[1]
	assert.True(t, gql.IsError())
	assert.Equal(t, map[string]any{"errors": []any{map[string]any{"message": "bad"}}}, gql.Content())
}

func TestImportData_MissingEntriesLeavesListUnchanged(t *testing.T) {
	f := newFixture(t)
	existing := item.NewContentOnly("NOTE", "keep me", 1)
	f.list.SetList([]*item.Item{existing}, false)

	_, err := f.importer.ImportData("capture.har", []byte(`{"log":{"version":"1.2"}}`))
	require.Error(t, err)

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, i18n.KeyInvalidHAR, importErr.Key)
	assert.ErrorIs(t, err, har.ErrMissingEntries)

	assert.Equal(t, []*item.Item{existing}, f.list.Items())
	assert.Equal(t, []string{"msg:" + i18n.KeyInvalidHAR}, f.notifier.errors)
	assert.Empty(t, f.events)
}

func TestImportData_BrokenJSON(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.ImportData("capture.har", []byte(`{"log":`))
	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, i18n.KeyErrorParsingFile, importErr.Key)
	assert.Zero(t, f.list.Len())
}

// rejectingResolver panics while resolving the entry with the given url
type rejectingResolver struct {
	url string
}

func (r rejectingResolver) Resolve(entry *har.Entry) profile.Profile {
	if entry.Request.URL == r.url {
		panic("cannot classify " + r.url)
	}
	return profile.DefaultRegistry().Resolve(entry)
}

// panickingResolver panics on every entry
type panickingResolver struct{}

func (panickingResolver) Resolve(*har.Entry) profile.Profile { panic("boom") }

func TestImportData_InvalidEntryIsAllOrNothing(t *testing.T) {
	list := item.NewList()
	existing := item.NewContentOnly("NOTE", "keep me", 1)
	list.SetList([]*item.Item{existing}, false)
	notifier := &recordingNotifier{}
	im := New(list, Options{Resolver: rejectingResolver{url: "/bad"}, Notifier: notifier})

	data := []byte(`{"log":{"entries":[
{"startedDateTime":"2024-01-02T03:04:05.000Z","request":{"method":"GET","url":"/ok"},"response":{"status":200,"content":{}}},
{"startedDateTime":"2024-01-02T03:04:06.000Z","request":{"method":"GET","url":"/bad"},"response":{"status":200,"content":{}}}]}}`)

	_, err := im.ImportData("capture.har", data)
	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, i18n.KeyInvalidHAR, importErr.Key)
	assert.Equal(t, []*item.Item{existing}, list.Items())
	assert.Len(t, notifier.errors, 1)
}

func TestImportData_EntryWithoutStartedDateTime(t *testing.T) {
	f := newFixture(t)

	data := []byte(`{"log":{"entries":[
{"request":{"method":"POST","url":"/graphql","postData":{"text":"{\"query\":\"mutation Foo(){}\"}"}},
 "response":{"content":{"text":"{\"data\":{\"ok\":true}}"}}}]}}`)

	n, err := f.importer.ImportData("capture.har", data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	gql := f.list.Items()[1]
	assert.Equal(t, "GQL", gql.Tag())
	assert.Equal(t, "mutation::Foo", gql.Name())
	assert.Equal(t, map[string]any{"ok": true}, gql.Content())
	assert.False(t, gql.IsError())
	assert.Zero(t, gql.Timestamp())
	assert.Empty(t, f.notifier.errors)
}

func TestImportData_RecoversPanics(t *testing.T) {
	list := item.NewList()
	im := New(list, Options{Resolver: panickingResolver{}})

	_, err := im.ImportData("capture.har", capture(`{}`))
	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, i18n.KeyInvalidHAR, importErr.Key)
	assert.Contains(t, err.Error(), "boom")
	assert.Zero(t, list.Len())
}

func TestImportData_SyntheticKinds(t *testing.T) {
	f := newFixture(t)
	data := []byte(`{"log":{"entries":[
{"startedDateTime":"2024-01-02T03:04:05.000Z","comment":"ContentOnly","request":{"method":"NOTE","url":""},"response":{"status":200,"content":{"text":"hello"}}},
{"startedDateTime":"2024-01-02T03:04:05.000Z","comment":"Transaction","request":{"method":"RPC","url":"rpc.get","postData":{"text":"{\"id\":1}"}},"response":{"status":200,"content":{"text":"{\"ok\":true}"}}},
{"startedDateTime":"2024-01-02T03:04:05.000Z","comment":"WebSocket","request":{"method":"GET","url":"wss://x"},"response":{"status":101,"content":{}},
 "_webSocketMessages":[{"type":"send","time":1704164645.1,"opcode":1,"data":"ping"},{"type":"receive","time":1704164645.4,"opcode":1,"data":"pong"}]}]}}`)

	n, err := f.importer.ImportData("mixed.har", data)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	items := f.list.Items()
	assert.Equal(t, item.KindContentOnly, items[1].Kind())
	assert.Equal(t, "hello", items[1].Name())
	assert.Equal(t, item.KindTransaction, items[2].Kind())
	assert.Equal(t, "", items[2].Tag())
	assert.Equal(t, map[string]any{"id": float64(1)}, items[2].Params())
	assert.Equal(t, item.KindWebSocket, items[3].Kind())
	assert.Equal(t, float64(300), items[3].Duration())
	assert.Equal(t, []hostEvent{{EventFileOpen, "3"}}, f.events)
}

func TestImportFile(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.har")
	require.NoError(t, os.WriteFile(path, capture(`{"data":{"ok":true}}`), 0644))

	n, err := f.importer.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"msg:" + i18n.KeyLoadingFile}, f.notifier.infos)
	assert.Equal(t, []int{1}, f.notifier.dismissed)
}

func TestImportFile_Unsupported(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.ImportFile(context.Background(), "/tmp/notes.txt")
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFile)

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, i18n.KeyOnlyJSONSupported, importErr.Key)
	assert.Equal(t, "notes.txt", importErr.File)
	assert.Empty(t, f.notifier.infos)
}

func TestImportFile_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.importer.ImportFile(context.Background(), filepath.Join(t.TempDir(), "gone.har"))
	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, i18n.KeyErrorParsingFile, importErr.Key)
	assert.Len(t, f.notifier.dismissed, 1)
}

func TestImportError(t *testing.T) {
	err := &ImportError{Key: "invalidHAR", File: "a.har", Cause: errors.New("boom")}
	assert.Equal(t, "a.har: invalidHAR: boom", err.Error())
	assert.Equal(t, "invalidHAR", (&ImportError{Key: "invalidHAR"}).Error())
}
