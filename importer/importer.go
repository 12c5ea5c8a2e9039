// Package importer turns a capture file into the item list shown to the user.
// An import either replaces the whole list or leaves it untouched.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pb33f/netlogs/har"
	"github.com/pb33f/netlogs/i18n"
	"github.com/pb33f/netlogs/ingest"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/profile"
)

const (
	// TagNetLogs tags the annotation that opens every imported list.
	TagNetLogs = "NET LOGS"

	// EventFileOpen is sent to the host after a successful import with the
	// entry count as payload.
	EventFileOpen = "analytics.fileOpen"
)

// Store receives the imported items.
type Store interface {
	SetList(items []*item.Item, appendItems bool)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Info(msg string) int
	Error(msg string)
	Dismiss(id int)
}

// Translator looks up a user facing message.
type Translator func(key string, vars map[string]string) string

// HostNotifier is a fire and forget call to whatever embeds netlogs.
type HostNotifier func(event, payload string)

// ImportError is returned when an import is aborted. Key is the message key
// the user was shown.
type ImportError struct {
	Key   string
	File  string
	Cause error
}

func (e *ImportError) Error() string {
	msg := e.Key
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Options configures an Importer. Every field is optional.
type Options struct {
	Resolver   item.Resolver
	Translate  Translator
	NotifyHost HostNotifier
	Notifier   Notifier
	Logger     *slog.Logger
	Now        func() time.Time
}

// Importer runs the open file flow against a store.
type Importer struct {
	store      Store
	resolver   item.Resolver
	translate  Translator
	notifyHost HostNotifier
	notifier   Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an importer writing to store.
func New(store Store, opts Options) *Importer {
	im := &Importer{
		store:      store,
		resolver:   opts.Resolver,
		translate:  opts.Translate,
		notifyHost: opts.NotifyHost,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if im.resolver == nil {
		im.resolver = profile.DefaultRegistry()
	}
	if im.translate == nil {
		im.translate = func(key string, _ map[string]string) string { return key }
	}
	if im.notifyHost == nil {
		im.notifyHost = func(string, string) {}
	}
	if im.notifier == nil {
		im.notifier = discardNotifier{}
	}
	if im.logger == nil {
		im.logger = slog.New(slog.DiscardHandler)
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

// ImportFile reads the capture at path and replaces the store contents with
// its items. It returns the number of items committed.
func (im *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	name := filepath.Base(path)
	if !ingest.IsFileSupported(name) {
		return 0, im.fail(i18n.KeyOnlyJSONSupported, name, ingest.ErrUnsupportedFile)
	}

	id := im.notifier.Info(im.translate(i18n.KeyLoadingFile, nil))
	data, err := ingest.ReadFile(ctx, path)
	im.notifier.Dismiss(id)
	if err != nil {
		return 0, im.fail(i18n.KeyErrorParsingFile, name, err)
	}

	return im.ImportData(name, data)
}

// ImportData imports an already read capture named name.
func (im *Importer) ImportData(name string, data []byte) (int, error) {
	doc, err := har.Decode(data)
	if err != nil {
		if errors.Is(err, har.ErrMissingEntries) {
			return 0, im.fail(i18n.KeyInvalidHAR, name, err)
		}
		return 0, im.fail(i18n.KeyErrorParsingFile, name, err)
	}

	items, err := im.buildItems(doc)
	if err != nil {
		return 0, im.fail(i18n.KeyInvalidHAR, name, err)
	}

	opened := item.NewContentOnly(
		TagNetLogs,
		im.translate(i18n.KeyFileOpened, map[string]string{"name": name}),
		im.now().UnixMilli(),
	)
	list := make([]*item.Item, 0, len(items)+1)
	list = append(list, opened)
	list = append(list, items...)

	im.store.SetList(list, false)
	im.notifyHost(EventFileOpen, strconv.Itoa(len(doc.Log.Entries)))

	im.logger.Info("capture imported",
		"file", name,
		"entries", len(doc.Log.Entries),
		"size", doc.Size,
		"hash", doc.Hash)
	return len(list), nil
}

// buildItems converts every entry or none. A panic while building is treated
// like any other structural failure.
func (im *Importer) buildItems(doc *har.Document) (items []*item.Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("panic while building items: %v", r)
		}
	}()
	return item.FromDocument(doc, im.resolver)
}

func (im *Importer) fail(key, file string, cause error) error {
	im.notifier.Error(im.translate(key, nil))
	im.logger.Warn("import failed", "file", file, "reason", key, "error", cause)
	return &ImportError{Key: key, File: file, Cause: cause}
}

type discardNotifier struct{}

func (discardNotifier) Info(string) int { return 0 }
func (discardNotifier) Error(string) {}
func (discardNotifier) Dismiss(int) {}
