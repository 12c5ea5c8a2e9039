package har

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

const (
	keyLog     = "log"
	keyVersion = "version"
	keyCreator = "creator"
	keyBrowser = "browser"
	keyPages   = "pages"
	keyEntries = "entries"
	keyComment = "comment"
)

// ErrMissingEntries is returned when a document has no log.entries array.
var ErrMissingEntries = errors.New("missing log.entries")

// Decode parses a HAR document. Entries are decoded one at a time so a broken
// entry is reported with its position. A document without a log.entries array
// fails with ErrMissingEntries.
func Decode(data []byte) (*Document, error) {
	d := &decoder{
		dec: json.NewDecoder(bytes.NewReader(data)),
		doc: &Document{},
	}

	if err := d.parseHAR(); err != nil {
		return nil, err
	}
	if !d.sawEntries {
		return nil, ErrMissingEntries
	}

	d.doc.Hash = fmt.Sprintf("%x", xxhash.Sum64(data))
	d.doc.Size = int64(len(data))
	return d.doc, nil
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read har: %w", err)
	}
	return Decode(data)
}

type decoder struct {
	dec        *json.Decoder
	doc        *Document
	sawEntries bool
}

func (d *decoder) parseHAR() error {
	if err := d.expectDelim('{'); err != nil {
		return err
	}

	for d.dec.More() {
		key, err := d.key()
		if err != nil {
			return err
		}

		switch key {
		case keyLog:
			if err := d.parseLog(); err != nil {
				return err
			}
		default:
			if err := skipValue(d.dec); err != nil {
				return err
			}
		}
	}

	_, err := d.dec.Token()
	return err
}

func (d *decoder) parseLog() error {
	token, err := d.dec.Token()
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	if token != json.Delim('{') {
		return fmt.Errorf("expected log object, got %v", token)
	}

	log := &d.doc.Log
	for d.dec.More() {
		key, err := d.key()
		if err != nil {
			return err
		}

		switch key {
		case keyVersion:
			err = d.dec.Decode(&log.Version)
		case keyCreator:
			err = d.dec.Decode(&log.Creator)
		case keyBrowser:
			err = d.dec.Decode(&log.Browser)
		case keyPages:
			err = d.dec.Decode(&log.Pages)
		case keyComment:
			err = d.dec.Decode(&log.Comment)
		case keyEntries:
			err = d.parseEntries()
		default:
			err = skipValue(d.dec)
		}
		if err != nil {
			return err
		}
	}

	_, err = d.dec.Token()
	return err
}

func (d *decoder) parseEntries() error {
	token, err := d.dec.Token()
	if err != nil {
		return err
	}
	// "entries": null is treated the same as a missing key
	if token == nil {
		return nil
	}
	if token != json.Delim('[') {
		return fmt.Errorf("expected array delimiter, got %v", token)
	}

	entries := make([]Entry, 0)
	for i := 0; d.dec.More(); i++ {
		var entry Entry
		if err := d.dec.Decode(&entry); err != nil {
			return fmt.Errorf("failed to parse entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}

	if _, err := d.dec.Token(); err != nil {
		return err
	}

	d.doc.Log.Entries = entries
	d.sawEntries = true
	return nil
}

func (d *decoder) key() (string, error) {
	token, err := d.dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := token.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", token)
	}
	return key, nil
}

func (d *decoder) expectDelim(delim json.Delim) error {
	token, err := d.dec.Token()
	if err != nil {
		return err
	}
	if token != delim {
		return fmt.Errorf("expected %v, got %v", delim, token)
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	token, err := dec.Token()
	if err != nil {
		return err
	}

	switch token {
	case json.Delim('{'), json.Delim('['):
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		_, err = dec.Token()
		return err
	}

	return nil
}
