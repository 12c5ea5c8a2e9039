package item

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MimeContent wraps a base64 encoded response body with its media type.
type MimeContent struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// NewMimeContent wraps data. When declared is empty the media type is detected
// from the decoded bytes.
func NewMimeContent(declared, data string) MimeContent {
	mc := MimeContent{MimeType: declared, Data: data}
	if declared == "" {
		if decoded, err := base64.StdEncoding.DecodeString(data); err == nil {
			mc.MimeType = mimetype.Detect(decoded).String()
		}
	}
	return mc
}

// IsText reports whether the payload is readable text.
func (m MimeContent) IsText() bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(m.MimeType, ";", 2)[0]))
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	for _, marker := range []string{"json", "xml", "javascript", "graphql", "x-www-form-urlencoded"} {
		if strings.Contains(mediaType, marker) {
			return true
		}
	}
	for mt := mimetype.Lookup(mediaType); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}

// Raw is the form searched and displayed: decoded text for textual payloads,
// the base64 data otherwise.
func (m MimeContent) Raw() any {
	if !m.IsText() {
		return m.Data
	}
	decoded, err := base64.StdEncoding.DecodeString(m.Data)
	if err != nil {
		return m.Data
	}
	return string(decoded)
}
