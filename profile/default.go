package profile

import (
	"encoding/json"

	"github.com/pb33f/netlogs/har"
)

type defaultProfile struct{}

// Default treats bodies as JSON, names an exchange by its URL and tags it with
// the HTTP method.
var Default Profile = defaultProfile{}

func (defaultProfile) Name(entry *har.Entry) string {
	return entry.Request.URL
}

func (defaultProfile) Tag(entry *har.Entry) string {
	return entry.Request.Method
}

// Params parses the request body as JSON. Form encoded bodies, which carry
// params instead of text, become a name to value map.
func (defaultProfile) Params(entry *har.Entry) any {
	body := entry.Request.Body
	if body.Content == "" && len(body.Params) > 0 {
		form := make(map[string]any, len(body.Params))
		for _, p := range body.Params {
			form[p.Name] = p.Value
		}
		return form
	}
	return ParseBody(body.Content)
}

func (defaultProfile) Result(_ *har.Entry, content string) any {
	return ParseBody(content)
}

func (defaultProfile) Meta(_ *har.Entry) any {
	return nil
}

func (defaultProfile) IsError(entry *har.Entry) bool {
	return entry.Response.StatusCode >= 400
}

func (defaultProfile) ShouldShow(_ *har.Entry) bool {
	return true
}

// ParseBody parses text as JSON. Empty or malformed text degrades to an empty
// object instead of an error.
func ParseBody(text string) any {
	if text == "" {
		return emptyValue()
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return emptyValue()
	}
	return v
}

func responseText(entry *har.Entry) string {
	return entry.Response.Body.Content
}
