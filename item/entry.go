package item

import (
	"encoding/json"

	"github.com/pb33f/harhar"
	"github.com/pb33f/netlogs/har"
)

const (
	placeholderMIME = "application/json"
	contentMIME     = "text/plain"
)

// syntheticEntry builds an entry for items that were never real HTTP
// exchanges. Fields netlogs does not track get HAR placeholders.
func syntheticEntry(it *Item, method, url, requestText, responseText string) *har.Entry {
	return &har.Entry{
		Entry: harhar.Entry{
			Start:   har.FormatStart(it.timestamp),
			Time:    it.duration,
			Comment: it.kind.String(),
			Request: harhar.Request{
				Method:      method,
				URL:         url,
				HTTPVersion: "",
				Cookies:     []harhar.Cookie{},
				Headers:     []harhar.NameValuePair{},
				QueryParams: []harhar.NameValuePair{},
				Body: harhar.BodyType{
					MIMEType: placeholderMIME,
					Content:  requestText,
				},
				HeadersSize: -1,
				BodySize:    -1,
			},
			Response: harhar.Response{
				StatusCode:  200,
				StatusText:  "200 OK",
				HTTPVersion: "",
				Cookies:     []harhar.Cookie{},
				Headers:     []harhar.NameValuePair{},
				Body: harhar.BodyResponseType{
					Size:     -1,
					MIMEType: contentMIME,
					Content:  responseText,
				},
				HeadersSize: -1,
				BodySize:    -1,
			},
		},
	}
}

// entryTimestamp is the start of entry in unix milliseconds, 0 when
// startedDateTime is missing or malformed.
func entryTimestamp(entry *har.Entry) int64 {
	started, err := entry.StartedAt()
	if err != nil {
		return 0
	}
	return started.UnixMilli()
}

func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
