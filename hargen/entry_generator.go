package hargen

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/netlogs/har"
)

// EntryGenerator creates single HAR entries of a given shape
type EntryGenerator struct {
	dict      *Dictionary
	jsonGen   *JSONGenerator
	rng       *rand.Rand
	start     time.Time
	errorRate float64
}

// NewEntryGenerator creates a new entry generator. Entries are spaced 100ms
// apart starting at start.
func NewEntryGenerator(dict *Dictionary, jsonGen *JSONGenerator, rng *rand.Rand, start time.Time, errorRate float64) *EntryGenerator {
	return &EntryGenerator{
		dict:      dict,
		jsonGen:   jsonGen,
		rng:       rng,
		start:     start,
		errorRate: errorRate,
	}
}

// body is a generated request or response before serialization. target is
// the object search terms are injected into, prefix its dot path.
type body struct {
	value  any
	target map[string]any
	prefix string
}

func (b body) inject(jg *JSONGenerator, term string) string {
	if b.target == nil {
		return ""
	}
	path := jg.InjectTerm(b.target, term)
	if b.prefix == "" {
		return path
	}
	return b.prefix + "." + path
}

// GenerateEntry creates a single entry of shape with the requested injections
func (eg *EntryGenerator) GenerateEntry(index int, shape Shape, injections []injectionRequest) (*har.Entry, []InjectedTerm) {
	started := eg.start.Add(time.Duration(index) * 100 * time.Millisecond)

	switch shape {
	case Annotation:
		return eg.annotation(index, started, injections)
	case Socket:
		return eg.socket(index, started, injections)
	}

	var req, res body
	url := "https://api.example.com/graphql"
	method := "POST"
	status := 200

	switch shape {
	case GraphQL:
		req, res = eg.graphqlSingle()
	case GraphQLBatch:
		req, res = eg.graphqlBatch()
	case GraphQLPersisted:
		req = eg.graphqlPersisted()
		res = eg.graphqlResult("product")
	case RPC:
		url = "rpc." + eg.dict.RandomWord(eg.rng) + "." + eg.dict.OperationName(eg.rng)
		method = "RPC"
		params := eg.jsonGen.GenerateObject(1)
		result := eg.jsonGen.GenerateObject(0)
		req = body{value: params, target: params}
		res = body{value: result, target: result}
	default:
		method, url = eg.randomMethod(), eg.generateURL()
		if method != "GET" && method != "DELETE" {
			params := eg.jsonGen.GenerateObject(0)
			req = body{value: params, target: params}
		}
		result := eg.jsonGen.GenerateRealisticObject("api_response")
		res = body{value: result, target: result}
		status = eg.randomStatus()
	}

	var injected []InjectedTerm
	for _, inj := range injections {
		record := InjectedTerm{Term: inj.term, Location: inj.location, EntryIndex: index}
		switch inj.location {
		case RequestBody:
			if req.target == nil {
				req.target = map[string]any{}
				req.value = req.target
			}
			record.FieldPath = req.inject(eg.jsonGen, inj.term)
		case ResponseBody:
			record.FieldPath = res.inject(eg.jsonGen, inj.term)
		case URL:
			url += "/" + inj.term
		}
		injected = append(injected, record)
	}

	entry := &har.Entry{
		Entry: harhar.Entry{
			Start:      har.FormatStart(started.UnixMilli()),
			Time:       float64(eg.rng.Intn(900)) + eg.rng.Float64(),
			Request:    eg.generateRequest(method, url, req.value),
			Response:   eg.generateResponse(status, res.value),
			ServerIP:   eg.generateIP(),
			Connection: fmt.Sprintf("%d", eg.rng.Intn(65535)),
		},
	}

	switch shape {
	case RPC:
		entry.Comment = "Transaction"
		entry.Meta = map[string]any{"service": strings.SplitN(url, ".", 3)[1]}
	case Binary:
		encoded := base64.StdEncoding.EncodeToString([]byte(entry.Response.Body.Content))
		entry.Response.Body.Content = encoded
		entry.Response.Body.Encoding = "base64"
	}
	return entry, injected
}

func (eg *EntryGenerator) graphqlSingle() (body, body) {
	name := eg.dict.OperationName(eg.rng)
	opType := "query"
	if strings.HasPrefix(name, "Update") || strings.HasPrefix(name, "Create") || strings.HasPrefix(name, "Delete") {
		opType = "mutation"
	}

	variables := eg.jsonGen.GenerateObject(2)
	params := map[string]any{
		"query":     fmt.Sprintf("%s %s($id: ID!) { %s(id: $id) { id } }", opType, name, eg.dict.RandomWord(eg.rng)),
		"variables": variables,
	}
	// some clients omit operationName and rely on the document
	if eg.rng.Float32() < 0.5 {
		params["operationName"] = name
	}
	return body{value: params, target: variables, prefix: "variables"}, eg.graphqlResult("user")
}

func (eg *EntryGenerator) graphqlBatch() (body, body) {
	count := eg.rng.Intn(3) + 2
	batch := make([]any, 0, count)
	results := make([]any, 0, count)

	var first map[string]any
	var firstData map[string]any
	failed := eg.rng.Float64() < eg.errorRate

	for i := 0; i < count; i++ {
		name := eg.dict.OperationName(eg.rng)
		variables := eg.jsonGen.GenerateObject(2)
		if first == nil {
			first = variables
		}
		batch = append(batch, map[string]any{
			"operationName": name,
			"query":         fmt.Sprintf("query %s { %s { id } }", name, eg.dict.RandomWord(eg.rng)),
			"variables":     variables,
		})

		data := eg.jsonGen.GenerateRealisticObject("user")
		if firstData == nil {
			firstData = data
		}
		envelope := map[string]any{"data": data}
		// a batch fails partially: only the last operation errors
		if failed && i == count-1 {
			envelope = map[string]any{"data": nil, "errors": []any{eg.graphqlError()}}
		}
		results = append(results, envelope)
	}

	return body{value: map[string]any{"graphqlBatch": batch}, target: first, prefix: "graphqlBatch.0.variables"},
		body{value: results, target: firstData, prefix: "0.data"}
}

func (eg *EntryGenerator) graphqlPersisted() body {
	variables := eg.jsonGen.GenerateObject(2)
	return body{
		value: map[string]any{
			"query_hash": fmt.Sprintf("%016x", eg.rng.Uint64()),
			"variables":  variables,
		},
		target: variables,
		prefix: "variables",
	}
}

func (eg *EntryGenerator) graphqlResult(pattern string) body {
	data := eg.jsonGen.GenerateRealisticObject(pattern)
	if eg.rng.Float64() < eg.errorRate {
		gqlErr := eg.graphqlError()
		return body{
			value:  map[string]any{"data": nil, "errors": []any{gqlErr}},
			target: gqlErr,
			prefix: "errors.0",
		}
	}
	return body{value: map[string]any{"data": data}, target: data, prefix: "data"}
}

func (eg *EntryGenerator) graphqlError() map[string]any {
	return map[string]any{
		"message": strings.Join(eg.dict.RandomWords(4, eg.rng), " "),
		"path":    []any{eg.dict.RandomWord(eg.rng)},
	}
}

func (eg *EntryGenerator) annotation(index int, started time.Time, injections []injectionRequest) (*har.Entry, []InjectedTerm) {
	words := eg.dict.RandomWords(6, eg.rng)
	var injected []InjectedTerm
	for _, inj := range injections {
		words = append(words, inj.term)
		injected = append(injected, InjectedTerm{Term: inj.term, Location: inj.location, EntryIndex: index})
	}

	entry := &har.Entry{
		Entry: harhar.Entry{
			Start:   har.FormatStart(started.UnixMilli()),
			Comment: "ContentOnly",
			Request: harhar.Request{Method: strings.ToUpper(eg.dict.RandomWord(eg.rng))},
			Response: harhar.Response{
				StatusCode: 200,
				StatusText: "200 OK",
				Body: harhar.BodyResponseType{
					Size:     -1,
					MIMEType: "text/plain",
					Content:  strings.Join(words, " "),
				},
			},
		},
	}
	return entry, injected
}

func (eg *EntryGenerator) socket(index int, started time.Time, injections []injectionRequest) (*har.Entry, []InjectedTerm) {
	count := eg.rng.Intn(6) + 2
	ts := float64(started.UnixMilli()) / 1000

	messages := make([]har.WebSocketMessage, 0, count)
	var sent, received []map[string]any
	for i := 0; i < count; i++ {
		ts += float64(eg.rng.Intn(500)+1) / 1000
		payload := map[string]any{"type": eg.dict.RandomWord(eg.rng), "payload": eg.jsonGen.GenerateObject(2)}
		msgType := har.MessageReceive
		if i%2 == 0 {
			msgType = har.MessageSend
			sent = append(sent, payload)
		} else {
			received = append(received, payload)
		}
		messages = append(messages, har.WebSocketMessage{Type: msgType, Time: ts, Opcode: 1})
	}

	var injected []InjectedTerm
	for _, inj := range injections {
		record := InjectedTerm{Term: inj.term, Location: inj.location, EntryIndex: index}
		switch inj.location {
		case RequestBody:
			record.FieldPath = "0." + eg.jsonGen.InjectTerm(sent[0], inj.term)
		case ResponseBody:
			record.FieldPath = "0." + eg.jsonGen.InjectTerm(received[0], inj.term)
		}
		injected = append(injected, record)
	}

	si, ri := 0, 0
	for i := range messages {
		var payload map[string]any
		if messages[i].Type == har.MessageSend {
			payload, si = sent[si], si+1
		} else {
			payload, ri = received[ri], ri+1
		}
		data, _ := json.Marshal(payload)
		messages[i].Data = string(data)
	}

	url := "wss://realtime.example.com/" + eg.dict.RandomWord(eg.rng)
	for _, inj := range injections {
		if inj.location == URL {
			url += "/" + inj.term
		}
	}

	entry := &har.Entry{
		Entry: harhar.Entry{
			Start:   har.FormatStart(started.UnixMilli()),
			Time:    (ts - float64(started.UnixMilli())/1000) * 1000,
			Comment: "WebSocket",
			Request: harhar.Request{Method: "GET", URL: url, HTTPVersion: "HTTP/1.1"},
			Response: harhar.Response{
				StatusCode:  101,
				StatusText:  "Switching Protocols",
				HTTPVersion: "HTTP/1.1",
			},
		},
		WebSocketMessages:      messages,
		WebSocketAbnormalClose: eg.rng.Float64() < eg.errorRate,
	}
	return entry, injected
}

func (eg *EntryGenerator) generateRequest(method, url string, params any) harhar.Request {
	req := harhar.Request{
		Method:      method,
		URL:         url,
		HTTPVersion: "HTTP/1.1",
		Headers:     eg.generateHeaders(eg.rng.Intn(5) + 3),
		Cookies:     eg.generateCookies(eg.rng.Intn(3)),
		HeadersSize: eg.rng.Intn(500) + 200,
		BodySize:    -1,
	}
	if params != nil {
		content, _ := json.Marshal(params)
		req.Body = harhar.BodyType{MIMEType: "application/json", Content: string(content)}
		req.BodySize = len(content)
	}
	return req
}

func (eg *EntryGenerator) generateResponse(status int, result any) harhar.Response {
	content, _ := json.Marshal(result)
	return harhar.Response{
		StatusCode:  status,
		StatusText:  statusText(status),
		HTTPVersion: "HTTP/1.1",
		Headers:     eg.generateHeaders(eg.rng.Intn(6) + 3),
		Body: harhar.BodyResponseType{
			Size:     len(content),
			MIMEType: "application/json",
			Content:  string(content),
		},
		HeadersSize: eg.rng.Intn(700) + 300,
		BodySize:    len(content),
	}
}

func (eg *EntryGenerator) randomMethod() string {
	methods := []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
	return methods[eg.rng.Intn(len(methods))]
}

func (eg *EntryGenerator) randomStatus() int {
	if eg.rng.Float64() < eg.errorRate {
		errs := []int{400, 401, 403, 404, 500, 502, 503}
		return errs[eg.rng.Intn(len(errs))]
	}
	ok := []int{200, 200, 200, 201, 204}
	return ok[eg.rng.Intn(len(ok))]
}

var statusTexts = map[int]string{
	101: "Switching Protocols",
	200: "OK",
	201: "Created",
	204: "No Content",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
}

func statusText(code int) string {
	if text, ok := statusTexts[code]; ok {
		return text
	}
	return "Unknown"
}

func (eg *EntryGenerator) generateURL() string {
	domains := []string{"api.example.com", "service.test.org", "app.company.io"}
	url := "https://" + domains[eg.rng.Intn(len(domains))]
	for _, p := range eg.dict.RandomWords(eg.rng.Intn(3)+1, eg.rng) {
		url += "/" + p
	}
	return url
}

func (eg *EntryGenerator) generateIP() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		eg.rng.Intn(256), eg.rng.Intn(256), eg.rng.Intn(256), eg.rng.Intn(256))
}

func (eg *EntryGenerator) generateHeaders(count int) []harhar.NameValuePair {
	commonHeaders := []string{
		"Content-Type", "User-Agent", "Accept", "Accept-Encoding",
		"Cache-Control", "Connection", "Authorization", "Accept-Language",
	}

	headers := make([]harhar.NameValuePair, 0, count)
	used := make(map[string]bool)
	for i := 0; i < count && len(used) < len(commonHeaders); i++ {
		header := commonHeaders[eg.rng.Intn(len(commonHeaders))]
		if used[header] {
			continue
		}
		used[header] = true
		headers = append(headers, harhar.NameValuePair{
			Name:  header,
			Value: eg.headerValue(header),
		})
	}
	return headers
}

func (eg *EntryGenerator) headerValue(name string) string {
	switch name {
	case "Content-Type":
		return "application/json"
	case "User-Agent":
		return "Mozilla/5.0 (compatible; netlogs-hargen/1.0)"
	case "Accept":
		return "*/*"
	case "Accept-Encoding":
		return "gzip, br, zstd"
	case "Connection":
		return "keep-alive"
	case "Cache-Control":
		return "no-cache"
	case "Authorization":
		return "Bearer " + fmt.Sprintf("%016x", eg.rng.Uint64())
	default:
		return eg.dict.RandomWord(eg.rng)
	}
}

func (eg *EntryGenerator) generateCookies(count int) []harhar.Cookie {
	cookies := make([]harhar.Cookie, count)
	for i := range cookies {
		cookies[i] = harhar.Cookie{
			Name:  eg.dict.RandomWord(eg.rng),
			Value: eg.dict.RandomWord(eg.rng),
		}
	}
	return cookies
}
