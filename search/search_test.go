package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarker_PlainText(t *testing.T) {
	m, err := NewMarker("a.b(", PlainText)
	require.NoError(t, err)

	assert.True(t, m.MatchString("xx A.B( yy"))
	assert.False(t, m.MatchString("aXb("))
	assert.Equal(t, "a.b(", m.String())
	assert.Equal(t, PlainText, m.Mode())
}

func TestNewMarker_Regex(t *testing.T) {
	m, err := NewMarker(`user-\d+`, Regex)
	require.NoError(t, err)

	assert.True(t, m.MatchString("USER-42"))
	assert.False(t, m.MatchString("user-x"))
	assert.Equal(t, [][]int{{4, 11}}, m.FindAllIndex("see user-12"))

	_, err = NewMarker("(", Regex)
	assert.Error(t, err)
}

func TestMarker_Nil(t *testing.T) {
	var m *Marker
	assert.False(t, m.MatchString("anything"))
	assert.Nil(t, m.FindAllIndex("anything"))
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("", PlainText, "")
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
	assert.False(t, cfg.HasSearch())

	cfg, err = NewConfig("user", PlainText, "graphql")
	require.NoError(t, err)
	assert.True(t, cfg.HasSearch())
	assert.False(t, cfg.IsEmpty())

	_, err = NewConfig("[", Regex, "")
	assert.Error(t, err)
}

func TestVisible(t *testing.T) {
	tree := map[string]any{
		"user": map[string]any{
			"name":  "Quobix",
			"tags":  []any{"admin", map[string]any{"nested": float64(42)}},
			"alive": true,
			"gone":  nil,
		},
	}

	cases := map[string]bool{
		"user":   true,
		"quobix": true,
		"ADMIN":  true,
		"nested": true,
		"42":     true,
		"true":   true,
		"null":   true,
		"tags":   true,
		"nobody": false,
	}
	for query, want := range cases {
		m, err := NewMarker(query, PlainText)
		require.NoError(t, err)
		assert.Equal(t, want, Visible(tree, m), query)
	}
}

func TestVisible_ArrayIndicesNotMatched(t *testing.T) {
	m, err := NewMarker("0", PlainText)
	require.NoError(t, err)
	assert.False(t, Visible([]any{"a", "b"}, m))
}

func TestVisible_Scalars(t *testing.T) {
	m, err := NewMarker("hello", PlainText)
	require.NoError(t, err)

	assert.True(t, Visible("say hello", m))
	assert.False(t, Visible(float64(3), m))
	assert.False(t, Visible(nil, nil))
}

type frame struct {
	Direction string `json:"direction"`
	Payload   string `json:"payload"`
}

func TestVisible_NormalizesStructs(t *testing.T) {
	m, err := NewMarker("pong", PlainText)
	require.NoError(t, err)

	assert.True(t, Visible([]frame{{Direction: "receive", Payload: "pong"}}, m))
	assert.True(t, Visible(map[string]any{"frames": []frame{{Payload: "pong"}}}, m))

	m, err = NewMarker("direction", PlainText)
	require.NoError(t, err)
	assert.True(t, Visible(frame{}, m))
}

func TestMatch(t *testing.T) {
	params := map[string]any{"id": "u-1"}
	content := map[string]any{"ok": true}

	assert.True(t, Match("anything", params, content, Config{}))

	cfg := Config{FilterValue: "graph"}
	assert.True(t, Match("/graphql", params, content, cfg))
	assert.False(t, Match("/rest", params, content, cfg))
	assert.False(t, Match("/GRAPHQL", params, content, cfg), "filter value is case sensitive")

	cfg, err := NewConfig("u-1", PlainText, "")
	require.NoError(t, err)
	assert.True(t, Match("x", params, content, cfg))

	cfg, err = NewConfig("ok", PlainText, "")
	require.NoError(t, err)
	assert.True(t, Match("x", params, content, cfg))

	cfg, err = NewConfig("missing", PlainText, "")
	require.NoError(t, err)
	assert.False(t, Match("x", params, content, cfg))

	cfg, err = NewConfig("ok", PlainText, "/rest")
	require.NoError(t, err)
	assert.False(t, Match("/graphql", params, content, cfg))
	assert.True(t, Match("/rest/v1", params, content, cfg))
}

func TestMatch_SearchValueWithoutMarker(t *testing.T) {
	cfg := Config{SearchValue: "missing"}
	assert.True(t, Match("x", nil, nil, cfg))
}

func TestPathFilter(t *testing.T) {
	tree := map[string]any{
		"params": map[string]any{"variables": map[string]any{"id": "u-1"}},
		"content": map[string]any{
			"users": []any{
				map[string]any{"name": "alice"},
				map[string]any{"name": "bob"},
			},
		},
	}

	f, err := NewPathFilter("$.params.variables.id", "")
	require.NoError(t, err)
	assert.True(t, f.Match(tree))
	assert.Equal(t, "$.params.variables.id", f.String())

	f, err = NewPathFilter("$.content.users[*].name", "BOB")
	require.NoError(t, err)
	assert.True(t, f.Match(tree))

	f, err = NewPathFilter("$.content.users[*].name", "carol")
	require.NoError(t, err)
	assert.False(t, f.Match(tree))

	f, err = NewPathFilter("$.params.nothing", "")
	require.NoError(t, err)
	assert.False(t, f.Match(tree))

	_, err = NewPathFilter("$.users[", "")
	assert.Error(t, err)
}

func TestExpression(t *testing.T) {
	env := Env{
		Name:     "query::GetUser",
		Tag:      "GQL",
		Kind:     "Network",
		Duration: 320,
		Params:   map[string]any{"operationName": "GetUser"},
	}

	cases := map[string]bool{
		`tag == "GQL"`:                          true,
		`tag == "GQL" && duration > 250`:        true,
		`error`:                                 false,
		`name contains "GetUser"`:               true,
		`kind == "WebSocket"`:                   false,
		`params.operationName == "GetUser"`:     true,
		`not error and name startsWith "query"`: true,
	}
	for source, want := range cases {
		e, err := CompileExpression(source)
		require.NoError(t, err, source)
		got, err := e.Match(env)
		require.NoError(t, err, source)
		assert.Equal(t, want, got, source)
	}
}

func TestCompileExpression_Errors(t *testing.T) {
	_, err := CompileExpression(`name + 1 ==`)
	assert.Error(t, err)

	_, err = CompileExpression(`name`)
	assert.Error(t, err, "non boolean expressions are rejected")

	_, err = CompileExpression(`unknown == 1`)
	assert.Error(t, err)
}
