package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type followUp struct {
	Question string   `json:"question"`
	Pills    []string `json:"pills"`
}

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "Plain object", content: `{"question":"Q?","pills":["a","b"]}`},
		{name: "Fenced with language tag", content: "```json\n{\"question\":\"Q?\",\"pills\":[\"a\",\"b\"]}\n```"},
		{name: "Fenced without language tag", content: "```\n{\"question\":\"Q?\",\"pills\":[\"a\",\"b\"]}\n```"},
		{name: "Surrounded by prose", content: "Here you go:\n{\"question\":\"Q?\",\"pills\":[\"a\",\"b\"]}\nGood luck!"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got followUp
			require.NoError(t, DecodeJSON(tc.content, &got))
			assert.Equal(t, "Q?", got.Question)
			assert.Equal(t, []string{"a", "b"}, got.Pills)
		})
	}
}

func TestDecodeJSON_Failures(t *testing.T) {
	var got followUp
	assert.Error(t, DecodeJSON("", &got))
	assert.Error(t, DecodeJSON("no json here at all", &got))
	assert.Error(t, DecodeJSON("```json\n{\"question\": \n```", &got))
}

func TestSnippet_TruncatesByRune(t *testing.T) {
	long := strings.Repeat("é", 130)

	got := snippet(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 120)+"...", got)
	assert.Equal(t, "short text", snippet("  short \n text "))
}
