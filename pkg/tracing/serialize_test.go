package tracing

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ihoka/sentry-agents/pkg/config"
	"github.com/ihoka/sentry-agents/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeNil(t *testing.T) {
	_, ok := Serialize(nil, 100)
	assert.False(t, ok)
}

func TestSerializeStringPassthrough(t *testing.T) {
	s, ok := Serialize("hello", 100)
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestSerializeTruncation(t *testing.T) {
	long := strings.Repeat("a", 15)
	s, ok := Serialize(long, 10)
	require.True(t, ok)
	assert.Len(t, s, 13)
	assert.Equal(t, strings.Repeat("a", 10)+"...", s)
}

func TestSerializeTruncationMultibyte(t *testing.T) {
	long := strings.Repeat("é", 10)
	s, ok := Serialize(long, 5)
	require.True(t, ok)

	assert.True(t, utf8.ValidString(s))
	assert.Equal(t, strings.Repeat("é", 5)+"...", s)
	assert.Equal(t, 8, utf8.RuneCountInString(s))

	// At or below the limit in characters, returned verbatim even when
	// the byte length exceeds it
	s, ok = Serialize(strings.Repeat("é", 5), 5)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("é", 5), s)
}

func TestSerializeAtLimitVerbatim(t *testing.T) {
	exact := strings.Repeat("b", 10)
	s, ok := Serialize(exact, 10)
	require.True(t, ok)
	assert.Equal(t, exact, s)
}

func TestSerializeMapToJSON(t *testing.T) {
	s, ok := Serialize(map[string]interface{}{"city": "Vienna"}, 100)
	require.True(t, ok)
	assert.JSONEq(t, `{"city":"Vienna"}`, s)
}

func TestSerializeMessageListToJSON(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "user", Content: "hi"},
	}
	s, ok := Serialize(messages, 1000)
	require.True(t, ok)
	assert.Contains(t, s, `"hi"`)
	assert.True(t, strings.HasPrefix(s, "["))
}

func TestSerializeScalarFallback(t *testing.T) {
	s, ok := Serialize(42, 100)
	require.True(t, ok)
	assert.Equal(t, "42", s)

	s, ok = Serialize(true, 100)
	require.True(t, ok)
	assert.Equal(t, "true", s)
}

func TestFilterWithoutHook(t *testing.T) {
	attrs := map[string]interface{}{"secret": "hunter2"}
	out := Filter(attrs, config.Config{})
	assert.Equal(t, attrs, out)
}

func TestFilterCopySemantics(t *testing.T) {
	cfg := config.Config{
		BeforeSendAttributes: func(attributes map[string]interface{}) map[string]interface{} {
			delete(attributes, "secret")
			attributes["added"] = true
			return attributes
		},
	}

	attrs := map[string]interface{}{
		"secret": "hunter2",
		"public": "fine",
	}

	out := Filter(attrs, cfg)

	assert.NotContains(t, out, "secret")
	assert.Equal(t, true, out["added"])

	// The original map is left alone no matter what the hook did
	assert.Equal(t, "hunter2", attrs["secret"])
	assert.NotContains(t, attrs, "added")
}
