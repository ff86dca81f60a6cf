package pagelist

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerystring(t *testing.T) {
	t.Run("sets page key", func(t *testing.T) {
		got := Querystring(url.Values{}, 2, "mypage", DefaultPage)
		assert.Equal(t, "?mypage=2", got)
	})

	t.Run("default page omits key", func(t *testing.T) {
		got := Querystring(url.Values{}, 3, "mypage", 3)
		assert.Equal(t, "", got)
	})

	t.Run("default page drops existing key", func(t *testing.T) {
		existing := url.Values{"mypage": {"7"}}
		got := Querystring(existing, 1, "mypage", DefaultPage)
		assert.Equal(t, "", got)
	})

	t.Run("preserves unrelated parameters", func(t *testing.T) {
		existing := url.Values{"mypage": {"1"}, "foo": {"bar"}}
		got := Querystring(existing, 4, "mypage", DefaultPage)
		assert.Contains(t, got, "mypage=4")
		assert.Contains(t, got, "foo=bar")
		assert.Equal(t, byte('?'), got[0])
	})

	t.Run("strips meta keys", func(t *testing.T) {
		existing := url.Values{"querystring_key": {"mykey"}}
		got := Querystring(existing, 5, "mypage", DefaultPage, "querystring_key")
		assert.Equal(t, "?mypage=5", got)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		existing := url.Values{"foo": {"bar"}, "mypage": {"1"}}
		_ = Querystring(existing, 9, "mypage", DefaultPage)
		assert.Equal(t, url.Values{"foo": {"bar"}, "mypage": {"1"}}, existing)
	})
}

func TestQuerystring_RoundTrip(t *testing.T) {
	// Composing for p, re-parsing, then composing for q must set the key to q
	// and keep every unrelated parameter.
	first := Querystring(url.Values{"tag": {"go"}}, 5, "page", DefaultPage)

	parsed, err := url.ParseQuery(first[1:])
	require.NoError(t, err)

	second := Querystring(parsed, 8, "page", DefaultPage)
	reparsed, err := url.ParseQuery(second[1:])
	require.NoError(t, err)

	assert.Equal(t, "8", reparsed.Get("page"))
	assert.Equal(t, "go", reparsed.Get("tag"))
	assert.Len(t, reparsed, 2)
}
