package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewPageEnvelope(t *testing.T) {
	t.Run("MiddlePage", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles/1/reviews?page=2&page_size=10")
		env := NewPageEnvelope(u, 35, 2, 10, []string{"a"})

		assert.Equal(t, int64(35), env.Count)
		require.NotNil(t, env.Next)
		assert.Contains(t, *env.Next, "page=3")
		require.NotNil(t, env.Previous)
		assert.Contains(t, *env.Previous, "page=1")
	})

	t.Run("FirstPage", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles/1/reviews")
		env := NewPageEnvelope(u, 35, 1, 10, nil)

		require.NotNil(t, env.Next)
		assert.Contains(t, *env.Next, "page=2")
		assert.Nil(t, env.Previous)
	})

	t.Run("LastPage", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles/1/reviews?page=4")
		env := NewPageEnvelope(u, 35, 4, 10, nil)

		assert.Nil(t, env.Next)
		assert.NotNil(t, env.Previous)
	})

	t.Run("SinglePage", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles/1/reviews")
		env := NewPageEnvelope(u, 3, 1, 10, nil)

		assert.Nil(t, env.Next)
		assert.Nil(t, env.Previous)
	})

	t.Run("OtherQueryParamsPreserved", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/users?search=al&page=1")
		env := NewPageEnvelope(u, 20, 1, 10, nil)

		require.NotNil(t, env.Next)
		assert.Contains(t, *env.Next, "search=al")
	})
}

func TestNewLimitOffsetEnvelope(t *testing.T) {
	t.Run("MiddleWindow", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles?limit=10&offset=10")
		env := NewLimitOffsetEnvelope(u, 35, 10, 10, nil)

		assert.Equal(t, int64(35), env.Count)
		require.NotNil(t, env.Next)
		assert.Contains(t, *env.Next, "offset=20")
		require.NotNil(t, env.Previous)
		assert.Contains(t, *env.Previous, "offset=0")
	})

	t.Run("Start", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles")
		env := NewLimitOffsetEnvelope(u, 35, 10, 0, nil)

		require.NotNil(t, env.Next)
		assert.Contains(t, *env.Next, "offset=10")
		assert.Nil(t, env.Previous)
	})

	t.Run("End", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles?limit=10&offset=30")
		env := NewLimitOffsetEnvelope(u, 35, 10, 30, nil)

		assert.Nil(t, env.Next)
		assert.NotNil(t, env.Previous)
	})

	t.Run("PreviousClampedToZero", func(t *testing.T) {
		u := mustParseURL(t, "/api/v1/titles?limit=10&offset=5")
		env := NewLimitOffsetEnvelope(u, 35, 10, 5, nil)

		require.NotNil(t, env.Previous)
		assert.Contains(t, *env.Previous, "offset=0")
	})
}
