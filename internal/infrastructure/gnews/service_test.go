package gnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceWithoutKey(t *testing.T) {
	t.Setenv("GNEWS_API_KEY", "")
	assert.Nil(t, NewService())
}

func TestEndpoints(t *testing.T) {
	t.Setenv("GNEWS_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("apikey"))
		assert.Equal(t, "en", q.Get("lang"))

		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "climate", q.Get("q"))
			assert.Equal(t, "3", q.Get("max"))
		case "/top-headlines":
			assert.Equal(t, "sports", q.Get("category"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "10", q.Get("max"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"totalArticles":1,"articles":[{"title":"T","publishedAt":"2026-10-17T09:30:00Z","source":{"name":"S"}}]}`))
	}))
	defer server.Close()

	svc := NewService().SetBaseURL(server.URL)

	t.Run("search", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), "climate", 3)
		require.NoError(t, err)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "S", resp.Articles[0].Source.Name)
	})

	t.Run("top headlines", func(t *testing.T) {
		resp, err := svc.TopHeadlines(context.Background(), "sports", 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalArticles)
	})
}
