// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

const newsAPIFixture = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": null, "name": "Example Times"},
      "author": "",
      "title": "Article one",
      "description": "Description one",
      "url": "https://example.com/a1",
      "publishedAt": "2026-05-01T12:00:00Z"
    },
    {
      "source": {"id": null, "name": "Example Post"},
      "author": "Bob Writer",
      "title": "Article two",
      "description": "Description two",
      "url": "https://example.com/a2",
      "publishedAt": "2026-05-02T08:30:00Z"
    }
  ]
}`

func testNewsAPIAdapter(key string) *NewsAPIAdapter {
	return &NewsAPIAdapter{
		Client:    &http.Client{Timeout: 5 * time.Second},
		UserAgent: "blogforge-test",
		APIKey:    key,
		Log:       zap.NewNop(),
	}
}

func TestNewsAPIFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		if got := r.URL.Query().Get("pageSize"); got != "2" {
			t.Errorf("pageSize = %q", got)
		}
		fmt.Fprint(w, newsAPIFixture)
	}))
	defer server.Close()

	orig := newsAPIBase
	newsAPIBase = server.URL
	defer func() { newsAPIBase = orig }()

	items := testNewsAPIAdapter("test-key").Fetch(context.Background(), "ai safety", 2)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// Empty author falls back to the source name.
	if items[0].Author != "Example Times" {
		t.Errorf("author fallback = %q", items[0].Author)
	}
	if items[1].Author != "Bob Writer" {
		t.Errorf("author = %q", items[1].Author)
	}
	want := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if !items[0].PublishedAt.Equal(want) {
		t.Errorf("published = %v, want %v", items[0].PublishedAt, want)
	}
}

func TestNewsAPIUnconfigured(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, newsAPIFixture)
	}))
	defer server.Close()

	orig := newsAPIBase
	newsAPIBase = server.URL
	defer func() { newsAPIBase = orig }()

	a := testNewsAPIAdapter("")
	if a.Configured() {
		t.Error("adapter without key reports configured")
	}
	if items := a.Fetch(context.Background(), "anything", 3); items != nil {
		t.Errorf("unconfigured fetch returned items: %+v", items)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("server hit %d times, want 0", calls)
	}
}

func TestNewsAPIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error", "code": "rateLimited", "message": "too many requests"}`)
	}))
	defer server.Close()

	orig := newsAPIBase
	newsAPIBase = server.URL
	defer func() { newsAPIBase = orig }()

	if items := testNewsAPIAdapter("test-key").Fetch(context.Background(), "anything", 3); items != nil {
		t.Errorf("error status returned items: %+v", items)
	}
}

func TestNewsAPIPlatform(t *testing.T) {
	if got := testNewsAPIAdapter("k").Platform(); got != types.PlatformNewsAPI {
		t.Errorf("platform = %q", got)
	}
}
