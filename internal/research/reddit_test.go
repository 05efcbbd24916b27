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

	"github.com/mshore/blogforge/internal/httputil"
)

const redditFixture = `{
  "kind": "Listing",
  "data": {
    "children": [
      {
        "kind": "t3",
        "data": {
          "title": "What do you think about this?",
          "selftext": "Long discussion body",
          "permalink": "/r/golang/comments/abc/what_do_you_think/",
          "author": "gopher123",
          "created_utc": 1746057600.0,
          "ups": 412,
          "num_comments": 87
        }
      },
      {
        "kind": "t3",
        "data": {
          "title": "Another thread",
          "selftext": "",
          "permalink": "/r/golang/comments/def/another_thread/",
          "author": "someone",
          "created_utc": 1746144000.0,
          "ups": 5,
          "num_comments": 2
        }
      }
    ]
  }
}`

func testRedditAdapter() *RedditAdapter {
	return &RedditAdapter{
		Client:        &http.Client{Timeout: 5 * time.Second},
		UserAgent:     "blogforge-test",
		PreviewLength: 500,
		Log:           zap.NewNop(),
	}
}

func TestRedditFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "blogforge-test" {
			t.Errorf("User-Agent = %q", got)
		}
		fmt.Fprint(w, redditFixture)
	}))
	defer server.Close()

	orig := redditSearchBase
	redditSearchBase = server.URL
	defer func() { redditSearchBase = orig }()

	items := testRedditAdapter().Fetch(context.Background(), "golang generics", 5)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	first := items[0]
	if first.Title != "What do you think about this?" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://www.reddit.com/r/golang/comments/abc/what_do_you_think/" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Engagement.Upvotes != 412 || first.Engagement.Comments != 87 {
		t.Errorf("engagement = %+v", first.Engagement)
	}
	want := time.Unix(1746057600, 0).UTC()
	if !first.PublishedAt.Equal(want) {
		t.Errorf("published = %v, want %v", first.PublishedAt, want)
	}
}

func TestRedditRetriesRateLimit(t *testing.T) {
	origDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = origDelay }()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, redditFixture)
	}))
	defer server.Close()

	orig := redditSearchBase
	redditSearchBase = server.URL
	defer func() { redditSearchBase = orig }()

	items := testRedditAdapter().Fetch(context.Background(), "golang generics", 5)
	if len(items) != 2 {
		t.Fatalf("got %d items after retry, want 2", len(items))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
}

func TestRedditMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>blocked</html>")
	}))
	defer server.Close()

	orig := redditSearchBase
	redditSearchBase = server.URL
	defer func() { redditSearchBase = orig }()

	if items := testRedditAdapter().Fetch(context.Background(), "anything", 5); items != nil {
		t.Errorf("malformed body returned items: %+v", items)
	}
}

func TestRedditCeiling(t *testing.T) {
	if got := clampCount(100, redditCeiling); got != 25 {
		t.Errorf("clamp = %d, want 25", got)
	}
}
