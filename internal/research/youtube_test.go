// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const youtubeSearchFixture = `{
  "items": [
    {
      "id": {"kind": "youtube#video", "videoId": "vid-1"},
      "snippet": {
        "title": "Rust &amp; Go compared",
        "description": "A long comparison video",
        "channelTitle": "Tech Channel",
        "publishedAt": "2026-04-10T09:00:00Z"
      }
    },
    {
      "id": {"kind": "youtube#video", "videoId": "vid-2"},
      "snippet": {
        "title": "Second video",
        "description": "More content",
        "channelTitle": "Other Channel",
        "publishedAt": "2026-04-11T09:00:00Z"
      }
    }
  ]
}`

const youtubeVideosFixture = `{
  "items": [
    {"id": "vid-1", "statistics": {"viewCount": "12345", "likeCount": "99", "commentCount": "67"}},
    {"id": "vid-2", "statistics": {"viewCount": "500", "commentCount": "3"}}
  ]
}`

func testYouTubeAdapter(key string) *YouTubeAdapter {
	return &YouTubeAdapter{
		Client:    &http.Client{Timeout: 5 * time.Second},
		UserAgent: "blogforge-test",
		APIKey:    key,
		Log:       zap.NewNop(),
	}
}

func TestYouTubeFetch(t *testing.T) {
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "yt-key" {
			t.Errorf("key = %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "video" {
			t.Errorf("type = %q", got)
		}
		fmt.Fprint(w, youtubeSearchFixture)
	}))
	defer search.Close()
	videos := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "vid-1,vid-2" {
			t.Errorf("id = %q", got)
		}
		fmt.Fprint(w, youtubeVideosFixture)
	}))
	defer videos.Close()

	origSearch, origVideos := youtubeSearchBase, youtubeVideosBase
	youtubeSearchBase, youtubeVideosBase = search.URL, videos.URL
	defer func() { youtubeSearchBase, youtubeVideosBase = origSearch, origVideos }()

	items := testYouTubeAdapter("yt-key").Fetch(context.Background(), "rust vs go", 5)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Rust & Go compared" {
		t.Errorf("title not unescaped: %q", items[0].Title)
	}
	if items[0].URL != "https://www.youtube.com/watch?v=vid-1" {
		t.Errorf("url = %q", items[0].URL)
	}
	if items[0].Author != "Tech Channel" {
		t.Errorf("author = %q", items[0].Author)
	}
	if items[0].Engagement.Views != 12345 || items[0].Engagement.Comments != 67 {
		t.Errorf("engagement = %+v", items[0].Engagement)
	}
	if items[1].Engagement.Views != 500 {
		t.Errorf("engagement = %+v", items[1].Engagement)
	}
}

func TestYouTubeStatisticsBestEffort(t *testing.T) {
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, youtubeSearchFixture)
	}))
	defer search.Close()
	videos := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer videos.Close()

	origSearch, origVideos := youtubeSearchBase, youtubeVideosBase
	youtubeSearchBase, youtubeVideosBase = search.URL, videos.URL
	defer func() { youtubeSearchBase, youtubeVideosBase = origSearch, origVideos }()

	items := testYouTubeAdapter("yt-key").Fetch(context.Background(), "rust vs go", 5)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 even when statistics fail", len(items))
	}
	if items[0].Engagement.Views != 0 {
		t.Errorf("views = %d, want 0 without statistics", items[0].Engagement.Views)
	}
}

func TestYouTubeUnconfigured(t *testing.T) {
	a := testYouTubeAdapter("")
	if a.Configured() {
		t.Error("adapter without key reports configured")
	}
	if items := a.Fetch(context.Background(), "anything", 3); items != nil {
		t.Errorf("unconfigured fetch returned items: %+v", items)
	}
}

func TestYouTubeSearchFailure(t *testing.T) {
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer search.Close()

	orig := youtubeSearchBase
	youtubeSearchBase = search.URL
	defer func() { youtubeSearchBase = orig }()

	if items := testYouTubeAdapter("yt-key").Fetch(context.Background(), "anything", 3); items != nil {
		t.Errorf("failed search returned items: %+v", items)
	}
}
