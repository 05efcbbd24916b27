// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestBundleByPlatform(t *testing.T) {
	b := ResearchBundle{
		Items: []ResearchItem{
			{Platform: PlatformGoogleNews, Title: "N1"},
			{Platform: PlatformReddit, Title: "R1"},
			{Platform: PlatformGoogleNews, Title: "N2"},
		},
	}

	news := b.ByPlatform(PlatformGoogleNews)
	if len(news) != 2 || news[0].Title != "N1" || news[1].Title != "N2" {
		t.Errorf("ByPlatform = %+v", news)
	}
	if got := b.ByPlatform(PlatformYouTube); got != nil {
		t.Errorf("ByPlatform for absent platform = %+v", got)
	}
}

func TestBundleIsEmpty(t *testing.T) {
	var b ResearchBundle
	if !b.IsEmpty() {
		t.Error("zero bundle should be empty")
	}
	b.Items = append(b.Items, ResearchItem{Platform: PlatformReddit, Title: "x"})
	if b.IsEmpty() {
		t.Error("bundle with items reported empty")
	}
}

func TestPlatformLabel(t *testing.T) {
	if got := PlatformGoogleNews.Label(); got != "Google News" {
		t.Errorf("label = %q", got)
	}
	if got := SourcePlatform("custom").Label(); got != "custom" {
		t.Errorf("unknown platform label = %q", got)
	}
}
