package service

import (
	"errors"
	"testing"

	"github.com/investlog/internal/content"
	"github.com/investlog/internal/store"
)

func setupPostService(posts ...*content.Post) *PostService {
	st := store.New()
	st.ReplaceAll(posts)
	return NewPostService(st)
}

func samplePosts() []*content.Post {
	return []*content.Post{
		{Slug: "etf-guide", Title: "ETF 定投指南", Excerpt: "指数基金入门", Content: "正文", Category: "fund", Tags: []string{"ETF", "定投"}, Date: "2024-03-01"},
		{Slug: "q1-review", Title: "一季度复盘", Excerpt: "复盘", Content: "持仓变化", Category: "stock", Tags: []string{"复盘"}, Series: "季度复盘", Date: "2024-02-01"},
		{Slug: "bond-basics", Title: "债券基础", Excerpt: "债券", Content: "久期与利率", Category: "bond", Tags: []string{}, Date: "2024-01-01"},
	}
}

func TestListFiltersByCategory(t *testing.T) {
	svc := setupPostService(samplePosts()...)

	result := svc.List(PostFilter{Category: "FUND"})

	if result.Total != 1 || len(result.Posts) != 1 {
		t.Fatalf("expected 1 fund post, got %d", result.Total)
	}
	if result.Posts[0].Slug != "etf-guide" {
		t.Fatalf("unexpected post: %s", result.Posts[0].Slug)
	}
}

func TestListFiltersBySeriesAndTag(t *testing.T) {
	svc := setupPostService(samplePosts()...)

	if result := svc.List(PostFilter{Series: "季度复盘"}); result.Total != 1 || result.Posts[0].Slug != "q1-review" {
		t.Fatalf("series filter failed: %+v", result)
	}
	if result := svc.List(PostFilter{Tag: "etf"}); result.Total != 1 || result.Posts[0].Slug != "etf-guide" {
		t.Fatalf("tag filter should be case-insensitive: %+v", result)
	}
}

func TestListSearchesAcrossFields(t *testing.T) {
	svc := setupPostService(samplePosts()...)

	if result := svc.List(PostFilter{Search: "久期"}); result.Total != 1 || result.Posts[0].Slug != "bond-basics" {
		t.Fatalf("content search failed: %+v", result)
	}
	if result := svc.List(PostFilter{Search: "定投"}); result.Total != 1 || result.Posts[0].Slug != "etf-guide" {
		t.Fatalf("title search failed: %+v", result)
	}
	if result := svc.List(PostFilter{Search: "没有这个词"}); result.Total != 0 {
		t.Fatalf("expected no matches, got %d", result.Total)
	}
}

func TestListPaginates(t *testing.T) {
	svc := setupPostService(samplePosts()...)

	page1 := svc.List(PostFilter{Page: 1, PerPage: 2})
	if len(page1.Posts) != 2 || page1.TotalPages != 2 || page1.Total != 3 {
		t.Fatalf("unexpected first page: %+v", page1)
	}

	page2 := svc.List(PostFilter{Page: 2, PerPage: 2})
	if len(page2.Posts) != 1 || page2.Posts[0].Slug != "bond-basics" {
		t.Fatalf("unexpected second page: %+v", page2)
	}

	beyond := svc.List(PostFilter{Page: 9, PerPage: 2})
	if len(beyond.Posts) != 0 {
		t.Fatalf("page past the end should be empty, got %d posts", len(beyond.Posts))
	}
}

func TestGetUnknownSlug(t *testing.T) {
	svc := setupPostService(samplePosts()...)

	if _, err := svc.Get("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, _, err := svc.RecordView("missing", "v1"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for view, got %v", err)
	}
}
