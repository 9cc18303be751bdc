package store

import (
	"testing"

	"github.com/investlog/internal/content"
)

func seedPosts() []*content.Post {
	return []*content.Post{
		{Slug: "first", Title: "First", Category: "stock", Date: "2024-02-01"},
		{Slug: "second", Title: "Second", Category: "fund", Date: "2024-01-01"},
	}
}

func TestReplaceAllDropsDuplicateSlugs(t *testing.T) {
	st := New()

	dropped := st.ReplaceAll([]*content.Post{
		{Slug: "dup", Title: "Kept"},
		{Slug: "dup", Title: "Dropped"},
		{Slug: "other", Title: "Other"},
	})

	if dropped != 1 {
		t.Fatalf("expected 1 duplicate dropped, got %d", dropped)
	}
	if st.Len() != 2 {
		t.Fatalf("expected 2 posts, got %d", st.Len())
	}
	post, ok := st.GetBySlug("dup")
	if !ok || post.Title != "Kept" {
		t.Fatalf("first post per slug should win, got %+v", post)
	}
}

func TestReplaceAllResetsCounters(t *testing.T) {
	st := New()
	st.ReplaceAll(seedPosts())

	if _, _, ok := st.RecordView("first", "v1"); !ok {
		t.Fatalf("expected view to be recorded")
	}
	if _, _, ok := st.Like("first", "v1"); !ok {
		t.Fatalf("expected like to be recorded")
	}

	st.ReplaceAll(seedPosts())

	post, _ := st.GetBySlug("first")
	if post.Views != 0 || post.Likes != 0 {
		t.Fatalf("rebuild should reset counters, got views=%d likes=%d", post.Views, post.Likes)
	}
	likes, changed, _ := st.Like("first", "v1")
	if likes != 1 || !changed {
		t.Fatalf("visitor should be able to like again after rebuild, likes=%d changed=%v", likes, changed)
	}
}

func TestRecordViewCountsUniqueVisitors(t *testing.T) {
	st := New()
	st.ReplaceAll(seedPosts())

	st.RecordView("first", "v1")
	st.RecordView("first", "v1")
	views, unique, ok := st.RecordView("first", "v2")

	if !ok {
		t.Fatalf("expected post to exist")
	}
	if views != 3 {
		t.Fatalf("every hit should count, got %d", views)
	}
	if unique != 2 {
		t.Fatalf("expected 2 unique visitors, got %d", unique)
	}
}

func TestLikeDedupesPerVisitor(t *testing.T) {
	st := New()
	st.ReplaceAll(seedPosts())

	likes, changed, _ := st.Like("first", "v1")
	if likes != 1 || !changed {
		t.Fatalf("first like should count: likes=%d changed=%v", likes, changed)
	}

	likes, changed, _ = st.Like("first", "v1")
	if likes != 1 || changed {
		t.Fatalf("repeat like should be a no-op: likes=%d changed=%v", likes, changed)
	}

	likes, changed, _ = st.Unlike("first", "v1")
	if likes != 0 || !changed {
		t.Fatalf("unlike should revert: likes=%d changed=%v", likes, changed)
	}

	likes, changed, _ = st.Unlike("first", "v1")
	if likes != 0 || changed {
		t.Fatalf("repeat unlike should be a no-op: likes=%d changed=%v", likes, changed)
	}
}

func TestUnknownSlug(t *testing.T) {
	st := New()
	st.ReplaceAll(seedPosts())

	if _, ok := st.GetBySlug("missing"); ok {
		t.Fatalf("unknown slug should not resolve")
	}
	if _, _, ok := st.RecordView("missing", "v1"); ok {
		t.Fatalf("view on unknown slug should fail")
	}
	if _, _, ok := st.Like("missing", "v1"); ok {
		t.Fatalf("like on unknown slug should fail")
	}
}
