package service

import (
	"errors"
	"strings"

	"github.com/investlog/internal/content"
	"github.com/investlog/internal/store"
)

var ErrPostNotFound = errors.New("post not found")

// PostService wraps read operations over the in-memory post collection.
type PostService struct {
	store *store.Store
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Category string
	Series   string
	Tag      string
	Search   string
	Page     int
	PerPage  int
}

// PostListResult aggregates paginated list data.
type PostListResult struct {
	Posts      []*content.Post
	Total      int
	TotalPages int
	Page       int
	PerPage    int
}

// NewPostService creates a PostService instance.
func NewPostService(st *store.Store) *PostService {
	return &PostService{store: st}
}

// List provides paginated posts based on filters. The underlying collection
// is already sorted by date descending, so pagination slices it directly.
func (s *PostService) List(filter PostFilter) *PostListResult {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}

	var matched []*content.Post
	for _, post := range s.store.All() {
		if matchesFilter(post, filter) {
			matched = append(matched, post)
		}
	}

	result.Total = len(matched)
	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = (result.Total + result.PerPage - 1) / result.PerPage
	}

	start := (result.Page - 1) * result.PerPage
	if start >= len(matched) {
		result.Posts = []*content.Post{}
		return result
	}
	end := start + result.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	result.Posts = matched[start:end]
	return result
}

// Get fetches a post by slug.
func (s *PostService) Get(slug string) (*content.Post, error) {
	post, ok := s.store.GetBySlug(slug)
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// RecordView bumps counters for a detail view.
func (s *PostService) RecordView(slug, visitorID string) (views, uniqueVisitors int, err error) {
	views, uniqueVisitors, ok := s.store.RecordView(slug, visitorID)
	if !ok {
		return 0, 0, ErrPostNotFound
	}
	return views, uniqueVisitors, nil
}

// Like records one like per visitor for a post.
func (s *PostService) Like(slug, visitorID string) (likes int, changed bool, err error) {
	likes, changed, ok := s.store.Like(slug, visitorID)
	if !ok {
		return 0, false, ErrPostNotFound
	}
	return likes, changed, nil
}

// Unlike reverts a visitor's like.
func (s *PostService) Unlike(slug, visitorID string) (likes int, changed bool, err error) {
	likes, changed, ok := s.store.Unlike(slug, visitorID)
	if !ok {
		return 0, false, ErrPostNotFound
	}
	return likes, changed, nil
}

func matchesFilter(post *content.Post, filter PostFilter) bool {
	if filter.Category != "" && !strings.EqualFold(post.Category, filter.Category) {
		return false
	}
	if filter.Series != "" && !strings.EqualFold(post.Series, filter.Series) {
		return false
	}
	if filter.Tag != "" && !containsFold(post.Tags, filter.Tag) {
		return false
	}

	if filter.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(filter.Search))
		if needle != "" && !searchMatch(post, needle) {
			return false
		}
	}

	return true
}

func searchMatch(post *content.Post, needle string) bool {
	if strings.Contains(strings.ToLower(post.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Excerpt), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Content), needle) {
		return true
	}
	return containsFold(post.Tags, needle)
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}
