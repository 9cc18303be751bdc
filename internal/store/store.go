// Package store holds the in-memory post collection. The collection is
// rebuilt wholesale from the content tree; nothing here is durable, view and
// like counters reset on restart.
package store

import (
	"sync"

	"github.com/investlog/internal/content"
)

// Store 是进程内唯一的文章集合，按 slug 建立索引。
type Store struct {
	mu       sync.RWMutex
	posts    []*content.Post
	bySlug   map[string]*content.Post
	likedBy  map[string]map[string]bool
	viewedBy map[string]map[string]bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		bySlug:   make(map[string]*content.Post),
		likedBy:  make(map[string]map[string]bool),
		viewedBy: make(map[string]map[string]bool),
	}
}

// ReplaceAll swaps the whole collection for a fresh import, enforcing slug
// uniqueness by keeping the first post seen for each slug. Returns the number
// of duplicates dropped. Counters of previous posts are discarded with them.
func (s *Store) ReplaceAll(posts []*content.Post) int {
	bySlug := make(map[string]*content.Post, len(posts))
	kept := make([]*content.Post, 0, len(posts))
	dropped := 0

	for _, post := range posts {
		if _, exists := bySlug[post.Slug]; exists {
			dropped++
			continue
		}
		bySlug[post.Slug] = post
		kept = append(kept, post)
	}

	s.mu.Lock()
	s.posts = kept
	s.bySlug = bySlug
	s.likedBy = make(map[string]map[string]bool)
	s.viewedBy = make(map[string]map[string]bool)
	s.mu.Unlock()

	return dropped
}

// All returns the collection in import order (date descending).
func (s *Store) All() []*content.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*content.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// GetBySlug looks up one post. The second return mirrors map access.
func (s *Store) GetBySlug(slug string) (*content.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.bySlug[slug]
	return post, ok
}

// RecordView bumps the view counter and tracks the visitor for the unique
// count. Best effort: counters are ephemeral and unsynchronized beyond the
// store lock.
func (s *Store) RecordView(slug, visitorID string) (views, uniqueVisitors int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.bySlug[slug]
	if !exists {
		return 0, 0, false
	}

	post.Views++
	if visitorID != "" {
		visitors := s.viewedBy[slug]
		if visitors == nil {
			visitors = make(map[string]bool)
			s.viewedBy[slug] = visitors
		}
		visitors[visitorID] = true
	}
	return post.Views, len(s.viewedBy[slug]), true
}

// Like bumps the like counter once per visitor. Repeat likes are no-ops that
// return the current count.
func (s *Store) Like(slug, visitorID string) (likes int, changed, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.bySlug[slug]
	if !exists {
		return 0, false, false
	}

	visitors := s.likedBy[slug]
	if visitors == nil {
		visitors = make(map[string]bool)
		s.likedBy[slug] = visitors
	}
	if visitors[visitorID] {
		return post.Likes, false, true
	}

	visitors[visitorID] = true
	post.Likes++
	return post.Likes, true, true
}

// Unlike reverts a like previously recorded for the visitor.
func (s *Store) Unlike(slug, visitorID string) (likes int, changed, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.bySlug[slug]
	if !exists {
		return 0, false, false
	}

	visitors := s.likedBy[slug]
	if visitors == nil || !visitors[visitorID] {
		return post.Likes, false, true
	}

	delete(visitors, visitorID)
	if post.Likes > 0 {
		post.Likes--
	}
	return post.Likes, true, true
}
