package service

import (
	"sort"
	"strings"

	"github.com/investlog/internal/content"
	"github.com/investlog/internal/store"
)

// TaxonomyService 基于内存中的文章集合派生分类、系列与标签聚合。
type TaxonomyService struct {
	store *store.Store
}

// CategoryStat counts published posts per category.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TagStat counts posts per tag.
type TagStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SeriesEntry is one post inside a series listing.
type SeriesEntry struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Date  string `json:"date"`
}

// SeriesGroup lists the posts of one series in reading order.
type SeriesGroup struct {
	Name  string        `json:"name"`
	Count int           `json:"count"`
	Posts []SeriesEntry `json:"posts"`
}

// NewTaxonomyService creates a TaxonomyService instance.
func NewTaxonomyService(st *store.Store) *TaxonomyService {
	return &TaxonomyService{store: st}
}

// Categories groups the collection by category, sorted by count descending.
// Ties keep encounter order (stable sort over the date-sorted collection).
func (s *TaxonomyService) Categories() []CategoryStat {
	counts := make(map[string]int)
	var order []string

	for _, post := range s.store.All() {
		if _, seen := counts[post.Category]; !seen {
			order = append(order, post.Category)
		}
		counts[post.Category]++
	}

	stats := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		stats = append(stats, CategoryStat{Category: category, Count: counts[category]})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Tags groups the collection by tag, sorted by count descending.
func (s *TaxonomyService) Tags() []TagStat {
	counts := make(map[string]int)
	var order []string

	for _, post := range s.store.All() {
		for _, tag := range post.Tags {
			trimmed := strings.TrimSpace(tag)
			if trimmed == "" {
				continue
			}
			if _, seen := counts[trimmed]; !seen {
				order = append(order, trimmed)
			}
			counts[trimmed]++
		}
	}

	stats := make([]TagStat, 0, len(order))
	for _, tag := range order {
		stats = append(stats, TagStat{Name: tag, Count: counts[tag]})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Series groups posts that declare a series. Within a group posts are
// ordered by seriesOrder ascending when every member has one, otherwise by
// date ascending so the oldest post reads as part one.
func (s *TaxonomyService) Series() []SeriesGroup {
	grouped := make(map[string][]*content.Post)
	var order []string

	for _, post := range s.store.All() {
		name := strings.TrimSpace(post.Series)
		if name == "" {
			continue
		}
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], post)
	}

	groups := make([]SeriesGroup, 0, len(order))
	for _, name := range order {
		members := grouped[name]

		allOrdered := true
		for _, post := range members {
			if !post.HasSeriesOrder() {
				allOrdered = false
				break
			}
		}

		sorted := append([]*content.Post(nil), members...)
		if allOrdered {
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].SeriesOrder < sorted[j].SeriesOrder
			})
		} else {
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].PublishedAt().Before(sorted[j].PublishedAt())
			})
		}

		entries := make([]SeriesEntry, 0, len(sorted))
		for _, post := range sorted {
			entries = append(entries, SeriesEntry{Title: post.Title, Slug: post.Slug, Date: post.Date})
		}

		groups = append(groups, SeriesGroup{Name: name, Count: len(entries), Posts: entries})
	}

	return groups
}
