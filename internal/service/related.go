package service

import (
	"sort"
	"strings"
	"time"

	"github.com/investlog/internal/content"
)

// 相关度评分权重：同系列 > 同分类 > 共享标签 > 发布时间接近
const (
	relatedSeriesScore   = 50
	relatedCategoryScore = 20
	relatedTagScore      = 10
	relatedMonthScore    = 5
	relatedWeekScore     = 3

	defaultRelatedLimit = 4
)

// Related ranks the rest of the collection against the given post and
// returns the top matches. Zero-score candidates are excluded; ties keep
// collection order. A limit <= 0 falls back to the default of four.
func (s *PostService) Related(current *content.Post, limit int) []*content.Post {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	type scored struct {
		post  *content.Post
		score int
	}

	var candidates []scored
	for _, candidate := range s.store.All() {
		if candidate.Slug == current.Slug {
			continue
		}
		if score := relatedScore(current, candidate); score > 0 {
			candidates = append(candidates, scored{post: candidate, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]*content.Post, 0, len(candidates))
	for _, candidate := range candidates {
		result = append(result, candidate.post)
	}
	return result
}

func relatedScore(current, candidate *content.Post) int {
	score := 0

	if current.Series != "" && strings.EqualFold(current.Series, candidate.Series) {
		score += relatedSeriesScore
	}
	if strings.EqualFold(current.Category, candidate.Category) {
		score += relatedCategoryScore
	}
	score += relatedTagScore * sharedTagCount(current.Tags, candidate.Tags)

	diff := current.PublishedAt().Sub(candidate.PublishedAt())
	if diff < 0 {
		diff = -diff
	}
	if diff < 30*24*time.Hour {
		score += relatedMonthScore
	}
	if diff < 7*24*time.Hour {
		score += relatedWeekScore
	}

	return score
}

func sharedTagCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, tag := range a {
		set[strings.ToLower(tag)] = true
	}
	count := 0
	for _, tag := range b {
		if set[strings.ToLower(tag)] {
			count++
		}
	}
	return count
}
