package content

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const indexFileName = "index.md"

// Walker 递归扫描内容目录树，把每个包含 index.md 的叶子目录解析成一篇文章。
type Walker struct {
	logger *zap.Logger
}

// WalkResult carries the assembled collection plus import bookkeeping.
type WalkResult struct {
	Posts   []*Post
	Skipped int
}

// NewWalker creates a Walker. A nil logger falls back to zap.NewNop.
func NewWalker(logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{logger: logger}
}

// Walk descends from rootDir and assembles the full post collection, sorted
// by date descending. A directory containing index.md is a post leaf; other
// directories are descended into. A single corrupt post never aborts the
// walk: it is logged and counted as skipped.
func (w *Walker) Walk(rootDir string) (*WalkResult, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, err
	}

	result := &WalkResult{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		w.walkDir(filepath.Join(rootDir, entry.Name()), entry.Name(), result)
	}

	sort.SliceStable(result.Posts, func(i, j int) bool {
		return result.Posts[i].PublishedAt().After(result.Posts[j].PublishedAt())
	})

	return result, nil
}

func (w *Walker) walkDir(dir, parentName string, result *WalkResult) {
	indexPath := filepath.Join(dir, indexFileName)
	if _, err := os.Stat(indexPath); err == nil {
		post, parseErr := w.loadPost(indexPath, parentName, filepath.Base(dir))
		if parseErr != nil {
			result.Skipped++
			w.logger.Warn("跳过无法解析的文章",
				zap.String("path", indexPath),
				zap.Error(parseErr))
			return
		}
		result.Posts = append(result.Posts, post)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Skipped++
		w.logger.Warn("跳过无法读取的目录", zap.String("path", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			w.walkDir(filepath.Join(dir, entry.Name()), filepath.Base(dir), result)
		}
	}
}

// loadPost reads and parses one index.md into a Post, deriving every field
// the front matter omits.
func (w *Walker) loadPost(path, category, slug string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := ParseFrontMatter(string(raw))
	if err != nil {
		return nil, err
	}

	return BuildPost(fm, body, category, slug), nil
}

// BuildPost assembles a Post from parsed front matter, applying the default
// rules: slug from the folder name, category from the enclosing directory,
// derived excerpt, derived cover image, empty tag list instead of nil.
func BuildPost(fm FrontMatter, body, defaultCategory, slug string) *Post {
	post := &Post{
		Slug:          slug,
		Title:         fm.Get("title"),
		Content:       body,
		Date:          fm.Get("date"),
		UpdateDate:    fm.Get("updateDate"),
		Category:      fm.Get("category"),
		Series:        fm.Get("series"),
		FeaturedImage: fm.Get("featuredImage"),
		Tags:          fm.GetList("tags"),
	}

	if post.Title == "" {
		post.Title = slug
	}
	if post.Category == "" {
		post.Category = defaultCategory
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if order, err := strconv.Atoi(strings.TrimSpace(fm.Get("seriesOrder"))); err == nil && order > 0 {
		post.SeriesOrder = order
	}

	post.Excerpt = fm.Get("excerpt")
	if post.Excerpt == "" {
		post.Excerpt = fm.Get("description")
	}
	if post.Excerpt == "" {
		post.Excerpt = Excerpt(body)
	}

	if post.FeaturedImage == "" {
		post.FeaturedImage = CoverImage(post)
	}

	return post
}
