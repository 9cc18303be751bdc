// Package snapshot writes JSON exports of the post collection for
// static-hosting fallback: a frontend can serve posts.json, categories.json
// and series.json without the API process running.
package snapshot

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"strings"

	// 注册常见图片解码器，用于封面尺寸探测
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/investlog/internal/content"
	"github.com/investlog/internal/service"
)

type postSnapshot struct {
	*content.Post
	Cover       string `json:"cover"`
	CoverWidth  int    `json:"coverWidth,omitempty"`
	CoverHeight int    `json:"coverHeight,omitempty"`
}

// Writer 把内存中的文章集合导出为静态 JSON 工件。
type Writer struct {
	ContentDir string
	DistDir    string
}

// Write renders posts.json, categories.json and series.json under DistDir.
func (w *Writer) Write(posts []*content.Post, categories []service.CategoryStat, series []service.SeriesGroup) error {
	if err := os.MkdirAll(w.DistDir, 0o755); err != nil {
		return err
	}

	snapshots := make([]postSnapshot, 0, len(posts))
	for _, post := range posts {
		snap := postSnapshot{Post: post, Cover: content.CoverImage(post)}
		snap.CoverWidth, snap.CoverHeight = w.probeCover(snap.Cover)
		snapshots = append(snapshots, snap)
	}

	if err := w.writeJSON("posts.json", snapshots); err != nil {
		return err
	}
	if err := w.writeJSON("categories.json", categories); err != nil {
		return err
	}
	return w.writeJSON("series.json", series)
}

func (w *Writer) writeJSON(name string, payload any) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.DistDir, name), raw, 0o644)
}

// probeCover decodes the header of a locally stored cover image to report
// its dimensions. External URLs and unreadable files yield zero values.
func (w *Writer) probeCover(cover string) (width, height int) {
	rel, ok := strings.CutPrefix(cover, "/contents/")
	if !ok {
		return 0, 0
	}

	file, err := os.Open(filepath.Join(w.ContentDir, filepath.FromSlash(rel)))
	if err != nil {
		return 0, 0
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
