package content

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCoverURL is served when a post carries no image at all.
const DefaultCoverURL = "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?w=1200&q=80"

var (
	// 退化的嵌套图片语法 ![![alt](inner)](outer)，外层引用才是真实图片
	nestedImagePattern = regexp.MustCompile(`!\[!\[[^\]]*\]\([^)]*\)\]\(\s*([^)\s]+)[^)]*\)`)
	markdownImage      = regexp.MustCompile(`!\[[^\]]*\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)`)
	htmlImagePattern   = regexp.MustCompile(`<img[^>]*\ssrc\s*=\s*["']([^"']+)["']`)
)

// CoverImage resolves the cover image for a post: an explicit featuredImage
// wins, otherwise the first image reference embedded in the body, otherwise a
// stock placeholder. Relative sources resolve into the post's content folder.
func CoverImage(p *Post) string {
	if trimmed := strings.TrimSpace(p.FeaturedImage); trimmed != "" {
		return trimmed
	}

	if src, ok := firstImageSource(p.Content); ok {
		return ResolveImagePath(src, p.Category, p.Slug)
	}

	return DefaultCoverURL
}

// BodyImages returns every resolvable image reference in the post body, used
// for sitemap image entries. Order follows pattern priority, not byte offset.
func BodyImages(p *Post) []string {
	var images []string
	seen := map[string]bool{}

	add := func(src string) {
		if !realImageSource(src) {
			return
		}
		resolved := ResolveImagePath(src, p.Category, p.Slug)
		if !seen[resolved] {
			seen[resolved] = true
			images = append(images, resolved)
		}
	}

	remaining := p.Content
	for _, match := range nestedImagePattern.FindAllStringSubmatch(remaining, -1) {
		add(match[1])
	}
	// 去掉嵌套语法，避免标准模式再次命中内层引用
	remaining = nestedImagePattern.ReplaceAllString(remaining, " ")

	for _, match := range markdownImage.FindAllStringSubmatch(remaining, -1) {
		add(match[1])
	}
	for _, match := range htmlImagePattern.FindAllStringSubmatch(remaining, -1) {
		add(match[1])
	}

	return images
}

// firstImageSource scans body text for the first usable image reference in
// priority order: nested markdown (outer wins), standard markdown, HTML img.
func firstImageSource(body string) (string, bool) {
	for _, match := range nestedImagePattern.FindAllStringSubmatch(body, -1) {
		if realImageSource(match[1]) {
			return match[1], true
		}
	}

	stripped := nestedImagePattern.ReplaceAllString(body, " ")
	for _, match := range markdownImage.FindAllStringSubmatch(stripped, -1) {
		if realImageSource(match[1]) {
			return match[1], true
		}
	}

	for _, match := range htmlImagePattern.FindAllStringSubmatch(stripped, -1) {
		if realImageSource(match[1]) {
			return match[1], true
		}
	}

	return "", false
}

// realImageSource filters references that cannot point at an image file.
func realImageSource(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return false
	}
	return !strings.HasPrefix(trimmed, "data:") && !strings.HasPrefix(trimmed, "#")
}

// ResolveImagePath makes an image source absolute. External URLs and
// root-relative paths pass through; anything else lives next to the post's
// index.md and resolves under /contents.
func ResolveImagePath(src, category, slug string) string {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, "http") || strings.HasPrefix(trimmed, "/") {
		return trimmed
	}
	return fmt.Sprintf("/contents/%s/%s/%s", strings.ToLower(category), slug, trimmed)
}
