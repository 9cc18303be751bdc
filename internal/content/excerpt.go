package content

import (
	"regexp"
	"strings"
)

const excerptLimit = 150

var (
	imageRefPattern  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRefPattern   = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	quotePattern     = regexp.MustCompile(`(?m)^>\s*`)
	emphasisPattern  = regexp.MustCompile("[*_`~]")
	whitespaceSubber = regexp.MustCompile(`\s+`)
)

// Excerpt derives a short plain-text summary from a markdown body by
// stripping markdown syntax, collapsing whitespace and truncating to 150
// characters. Deterministic and non-empty whenever body is non-empty.
func Excerpt(body string) string {
	text := imageRefPattern.ReplaceAllString(body, " ")
	text = linkRefPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "")
	text = quotePattern.ReplaceAllString(text, "")
	text = emphasisPattern.ReplaceAllString(text, "")
	text = whitespaceSubber.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	// 正文只含图片等被剥离的语法时，退回原始文本保证摘要非空
	if text == "" {
		text = strings.TrimSpace(whitespaceSubber.ReplaceAllString(body, " "))
	}

	runes := []rune(text)
	if len(runes) > excerptLimit {
		return strings.TrimSpace(string(runes[:excerptLimit])) + "..."
	}
	return text
}
