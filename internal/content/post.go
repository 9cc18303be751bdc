package content

import (
	"strings"
	"time"
)

// Post 定义了从 Markdown 内容树导入的文章模型。
type Post struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Date          string   `json:"date"`
	UpdateDate    string   `json:"updateDate,omitempty"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Series        string   `json:"series,omitempty"`
	SeriesOrder   int      `json:"seriesOrder,omitempty"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
	Views         int      `json:"views"`
	Likes         int      `json:"likes"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate interprets an ISO-ish date string. Invalid or empty input maps to
// the epoch so that callers sorting by date treat it as oldest instead of
// failing the import.
func ParseDate(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Unix(0, 0).UTC()
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts
		}
	}
	return time.Unix(0, 0).UTC()
}

// PublishedAt returns the parsed publication timestamp of the post.
func (p *Post) PublishedAt() time.Time {
	return ParseDate(p.Date)
}

// UpdatedAt returns the update timestamp, falling back to the publication
// date when the post was never updated.
func (p *Post) UpdatedAt() time.Time {
	if strings.TrimSpace(p.UpdateDate) == "" {
		return p.PublishedAt()
	}
	return ParseDate(p.UpdateDate)
}

// HasSeriesOrder reports whether an explicit series position was assigned.
func (p *Post) HasSeriesOrder() bool {
	return p.SeriesOrder > 0
}
