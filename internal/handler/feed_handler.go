package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/investlog/internal/content"
)

const feedItemLimit = 20

// RSS 输出最近发布的文章订阅源。
// GET /rss.xml
func (a *API) RSS(c *gin.Context) {
	posts := a.store.All()
	if len(posts) > feedItemLimit {
		posts = posts[:feedItemLimit]
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, a.buildRSS(posts))
}

// Sitemap 输出站点地图，含每篇文章正文内的图片条目。
// GET /sitemap.xml
func (a *API) Sitemap(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, a.buildSitemap(a.store.All()))
}

// Robots 输出爬虫策略与站点地图指针。
// GET /robots.txt
func (a *API) Robots(c *gin.Context) {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.cfg.SiteBaseURL)
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, body)
}

func (a *API) buildRSS(posts []*content.Post) string {
	var sb strings.Builder
	now := time.Now().Format(time.RFC1123Z)

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>%s</title>
    <link>%s</link>
    <description>%s</description>
    <lastBuildDate>%s</lastBuildDate>
`, escapeXML(a.cfg.SiteName), escapeXML(a.cfg.SiteBaseURL), escapeXML(a.cfg.SiteDescription), now))

	for _, post := range posts {
		rendered, err := renderMarkdown(post.Content)
		if err != nil {
			rendered = ""
		}
		sb.WriteString(fmt.Sprintf(`    <item>
      <title>%s</title>
      <link>%s</link>
      <guid>%s</guid>
      <pubDate>%s</pubDate>
      <category>%s</category>
      <description><![CDATA[%s]]></description>
    </item>
`, escapeXML(post.Title),
			escapeXML(a.postURL(post)),
			escapeXML(a.postURL(post)),
			post.PublishedAt().Format(time.RFC1123Z),
			escapeXML(post.Category),
			escapeCDATA(string(rendered))))
	}

	sb.WriteString("  </channel>\n</rss>")
	return sb.String()
}

func (a *API) buildSitemap(posts []*content.Post) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:image="http://www.google.com/schemas/sitemap-image/1.1">
`)

	sb.WriteString(fmt.Sprintf(`  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, escapeXML(a.cfg.SiteBaseURL), time.Now().Format("2006-01-02")))

	for _, post := range posts {
		sb.WriteString(fmt.Sprintf(`  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.8</priority>
`, escapeXML(a.postURL(post)), post.UpdatedAt().Format("2006-01-02")))

		for _, image := range content.BodyImages(post) {
			sb.WriteString(fmt.Sprintf("    <image:image>\n      <image:loc>%s</image:loc>\n    </image:image>\n",
				escapeXML(a.absoluteURL(image))))
		}

		sb.WriteString("  </url>\n")
	}

	sb.WriteString("</urlset>")
	return sb.String()
}

func (a *API) postURL(post *content.Post) string {
	return fmt.Sprintf("%s/posts/%s", a.cfg.SiteBaseURL, post.Slug)
}

func (a *API) absoluteURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return a.cfg.SiteBaseURL + path
}

// escapeCDATA splits a literal "]]>" so it cannot terminate the enclosing
// CDATA section early.
func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

// escapeXML replaces XML special characters in element content.
func escapeXML(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
