package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/investlog/internal/service"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ListPosts 返回分页过滤后的文章列表。
// GET /api/blog-posts?category=&search=&series=&tag=&page=&perPage=
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Series:   strings.TrimSpace(c.Query("series")),
		Tag:      strings.TrimSpace(c.Query("tag")),
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  parsePositiveInt(c.DefaultQuery("perPage", "10"), 10),
	}

	result := a.posts.List(filter)

	c.JSON(http.StatusOK, gin.H{
		"posts":      result.Posts,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// GetPost 返回单篇文章及渲染后的正文，并累加浏览计数。
// GET /api/blog-posts/:slug
func (a *API) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := a.posts.Get(slug)
	if err != nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	visitorID := a.ensureVisitorID(c)
	views, uniqueVisitors, recordErr := a.posts.RecordView(slug, visitorID)
	if recordErr != nil {
		c.Error(recordErr) // 不中断渲染，但记录错误
	}

	htmlContent, err := renderMarkdown(post.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":           post,
		"html":           htmlContent,
		"views":          views,
		"uniqueVisitors": uniqueVisitors,
	})
}

// GetRelated 返回与指定文章最相关的若干篇文章。
// GET /api/blog-posts/:slug/related?limit=
func (a *API) GetRelated(c *gin.Context) {
	post, err := a.posts.Get(c.Param("slug"))
	if err != nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	limit := parsePositiveInt(c.DefaultQuery("limit", "4"), 4)
	c.JSON(http.StatusOK, gin.H{"posts": a.posts.Related(post, limit)})
}

// LikePost 为文章点赞，同一访客会话内只计一次。
// POST /api/blog-posts/:slug/like
func (a *API) LikePost(c *gin.Context) {
	visitorID := a.ensureVisitorID(c)

	likes, changed, err := a.posts.Like(c.Param("slug"), visitorID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to record like")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes, "liked": true, "changed": changed})
}

// UnlikePost 撤销当前访客会话内的点赞。
// POST /api/blog-posts/:slug/unlike
func (a *API) UnlikePost(c *gin.Context) {
	visitorID := a.ensureVisitorID(c)

	likes, changed, err := a.posts.Unlike(c.Param("slug"), visitorID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to revert like")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes, "liked": false, "changed": changed})
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}
