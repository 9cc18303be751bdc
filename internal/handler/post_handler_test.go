package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/investlog/internal/config"
	"github.com/investlog/internal/content"
	"github.com/investlog/internal/handler"
	"github.com/investlog/internal/router"
	"github.com/investlog/internal/store"
)

var ginOnce sync.Once

func writeTestPost(t *testing.T, root string, category, slug, doc string) {
	t.Helper()
	dir := filepath.Join(root, category, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create post dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write index.md: %v", err)
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	root := t.TempDir()
	writeTestPost(t, root, "stock", "q1-review",
		"---\ntitle: 一季度复盘\ndate: 2024-04-01\ntags:\n- 复盘\nseries: 季度复盘\nseriesOrder: 1\n---\n# 复盘\n本季度 ![持仓](holdings.png) 持仓变化。")
	writeTestPost(t, root, "stock", "q2-review",
		"---\ntitle: 二季度复盘\ndate: 2024-07-01\ntags:\n- 复盘\nseries: 季度复盘\nseriesOrder: 2\n---\n继续复盘。")
	writeTestPost(t, root, "fund", "etf-guide",
		"---\ntitle: ETF 指南\ndate: 2024-01-15\ntags:\n- ETF\n---\n指数基金正文。")

	cfg := config.AppConfig{
		ListenAddr:      ":0",
		ContentDir:      root,
		SessionSecret:   "test-secret",
		SiteBaseURL:     "https://blog.test",
		SiteName:        "InvestLog",
		SiteDescription: "test blog",
	}

	st := store.New()
	walker := content.NewWalker(nil)
	result, err := walker.Walk(root)
	if err != nil {
		t.Fatalf("failed to walk content tree: %v", err)
	}
	st.ReplaceAll(result.Posts)

	api := handler.NewAPI(cfg, nil, st)
	return router.SetupRouter(api, cfg), root
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)

	var payload map[string]any
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
	}
	return w, payload
}

func TestListPostsReturnsAllSortedByDate(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, payload := doJSON(t, r, http.MethodGet, "/api/blog-posts", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	posts := payload["posts"].([]any)
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	first := posts[0].(map[string]any)
	if first["slug"] != "q2-review" {
		t.Fatalf("newest post should come first, got %v", first["slug"])
	}
}

func TestListPostsFilterAndSearch(t *testing.T) {
	r, _ := setupTestRouter(t)

	_, payload := doJSON(t, r, http.MethodGet, "/api/blog-posts?category=fund", nil)
	if total := payload["total"].(float64); total != 1 {
		t.Fatalf("expected 1 fund post, got %v", total)
	}

	_, payload = doJSON(t, r, http.MethodGet, "/api/blog-posts?series=%E5%AD%A3%E5%BA%A6%E5%A4%8D%E7%9B%98", nil)
	if total := payload["total"].(float64); total != 2 {
		t.Fatalf("expected 2 series posts, got %v", total)
	}

	_, payload = doJSON(t, r, http.MethodGet, "/api/blog-posts?search=%E6%8C%87%E6%95%B0%E5%9F%BA%E9%87%91", nil)
	if total := payload["total"].(float64); total != 1 {
		t.Fatalf("expected 1 search hit, got %v", total)
	}
}

func TestGetPostRendersAndCountsViews(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, payload := doJSON(t, r, http.MethodGet, "/api/blog-posts/q1-review", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if views := payload["views"].(float64); views != 1 {
		t.Fatalf("first view should count 1, got %v", views)
	}
	html := payload["html"].(string)
	if !strings.Contains(html, "<h1") {
		t.Fatalf("markdown heading should render to HTML, got %q", html)
	}

	post := payload["post"].(map[string]any)
	if post["featuredImage"] != "/contents/stock/q1-review/holdings.png" {
		t.Fatalf("unexpected cover: %v", post["featuredImage"])
	}
}

func TestGetPostNotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/blog-posts/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetRelatedRanksSeriesFirst(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, payload := doJSON(t, r, http.MethodGet, "/api/blog-posts/q1-review/related", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	posts := payload["posts"].([]any)
	if len(posts) < 1 {
		t.Fatalf("expected related posts, got none")
	}
	first := posts[0].(map[string]any)
	if first["slug"] != "q2-review" {
		t.Fatalf("series sibling should rank first, got %v", first["slug"])
	}
}

func TestLikeDedupesWithinSession(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, payload := doJSON(t, r, http.MethodPost, "/api/blog-posts/etf-guide/like", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if likes := payload["likes"].(float64); likes != 1 {
		t.Fatalf("expected 1 like, got %v", likes)
	}

	// 复用会话 Cookie，重复点赞应当不再累加
	cookies := w.Result().Cookies()
	_, payload = doJSON(t, r, http.MethodPost, "/api/blog-posts/etf-guide/like", cookies)
	if likes := payload["likes"].(float64); likes != 1 {
		t.Fatalf("repeat like in same session should not count, got %v", likes)
	}
	if changed := payload["changed"].(bool); changed {
		t.Fatalf("repeat like should report changed=false")
	}

	// 新会话（无 Cookie）算作另一位访客
	_, payload = doJSON(t, r, http.MethodPost, "/api/blog-posts/etf-guide/like", nil)
	if likes := payload["likes"].(float64); likes != 2 {
		t.Fatalf("new session should count as a new visitor, got %v", likes)
	}
}

func TestUnlikeRevertsSessionLike(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/blog-posts/etf-guide/like", nil)
	cookies := w.Result().Cookies()

	_, payload := doJSON(t, r, http.MethodPost, "/api/blog-posts/etf-guide/unlike", cookies)
	if likes := payload["likes"].(float64); likes != 0 {
		t.Fatalf("unlike should revert the like, got %v", likes)
	}
}

func TestReimportPicksUpNewPosts(t *testing.T) {
	r, root := setupTestRouter(t)

	writeTestPost(t, root, "bond", "new-post", "---\ntitle: 新文章\ndate: 2024-08-01\n---\n正文")

	w, payload := doJSON(t, r, http.MethodPost, "/api/admin/reimport", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if imported := payload["imported"].(float64); imported != 4 {
		t.Fatalf("expected 4 posts after reimport, got %v", imported)
	}

	_, payload = doJSON(t, r, http.MethodGet, "/api/blog-posts/new-post", nil)
	post := payload["post"].(map[string]any)
	if post["title"] != "新文章" {
		t.Fatalf("new post should be servable after reimport, got %v", post["title"])
	}
}

func TestGetCategoriesAndSeries(t *testing.T) {
	r, _ := setupTestRouter(t)

	_, payload := doJSON(t, r, http.MethodGet, "/api/categories", nil)
	categories := payload["categories"].([]any)
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	leader := categories[0].(map[string]any)
	if leader["category"] != "stock" || leader["count"].(float64) != 2 {
		t.Fatalf("unexpected category leader: %v", leader)
	}

	_, payload = doJSON(t, r, http.MethodGet, "/api/series", nil)
	series := payload["series"].([]any)
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	group := series[0].(map[string]any)
	posts := group["posts"].([]any)
	if posts[0].(map[string]any)["slug"] != "q1-review" {
		t.Fatalf("series should order by seriesOrder, got %v", posts)
	}
}
