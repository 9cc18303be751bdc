package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCategories 返回按文章数降序排列的分类统计。
// GET /api/categories
func (a *API) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": a.taxonomy.Categories()})
}

// GetSeries 返回全部系列及各自按阅读顺序排列的文章。
// GET /api/series
func (a *API) GetSeries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"series": a.taxonomy.Series()})
}

// GetTags 返回按文章数降序排列的标签统计。
// GET /api/tags
func (a *API) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": a.taxonomy.Tags()})
}
