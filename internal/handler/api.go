package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investlog/internal/config"
	"github.com/investlog/internal/content"
	"github.com/investlog/internal/service"
	"github.com/investlog/internal/store"
)

const visitorSessionKey = "visitor_id"

// API bundles shared dependencies for HTTP handlers.
type API struct {
	cfg      config.AppConfig
	logger   *zap.Logger
	store    *store.Store
	walker   *content.Walker
	posts    *service.PostService
	taxonomy *service.TaxonomyService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(cfg config.AppConfig, logger *zap.Logger, st *store.Store) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		walker:   content.NewWalker(logger),
		posts:    service.NewPostService(st),
		taxonomy: service.NewTaxonomyService(st),
	}
}

// Reimport 清空并重建整个文章集合。
// POST /api/admin/reimport
func (a *API) Reimport(c *gin.Context) {
	result, err := a.walker.Walk(a.cfg.ContentDir)
	if err != nil {
		a.logger.Error("内容目录重建失败", zap.String("dir", a.cfg.ContentDir), zap.Error(err))
		respondError(c, 500, "failed to read content directory")
		return
	}

	dropped := a.store.ReplaceAll(result.Posts)
	a.logger.Info("内容重建完成",
		zap.Int("imported", a.store.Len()),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicates", dropped))

	c.JSON(200, gin.H{
		"imported":   a.store.Len(),
		"skipped":    result.Skipped,
		"duplicates": dropped,
	})
}

// ensureVisitorID returns the session-scoped visitor identity, minting a new
// one on first contact. Used to dedupe likes and unique view counts.
func (a *API) ensureVisitorID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(visitorSessionKey).(string); ok && id != "" {
		return id
	}

	visitorID := uuid.NewString()
	session.Set(visitorSessionKey, visitorID)
	if err := session.Save(); err != nil {
		c.Error(err) // 不中断请求，但记录错误
	}
	return visitorID
}
