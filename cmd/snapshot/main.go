package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/investlog/internal/content"
	"github.com/investlog/internal/service"
	"github.com/investlog/internal/snapshot"
	"github.com/investlog/internal/store"
)

// 生成静态托管用的 JSON 快照：posts.json / categories.json / series.json
func main() {
	contentDir := flag.String("content", "contents", "Content tree root")
	distDir := flag.String("out", "dist", "Output directory for JSON artifacts")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	walker := content.NewWalker(logger)
	result, err := walker.Walk(*contentDir)
	if err != nil {
		logger.Fatal("failed to read content directory",
			zap.String("dir", *contentDir), zap.Error(err))
	}

	st := store.New()
	dropped := st.ReplaceAll(result.Posts)
	taxonomy := service.NewTaxonomyService(st)

	writer := &snapshot.Writer{ContentDir: *contentDir, DistDir: *distDir}
	if err := writer.Write(st.All(), taxonomy.Categories(), taxonomy.Series()); err != nil {
		logger.Fatal("failed to write snapshot", zap.Error(err))
	}

	logger.Info("snapshot written",
		zap.String("dir", *distDir),
		zap.Int("posts", st.Len()),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicates", dropped))
}
