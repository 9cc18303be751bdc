package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when --config is not provided.
const DefaultConfigPath = "config.yml"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string   `yaml:"listen_addr"`
	Port            string   `yaml:"port"`
	GinMode         string   `yaml:"gin_mode"`
	ContentDir      string   `yaml:"content_dir"`
	DistDir         string   `yaml:"dist_dir"`
	SessionSecret   string   `yaml:"session_secret"`
	SiteBaseURL     string   `yaml:"site_base_url"`
	SiteName        string   `yaml:"site_name"`
	SiteDescription string   `yaml:"site_description"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	contentDir := strings.TrimSpace(os.Getenv("CONTENT_DIR"))
	if contentDir == "" {
		contentDir = "contents"
	}

	distDir := strings.TrimSpace(os.Getenv("DIST_DIR"))
	if distDir == "" {
		distDir = "dist"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "investlog-dev-secret"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "https://blog.example.com"
	}
	siteBaseURL = strings.TrimRight(siteBaseURL, "/")

	siteName := strings.TrimSpace(os.Getenv("SITE_NAME"))
	if siteName == "" {
		siteName = "InvestLog"
	}

	siteDescription := strings.TrimSpace(os.Getenv("SITE_DESCRIPTION"))
	if siteDescription == "" {
		siteDescription = "记录投资思考与复盘的个人博客"
	}

	var origins []string
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		GinMode:         ginMode,
		ContentDir:      contentDir,
		DistDir:         distDir,
		SessionSecret:   sessionSecret,
		SiteBaseURL:     siteBaseURL,
		SiteName:        siteName,
		SiteDescription: siteDescription,
		AllowedOrigins:  origins,
	}
}

// LoadFile 在环境变量配置之上叠加 YAML 配置文件（字段非空才覆盖）。
// 文件不存在时不算错误，直接返回环境变量配置。
func LoadFile(path string) (AppConfig, error) {
	cfg := Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var file AppConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	merge := func(dst *string, src string) {
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			*dst = trimmed
		}
	}

	merge(&cfg.ListenAddr, file.ListenAddr)
	merge(&cfg.Port, file.Port)
	merge(&cfg.GinMode, file.GinMode)
	merge(&cfg.ContentDir, file.ContentDir)
	merge(&cfg.DistDir, file.DistDir)
	merge(&cfg.SessionSecret, file.SessionSecret)
	merge(&cfg.SiteBaseURL, file.SiteBaseURL)
	merge(&cfg.SiteName, file.SiteName)
	merge(&cfg.SiteDescription, file.SiteDescription)
	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")

	if len(file.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	}

	return cfg, nil
}
