// Package config assembles the run configuration from defaults, an optional
// YAML settings file, and environment variables (in that order of
// precedence). Credentials come from the environment only and are validated
// up front so a missing key fails the run at startup, not mid-pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Credentials
	NewsAPIKey   string
	OpenAIAPIKey string
	GeminiAPIKey string // optional summarization fallback

	// Inputs
	KeywordsPath string
	SettingsPath string

	// Search window, YYYY-MM-DD
	DateStart string
	DateEnd   string

	// Pipeline knobs
	DataTypes        []string
	SummarySentences int
	FuzzyThreshold   int // 0-100

	// Quota budget
	MaxArticlesPerCall int
	MaxPagesPerItem    int
	MaxKeywordsPerRun  int
	RequestDelay       time.Duration

	// Supplemental sources
	Feeds []string

	// AI budget (0 = unlimited)
	MaxAIRequests int

	// Cross-run reported cache ("" disables)
	CacheFilePath string
	CacheTTL      time.Duration

	// Body enrichment
	ScrapeMinBody     int
	ScrapeMaxArticles int

	Debug bool
}

// settingsFile is the YAML shape of the optional settings file.
type settingsFile struct {
	DataTypes          []string `yaml:"data_types"`
	SummarySentences   int      `yaml:"summary_sentences"`
	FuzzyThreshold     int      `yaml:"fuzzy_threshold"`
	MaxArticlesPerCall int      `yaml:"max_articles_per_call"`
	MaxPagesPerItem    int      `yaml:"max_pages_per_item"`
	MaxKeywordsPerRun  int      `yaml:"max_keywords_per_run"`
	RequestDelayMS     int      `yaml:"request_delay_ms"`
	Feeds              []string `yaml:"feeds"`
	MaxAIRequests      int      `yaml:"max_ai_requests"`
	CacheFile          string   `yaml:"cache_file"`
	CacheTTLHours      int      `yaml:"cache_ttl_hours"`
	ScrapeMinBody      int      `yaml:"scrape_min_body"`
	ScrapeMaxArticles  int      `yaml:"scrape_max_articles"`
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	now := time.Now().UTC()
	cfg := &Config{
		KeywordsPath:       "keywords.csv",
		SettingsPath:       "configs/newsmon.yaml",
		DateStart:          now.AddDate(-1, 0, 0).Format("2006-01-02"),
		DateEnd:            now.Format("2006-01-02"),
		DataTypes:          []string{"news", "pr", "blog"},
		SummarySentences:   2,
		FuzzyThreshold:     60,
		MaxArticlesPerCall: 30,
		MaxPagesPerItem:    2,
		MaxKeywordsPerRun:  50,
		RequestDelay:       500 * time.Millisecond,
		CacheFilePath:      "reported_news.json",
		CacheTTL:           48 * time.Hour,
		ScrapeMinBody:      200,
		ScrapeMaxArticles:  5,
	}

	if path := os.Getenv("NEWSMON_SETTINGS"); path != "" {
		cfg.SettingsPath = path
	}
	if err := cfg.applySettingsFile(); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	return cfg, cfg.Validate()
}

func (c *Config) applySettingsFile() error {
	data, err := os.ReadFile(c.SettingsPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("settings file %s: %w", c.SettingsPath, err)
	}

	var s settingsFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("settings file %s: %w", c.SettingsPath, err)
	}

	if len(s.DataTypes) > 0 {
		c.DataTypes = s.DataTypes
	}
	if s.SummarySentences > 0 {
		c.SummarySentences = s.SummarySentences
	}
	if s.FuzzyThreshold > 0 {
		c.FuzzyThreshold = s.FuzzyThreshold
	}
	if s.MaxArticlesPerCall > 0 {
		c.MaxArticlesPerCall = s.MaxArticlesPerCall
	}
	if s.MaxPagesPerItem > 0 {
		c.MaxPagesPerItem = s.MaxPagesPerItem
	}
	if s.MaxKeywordsPerRun > 0 {
		c.MaxKeywordsPerRun = s.MaxKeywordsPerRun
	}
	if s.RequestDelayMS > 0 {
		c.RequestDelay = time.Duration(s.RequestDelayMS) * time.Millisecond
	}
	if len(s.Feeds) > 0 {
		c.Feeds = s.Feeds
	}
	if s.MaxAIRequests > 0 {
		c.MaxAIRequests = s.MaxAIRequests
	}
	if s.CacheFile != "" {
		c.CacheFilePath = s.CacheFile
	}
	if s.CacheTTLHours > 0 {
		c.CacheTTL = time.Duration(s.CacheTTLHours) * time.Hour
	}
	if s.ScrapeMinBody > 0 {
		c.ScrapeMinBody = s.ScrapeMinBody
	}
	if s.ScrapeMaxArticles > 0 {
		c.ScrapeMaxArticles = s.ScrapeMaxArticles
	}
	return nil
}

func (c *Config) applyEnv() {
	c.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	c.KeywordsPath = envOrDefault("KEYWORDS_PATH", c.KeywordsPath)
	c.DateStart = envOrDefault("NEWS_DATE_START", c.DateStart)
	c.DateEnd = envOrDefault("NEWS_DATE_END", c.DateEnd)
	c.CacheFilePath = envOrDefault("CACHE_FILE_PATH", c.CacheFilePath)

	if types := os.Getenv("NEWS_DATA_TYPES"); types != "" {
		var parsed []string
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				parsed = append(parsed, t)
			}
		}
		if len(parsed) > 0 {
			c.DataTypes = parsed
		}
	}

	c.SummarySentences = envIntOrDefault("SUMMARY_SENTENCES", c.SummarySentences)
	c.FuzzyThreshold = envIntOrDefault("FUZZY_THRESHOLD", c.FuzzyThreshold)
	c.MaxArticlesPerCall = envIntOrDefault("MAX_ARTICLES_PER_CALL", c.MaxArticlesPerCall)
	c.MaxPagesPerItem = envIntOrDefault("MAX_PAGES_PER_ITEM", c.MaxPagesPerItem)
	c.MaxKeywordsPerRun = envIntOrDefault("MAX_KEYWORDS_PER_RUN", c.MaxKeywordsPerRun)
	c.MaxAIRequests = envIntOrDefault("MAX_AI_REQUESTS", c.MaxAIRequests)

	if ms := envIntOrDefault("REQUEST_DELAY_MS", -1); ms >= 0 {
		c.RequestDelay = time.Duration(ms) * time.Millisecond
	}

	if os.Getenv("DEBUG") == "true" {
		c.Debug = true
	}
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NewsAPIKey == "" {
		return fmt.Errorf("NEWS_API_KEY is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.KeywordsPath == "" {
		return fmt.Errorf("keywords path must not be empty")
	}
	if len(c.DataTypes) == 0 {
		return fmt.Errorf("at least one content type is required")
	}
	if c.SummarySentences < 1 || c.SummarySentences > 5 {
		return fmt.Errorf("summary sentences must be between 1 and 5, got %d", c.SummarySentences)
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 100 {
		return fmt.Errorf("fuzzy threshold must be between 0 and 100, got %d", c.FuzzyThreshold)
	}
	if c.MaxArticlesPerCall <= 0 || c.MaxPagesPerItem <= 0 || c.MaxKeywordsPerRun <= 0 {
		return fmt.Errorf("quota budget values must be positive")
	}
	return nil
}
