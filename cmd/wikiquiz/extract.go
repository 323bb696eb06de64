package main

import (
	"context"
	"os"
	"time"

	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/config"

	"go.uber.org/zap"
)

type ExtractCommand struct {
	URL       string        `arg:"" help:"The Wikipedia article URL."`
	Format    string        `help:"Output format." enum:"json,yaml" default:"json" short:"f"`
	Timeout   time.Duration `help:"Fetch timeout." env:"SCRAPER_TIMEOUT" default:"10s"`
	UserAgent string        `help:"User-Agent sent with the request." env:"SCRAPER_USER_AGENT" default:""`
	LogLevel  string        `help:"The log level to use." env:"LOG_LEVEL" default:"warn"`
}

func (c ExtractCommand) Run(ctx context.Context) error {
	log := initLogger(c.LogLevel)

	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	article, err := scraper.NewExtractor(userAgent, c.Timeout).Extract(ctx, c.URL)
	if err != nil {
		return err
	}
	log.Info("article extracted", zap.String("title", article.Title), zap.Int("body_len", len(article.Body)))

	return writeOutput(os.Stdout, article, c.Format)
}
