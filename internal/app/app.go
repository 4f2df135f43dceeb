// Package app wires configuration into a runnable scrape service. Both
// commands build on it.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"jobscraper/internal/browser"
	"jobscraper/internal/config"
	"jobscraper/internal/database"
	"jobscraper/internal/logger"
	"jobscraper/internal/pipeline"
	"jobscraper/internal/publisher"
	"jobscraper/internal/scraper"
	"jobscraper/internal/store"
	"jobscraper/internal/telegram"
	"jobscraper/utils"
)

// App is a fully wired service plus everything that must be closed with it.
type App struct {
	Config  *config.Config
	Service *pipeline.Service
	Store   *store.Store

	closers []func()
	log     zerolog.Logger
}

// New builds the service from cfg. Optional sinks that fail to connect are
// logged and skipped so a broken side channel never blocks scraping.
func New(ctx context.Context, cfg *config.Config) *App {
	a := &App{Config: cfg, log: logger.For("app")}

	a.Store = store.New(cfg.StorePath)

	siteOpts := scraper.SiteOptions{
		Limiter:     browser.NewHostLimiter(cfg.RequestsPerSecond, 1),
		Screenshots: utils.NewScreenshotDebugger(cfg.ScreenshotDir, logger.For("screenshots")),
		Log:         logger.For("scraper"),
	}

	ingester := pipeline.NewIngester(a.Store,
		pipeline.WithWindow(cfg.RecencyWindow()),
		pipeline.WithRepostThreshold(cfg.RepostThreshold()),
		pipeline.WithSinks(a.sinks(ctx)...),
	)

	headless := cfg.Headless
	a.Service = pipeline.NewService(pipeline.ServiceConfig{
		Ingester: ingester,
		Browsers: func(context.Context) (pipeline.Browser, error) {
			return browser.NewSession(headless)
		},
		Scrapers: func(platform string) ([]scraper.Scraper, error) {
			return pipeline.ScrapersFor(platform, siteOpts)
		},
		Limits:      pipeline.Limits{MaxPages: cfg.MaxPages, MaxKeywords: cfg.MaxKeywords},
		Concurrency: cfg.Concurrency,
	})
	return a
}

func (a *App) sinks(ctx context.Context) []pipeline.Sink {
	var sinks []pipeline.Sink
	cfg := a.Config

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			a.log.Warn().Err(err).Msg("⚠️ Telegram sink disabled")
		} else {
			a.log.Info().Msg("🤖 Telegram sink enabled")
			sinks = append(sinks, bot)
		}
	}

	if cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err == nil {
			err = repo.Migrate(ctx)
			if err != nil {
				repo.Close()
			}
		}
		if err != nil {
			a.log.Warn().Err(err).Msg("⚠️ Postgres archive disabled")
		} else {
			a.log.Info().Msg("🗄️ Postgres archive enabled")
			sinks = append(sinks, repo)
			a.closers = append(a.closers, repo.Close)
		}
	}

	if cfg.RedisURL != "" {
		pub, err := publisher.NewRedisPublisher(ctx, cfg.RedisURL, cfg.RedisStream)
		if err != nil {
			a.log.Warn().Err(err).Msg("⚠️ Redis stream disabled")
		} else {
			a.log.Info().Msg("📡 Redis stream enabled")
			sinks = append(sinks, pub)
			a.closers = append(a.closers, func() { _ = pub.Close() })
		}
	}
	return sinks
}

// DefaultRequest is the request scheduled runs and a flagless CLI use.
func (a *App) DefaultRequest() pipeline.Request {
	return pipeline.Request{
		Platform: a.Config.Platforms,
		Keywords: a.Config.Keywords,
		Pages:    a.Config.Pages,
		Location: a.Config.Location,
	}
}

// Close releases sink connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
