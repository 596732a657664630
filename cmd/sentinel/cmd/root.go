package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/pkg/logger"
	"StockSentinel/internal/service"
)

// Version is set at build time with -ldflags "-X StockSentinel/cmd/sentinel/cmd.Version=...".
var Version = "dev"

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "StockSentinel - daily equity signal scoring",
	Long: `StockSentinel analyses daily OHLCV history and emits a BUY/WAIT/SELL/WATCH
call with confidence, evidence and risk levels.

Commands:
    analyze SYMBOL   - analyse one ticker and print the result
    serve            - run the HTTP JSON API
    bot              - run the Telegram bot and the daily watchlist job
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_PATH or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
}

func initConfig() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:         c.Logging.Level,
		Format:        c.Logging.Format,
		FileEnabled:   c.Logging.FilePath != "",
		FilePath:      c.Logging.FilePath,
		RotationSize:  50,
		RetentionDays: 14,
		ServiceName:   "sentinel",
		Version:       Version,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	cfg = c
	return nil
}

// newFetcher picks the REST source when a base URL is configured, Yahoo otherwise.
func newFetcher(c *config.Config) collector.Fetcher {
	opts := collector.HTTPOptions{
		ProxyURL:          c.Proxy,
		Timeout:           c.DataSource.Timeout,
		RequestsPerSecond: c.DataSource.RequestsPerSecond,
		Burst:             c.DataSource.Burst,
	}
	if c.DataSource.BaseURL != "" {
		return collector.NewRestFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, opts)
	}
	return collector.NewYahooFetcher(opts)
}

// newCache connects to Redis when configured and falls back to memory.
func newCache(ctx context.Context, c *config.Config) cache.Cache {
	if c.Cache.RedisAddr == "" {
		return cache.NewMemoryCache(c.Cache.TTL)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     c.Cache.RedisAddr,
		Password: c.Cache.RedisPassword,
		DB:       c.Cache.RedisDB,
		TTL:      c.Cache.TTL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		return cache.NewMemoryCache(c.Cache.TTL)
	}
	return rc
}

// newService wires fetcher, collector and cache into the analysis service.
func newService(ctx context.Context, c *config.Config, withCache bool) (*service.AnalysisService, cache.Cache) {
	fetcher := newFetcher(c)
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	col := collector.NewCollector(fetcher, c.DataSource.HistoryDays)
	if !withCache {
		return service.NewAnalysisService(col, nil), nil
	}
	ch := newCache(ctx, c)
	return service.NewAnalysisService(col, ch), ch
}
