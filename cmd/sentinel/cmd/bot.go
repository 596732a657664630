package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockSentinel/internal/notifier"
	"StockSentinel/internal/scheduler"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot and the daily watchlist job",
	Long: `Answers /analyze, /watchlist and /help in the configured chat and pushes one
report per watchlist symbol on the daily cron. Ctrl+C stops the bot.`,
	RunE: runBot,
}

func runBot(cmd *cobra.Command, _ []string) error {
	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, ch := newService(ctx, cfg, true)
	defer ch.Close()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, svc, tn, cfg.Watchlist)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	if cfg.Schedule.RunOnStart {
		log.Info().Msg("run_on_start enabled, executing watchlist now")
		go sched.RunNow()
	}

	log.Info().Strs("watchlist", cfg.Watchlist).Str("cron", cfg.Schedule.DailyCron).
		Msg("StockSentinel bot is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
	return nil
}
