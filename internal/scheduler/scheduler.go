package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockSentinel/internal/model"
	"StockSentinel/internal/notifier"
)

// DefaultConcurrency bounds parallel analyses during a watchlist run.
const DefaultConcurrency = 4

// Analyzer produces an analysis for one symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error)
}

// Report is the outcome for one watchlist symbol.
type Report struct {
	Symbol string
	Result *model.AnalysisResult
	Err    error
}

// Scheduler runs the daily watchlist job and answers bot commands.
type Scheduler struct {
	Cron        *cron.Cron
	Analyzer    Analyzer
	Notifier    notifier.Notifier
	Watchlist   []string
	Concurrency int
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, analyzer Analyzer, n notifier.Notifier, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Analyzer:    analyzer,
		Notifier:    n,
		Watchlist:   watchlist,
		Concurrency: DefaultConcurrency,
		Ctx:         ctx,
	}
}

// Register adds the daily watchlist job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the daily task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Info().Msg("running daily watchlist")
	s.trySend(notifier.FormatWatchlistHeader(s.Watchlist, time.Now()))
	for _, r := range s.RunWatchlist(s.Ctx) {
		s.trySend(formatReport(r))
	}
}

// RunWatchlist analyses every watchlist symbol with bounded concurrency.
// Reports come back in watchlist order; a failed symbol does not stop the others.
func (s *Scheduler) RunWatchlist(ctx context.Context) []Report {
	reports := make([]Report, len(s.Watchlist))
	g, ctx := errgroup.WithContext(ctx)
	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g.SetLimit(limit)

	for i, symbol := range s.Watchlist {
		g.Go(func() error {
			res, err := s.Analyzer.Analyze(ctx, symbol)
			if err != nil {
				log.Error().Err(err).Str("symbol", symbol).Msg("watchlist analysis failed")
			}
			reports[i] = Report{Symbol: symbol, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	// Telegram appends @botname in group chats.
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch cmd {
	case "/analyze", "/a":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		res, err := s.Analyzer.Analyze(ctx, fields[1])
		return formatReport(Report{Symbol: fields[1], Result: res, Err: err})
	case "/watchlist":
		if len(s.Watchlist) == 0 {
			return "Watchlist is empty"
		}
		go s.dailyTask()
		return fmt.Sprintf("Analysing %d symbols...", len(s.Watchlist))
	default:
		return notifier.HelpText
	}
}

func formatReport(r Report) string {
	if r.Err != nil {
		return notifier.FormatError(r.Symbol, r.Err)
	}
	return notifier.FormatAnalysis(r.Result)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		log.Error().Err(err).Msg("send notification failed")
	}
}
