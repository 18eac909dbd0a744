package ingest

import (
	"context"
	"os"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FeedConfig configures the scheduled re-ingest of a feed file.
type FeedConfig struct {
	// Enabled determines if the feed should run on schedule
	Enabled bool
	// Schedule in cron format (e.g. "30 * * * *" for half past every hour)
	Schedule string
	// File is the path of the wide-table CSV to ingest
	File string
	// Replace truncates the stores before each run instead of skipping
	// duplicates
	Replace bool
}

// Scheduler runs the pipeline against a feed file on a cron schedule.
type Scheduler struct {
	pipeline *Pipeline
	cfg      FeedConfig
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewScheduler creates a scheduler for the given pipeline and feed.
func NewScheduler(pipeline *Pipeline, cfg FeedConfig, logger *zap.Logger) *Scheduler {
	// Cron scheduler with seconds disabled
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	return &Scheduler{
		pipeline: pipeline,
		cfg:      cfg,
		cron:     c,
		logger:   logger,
	}
}

// RunOnce ingests the configured feed file a single time.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	f, err := os.Open(s.cfg.File)
	if err != nil {
		return err
	}
	defer f.Close()

	if s.cfg.Replace {
		_, err = s.pipeline.Replace(ctx, f)
	} else {
		_, err = s.pipeline.Run(ctx, f)
	}
	return err
}

// Start schedules the feed and blocks until the context is cancelled. It
// returns immediately when the feed is disabled.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("ingest feed disabled, skipping scheduler")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.logger.Info("running scheduled ingest", zap.String("file", s.cfg.File))
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("scheduled ingest failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("ingest scheduler started", zap.String("schedule", s.cfg.Schedule))

	<-ctx.Done()
	s.logger.Info("stopping ingest scheduler")
	s.cron.Stop()
	return nil
}
