package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/config"
)

const sweepTimeout = 30 * time.Second

// Sweeper drives SweepDue on the configured cron schedule.
type Sweeper struct {
	service Reminder
	cfg     *config.Config
	cron    *cron.Cron
}

func NewSweeper(service Reminder, cfg *config.Config) *Sweeper {
	sweeper := &Sweeper{
		service: service,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	if _, err := sweeper.cron.AddFunc(cfg.Reminder.SweepSchedule, sweeper.sweep); err != nil {
		log.Error().Err(err).Str("schedule", cfg.Reminder.SweepSchedule).Msg("invalid reminder sweep schedule")
	}

	return sweeper
}

func (s *Sweeper) Start() {
	s.cron.Start()
	log.Info().Str("schedule", s.cfg.Reminder.SweepSchedule).Msg("reminder sweeper started")
}

func (s *Sweeper) Stop(ctx context.Context) {
	stopCtx := s.cron.Stop()

	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}

	log.Info().Msg("reminder sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	sent, err := s.service.SweepDue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep failed")

		return
	}

	if sent > 0 {
		log.Info().Int("sent", sent).Msg("reminders published")
	}
}
