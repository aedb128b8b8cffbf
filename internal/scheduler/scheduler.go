// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic translation completeness monitor.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/tms-go/internal/translation"
)

// Scheduler runs the nightly completeness assessment over the translations
// table and reports gaps through the event log.
type Scheduler struct {
	repairer *translation.Repairer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// New creates a scheduler that assesses completeness on the given cron schedule.
func New(repairer *translation.Repairer, schedule string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		repairer: repairer,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the assessment job and begins the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.assessCompleteness(); err != nil {
			s.logger.Error("scheduled completeness assessment failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// assessCompleteness runs one assessment pass and warns per incomplete table.
// Warnings land in the event log through the slog handler.
func (s *Scheduler) assessCompleteness() error {
	ctx := context.Background()

	report, err := s.repairer.Assess(ctx)
	if err != nil {
		return err
	}

	incomplete := 0
	for _, table := range report.Tables {
		if table.CompletionRate >= 1 {
			continue
		}
		incomplete++
		s.logger.Warn("translation completeness below target",
			"entity_type", table.EntityType,
			"total_rows", table.TotalRows,
			"missing_original_lang", table.MissingOriginalLang,
			"missing_original_text", table.MissingOriginalText,
			"completion_rate", table.CompletionRate,
		)
	}

	if incomplete == 0 {
		s.logger.Info("translation completeness check passed", "tables", len(report.Tables))
	}
	return nil
}
