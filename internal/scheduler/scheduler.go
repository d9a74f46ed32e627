// Package scheduler runs the periodic sweeps: overdue assessment statuses,
// goal re-evaluation and overdue goal notifications.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type assessmentSweeper interface {
	MarkOverdue(ctx context.Context, asOf util.Date) (int64, error)
}

type goalSweeper interface {
	EvaluateAll(ctx context.Context) (int, error)
	NotifyOverdue(ctx context.Context, asOf util.Date) (int, error)
	Today() util.Date
}

type Scheduler struct {
	cron        *cron.Cron
	assessments assessmentSweeper
	goals       goalSweeper
	timeout     time.Duration
}

// cronLogger routes cron's own messages, including skipped runs, through logrus.
func cronLogger() cron.Logger {
	return cron.VerbosePrintfLogger(config.Logger.WithField("component", "scheduler"))
}

func New(assessments assessmentSweeper, goals goalSweeper) *Scheduler {
	logger := cronLogger()
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(config.Location()),
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		assessments: assessments,
		goals:       goals,
		timeout:     4 * time.Minute,
	}
}

func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.RunOnce(ctx)
	}); err != nil {
		return err
	}

	config.Logger.WithField("spec", spec).Info("Scheduler started")
	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

type Result struct {
	AssessmentsOverdue int64
	GoalsAchieved      int
	OverdueNotified    int
}

// RunOnce performs one sweep. Each step runs even when an earlier one failed.
func (s *Scheduler) RunOnce(ctx context.Context) Result {
	log := config.WithContext(ctx)
	today := s.goals.Today()
	var res Result

	n, err := s.assessments.MarkOverdue(ctx, today)
	if err != nil {
		log.WithError(err).Error("Overdue assessment sweep failed")
	}
	res.AssessmentsOverdue = n

	flipped, err := s.goals.EvaluateAll(ctx)
	if err != nil {
		log.WithError(err).Error("Goal re-evaluation failed")
	}
	res.GoalsAchieved = flipped

	sent, err := s.goals.NotifyOverdue(ctx, today)
	if err != nil {
		log.WithError(err).Error("Overdue goal notification failed")
	}
	res.OverdueNotified = sent

	log.WithFields(logrus.Fields{
		"date":                today.String(),
		"assessments_overdue": res.AssessmentsOverdue,
		"goals_achieved":      res.GoalsAchieved,
		"overdue_notified":    res.OverdueNotified,
	}).Info("Scheduled sweep finished")
	return res
}
