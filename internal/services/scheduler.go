package services

import (
	"context"
	"time"

	"clap-go/internal/config"
	"clap-go/internal/repository"

	"go.uber.org/zap"
)

// reminderInterval is the minimum gap between two reminders for one attempt.
const reminderInterval = 24 * time.Hour

// Scheduler periodically reminds participants about stale in-progress
// attempts.
type Scheduler struct {
	log          *zap.Logger
	emailService *EmailService
	attempts     *repository.Attempts
	lastReminded map[string]time.Time
}

func NewScheduler(log *zap.Logger, emailService *EmailService, attempts *repository.Attempts) *Scheduler {
	return &Scheduler{
		log:          log,
		emailService: emailService,
		attempts:     attempts,
		lastReminded: make(map[string]time.Time),
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting reminder scheduler...")
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runReminderCheck()
		}
	}()
}

func (s *Scheduler) runReminderCheck() {
	olderThan := time.Duration(config.Conf.Assessment.ReminderAfterHrs) * time.Hour
	s.log.Debug("Running reminder check", zap.Duration("older_than", olderThan))

	attempts, err := s.attempts.StaleInProgress(context.Background(), olderThan)
	if err != nil {
		s.log.Error("Failed to get stale attempts for reminders", zap.Error(err))
		return
	}

	now := time.Now()
	for _, attempt := range attempts {
		if last, ok := s.lastReminded[attempt.ID]; ok && now.Sub(last) < reminderInterval {
			continue
		}
		s.lastReminded[attempt.ID] = now
		go s.emailService.SendReminderEmail(attempt)
	}
}
