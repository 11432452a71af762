package services

import (
	"fmt"

	"clap-go/internal/config"
	"clap-go/internal/models"

	"go.uber.org/zap"
)

// EmailService is a placeholder for a real email sending service. Delivery
// is simulated; a production deployment would plug an SMTP client in here.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendCompletionEmail notifies a participant that their assessment report is
// ready. The attempt must have its Participant preloaded.
func (s *EmailService) SendCompletionEmail(attempt models.Attempt) {
	if !config.Conf.Email.Enabled {
		s.log.Debug("Email disabled, skipping completion notification", zap.String("attemptID", attempt.ID))
		return
	}
	s.log.Info("Sending completion email",
		zap.String("to", attempt.Participant.Email),
		zap.String("attemptID", attempt.ID),
		zap.String("type", attempt.Type),
	)
	fmt.Printf("--- SIMULATING EMAIL ---\nFrom: %s\nTo: %s\nSubject: Your leadership assessment results are ready\nHi %s,\nYour %s is complete and your results report is now available.\n\n",
		config.Conf.Email.From, attempt.Participant.Email, attempt.Participant.FirstName, attempt.Type)
}

// SendReminderEmail nudges a participant whose attempt has been sitting
// in progress.
func (s *EmailService) SendReminderEmail(attempt models.Attempt) {
	if !config.Conf.Email.Enabled {
		s.log.Debug("Email disabled, skipping reminder", zap.String("attemptID", attempt.ID))
		return
	}
	s.log.Info("Sending reminder email",
		zap.String("to", attempt.Participant.Email),
		zap.String("attemptID", attempt.ID),
	)
	fmt.Printf("--- SIMULATING EMAIL ---\nFrom: %s\nTo: %s\nSubject: Reminder to finish your leadership assessment\nHi %s,\nYou have an assessment in progress. Pick up where you left off at question %d.\n\n",
		config.Conf.Email.From, attempt.Participant.Email, attempt.Participant.FirstName, attempt.LastQuestionSeen)
}
