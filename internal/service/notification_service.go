package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/pkg/config"
	"github.com/scholarseek/scholarseek-api/pkg/jobs"
	"github.com/scholarseek/scholarseek-api/pkg/mailer"
)

const (
	jobTypeApplicationDecision  = "application_decision"
	jobTypeOrganizationDecision = "organization_decision"
)

// MailSender delivers a single message.
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// NotificationService sends decision emails off the request path through
// an in-memory queue with bounded retries.
type NotificationService struct {
	queue  *jobs.Queue
	sender MailSender
	logger *zap.Logger
}

// NewNotificationService constructs the notification service.
func NewNotificationService(sender MailSender, cfg config.MailerConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{sender: sender, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue and stops the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// QueueApplicationDecision emails a student about an accept or reject
// decision on their application.
func (s *NotificationService) QueueApplicationDecision(detail models.ApplicationDetail, status models.ApplicationStatus) {
	var subject, body string
	switch status {
	case models.StatusAccepted:
		subject = fmt.Sprintf("Application accepted: %s", detail.ScholarshipName)
		body = fmt.Sprintf(
			"Hi %s,\n\nCongratulations! Your application for %s by %s has been accepted.\n\nThe ScholarSeek Team",
			detail.ApplicantName, detail.ScholarshipName, detail.ScholarshipProvider)
	case models.StatusRejected:
		subject = fmt.Sprintf("Application update: %s", detail.ScholarshipName)
		body = fmt.Sprintf(
			"Hi %s,\n\nThank you for applying to %s by %s. Unfortunately your application was not selected this time.\n\nThe ScholarSeek Team",
			detail.ApplicantName, detail.ScholarshipName, detail.ScholarshipProvider)
	default:
		return
	}
	s.enqueue(jobTypeApplicationDecision, mailer.Message{
		To:      detail.ApplicantEmail,
		Subject: subject,
		Text:    body,
	})
}

// QueueOrganizationDecision emails an organization about its account
// approval outcome.
func (s *NotificationService) QueueOrganizationDecision(profile models.Profile, approved bool) {
	var subject, body string
	if approved {
		subject = "Your organization account has been approved"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour organization account has been approved. You can now sign in and post scholarships.\n\nThe ScholarSeek Team",
			profile.FullName)
	} else {
		subject = "Update on your organization account request"
		body = fmt.Sprintf(
			"Hi %s,\n\nWe reviewed your organization account request and were unable to approve it at this time.\n\nThe ScholarSeek Team",
			profile.FullName)
	}
	s.enqueue(jobTypeOrganizationDecision, mailer.Message{
		To:      profile.Email,
		Subject: subject,
		Text:    body,
	})
}

func (s *NotificationService) enqueue(jobType string, msg mailer.Message) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobType,
		Payload: msg,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue notification",
			zap.String("type", jobType), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		s.logger.Error("notification job carries unexpected payload",
			zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	return s.sender.Send(ctx, msg)
}
