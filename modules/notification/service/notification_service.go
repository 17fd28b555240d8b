package service

import (
	"context"
	"errors"
	"fmt"

	"go-booking-api/core/constants"
	"go-booking-api/core/ics"
	"go-booking-api/core/logger"
	"go-booking-api/core/mailer"
	"go-booking-api/core/storage"
	"go-booking-api/modules/notification/dto"
)

// Sender delivers booking emails. Implementations return an error describing
// every failed delivery; callers only log it.
type Sender interface {
	SendConfirmation(ctx context.Context, n *dto.BookingNotification) error
	SendCancellation(ctx context.Context, n *dto.BookingNotification) error
}

type NotificationService struct {
	mailer  mailer.Sender
	invites *ics.Builder
	store   storage.ObjectStore
	appURL  string
}

// NewNotificationService builds the email sender. store may be nil.
func NewNotificationService(m mailer.Sender, store storage.ObjectStore, appURL string) *NotificationService {
	return &NotificationService{
		mailer:  m,
		invites: ics.NewBuilder(),
		store:   store,
		appURL:  appURL,
	}
}

func (s *NotificationService) WithInviteBuilder(b *ics.Builder) *NotificationService {
	s.invites = b
	return s
}

// SendConfirmation emails the guest and the host, each with the calendar
// invite attached. Nothing is sent when the mail provider is not configured.
// Failed deliveries are not retried.
func (s *NotificationService) SendConfirmation(ctx context.Context, n *dto.BookingNotification) error {
	if s.mailer == nil || !s.mailer.Enabled() {
		logger.Info("NotificationService:SendConfirmation:Skipped", "reason", "email provider not configured", "booking_id", n.BookingID)
		return nil
	}

	invite, err := s.invites.Build(ics.Invite{
		Title:          n.Title(),
		Description:    n.Notes,
		Start:          n.StartTime,
		End:            n.EndTime,
		OrganizerName:  n.HostName,
		OrganizerEmail: n.HostEmail,
		AttendeeEmail:  n.GuestEmail,
	})
	if err != nil {
		logger.Error("NotificationService:SendConfirmation:BuildInvite:Error", "error", err, "booking_id", n.BookingID)
		return fmt.Errorf("build invite: %w", err)
	}
	attachment := mailer.NewAttachment(constants.InviteFilename, invite)

	s.archive(ctx, n, invite)

	var errs []error

	guestHTML, err := render(guestConfirmationTmpl, n, s.appURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("render guest email: %w", err))
	} else if err := s.mailer.Send(ctx, mailer.Message{
		To:          []string{n.GuestEmail},
		Subject:     "Meeting Confirmed: " + n.Title(),
		HTML:        guestHTML,
		Attachments: []mailer.Attachment{attachment},
	}); err != nil {
		logger.Error("NotificationService:SendConfirmation:Guest:Error", "error", err, "booking_id", n.BookingID)
		errs = append(errs, fmt.Errorf("guest email: %w", err))
	}

	if n.HostEmail == "" {
		logger.Warn("NotificationService:SendConfirmation:Host:NoEmail", "booking_id", n.BookingID)
		return errors.Join(errs...)
	}

	hostHTML, err := render(hostConfirmationTmpl, n, s.appURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("render host email: %w", err))
	} else if err := s.mailer.Send(ctx, mailer.Message{
		To:          []string{n.HostEmail},
		Subject:     fmt.Sprintf("New Booking: %s - %s", n.GuestEmail, n.Title()),
		HTML:        hostHTML,
		Attachments: []mailer.Attachment{attachment},
	}); err != nil {
		logger.Error("NotificationService:SendConfirmation:Host:Error", "error", err, "booking_id", n.BookingID)
		errs = append(errs, fmt.Errorf("host email: %w", err))
	}

	if len(errs) == 0 {
		logger.Info("NotificationService:SendConfirmation:Sent", "booking_id", n.BookingID)
	}
	return errors.Join(errs...)
}

// SendCancellation tells the guest their booking was cancelled.
func (s *NotificationService) SendCancellation(ctx context.Context, n *dto.BookingNotification) error {
	if s.mailer == nil || !s.mailer.Enabled() {
		logger.Info("NotificationService:SendCancellation:Skipped", "reason", "email provider not configured", "booking_id", n.BookingID)
		return nil
	}

	html, err := render(guestCancellationTmpl, n, s.appURL)
	if err != nil {
		return fmt.Errorf("render cancellation email: %w", err)
	}
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{n.GuestEmail},
		Subject: "Meeting Cancelled: " + n.Title(),
		HTML:    html,
	}); err != nil {
		logger.Error("NotificationService:SendCancellation:Error", "error", err, "booking_id", n.BookingID)
		return fmt.Errorf("cancellation email: %w", err)
	}
	return nil
}

func (s *NotificationService) archive(ctx context.Context, n *dto.BookingNotification, invite []byte) {
	if s.store == nil {
		return
	}
	key := constants.InviteArchivePrefix + n.BookingID.String() + ".ics"
	if err := s.store.Put(ctx, key, invite, "text/calendar; charset=utf-8"); err != nil {
		logger.Error("NotificationService:ArchiveInvite:Error", "error", err, "key", key)
	}
}
