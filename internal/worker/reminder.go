// Package worker runs background jobs alongside the HTTP server.
package worker

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/notify"
	"coparent/internal/repository"
)

// maxDeliveryAttempts bounds how many ticks retry a reminder that no channel
// could deliver before it is given up on.
const maxDeliveryAttempts = 5

// ReminderDispatcher delivers reminder notifications once their date and
// time have come. A reminder is marked notified as soon as one channel
// delivers it. When every configured channel fails it is retried on later
// ticks, at most maxDeliveryAttempts times.
//
// Dispatch is not safe for concurrent use; Run calls it from one goroutine.
type ReminderDispatcher struct {
	reminders repository.ReminderRepository
	emails    repository.NotificationEmailRepository
	users     repository.UserRepository
	mailer    notify.Mailer
	messenger notify.Messenger
	interval  time.Duration
	now       func() time.Time

	// attempts counts failed deliveries per reminder ID.
	attempts map[int64]int

	sent *prometheus.CounterVec
}

// NewReminderDispatcher registers the dispatch counter on reg. now decides
// both "today" and the zone reminder times are read in.
func NewReminderDispatcher(
	reminders repository.ReminderRepository,
	emails repository.NotificationEmailRepository,
	users repository.UserRepository,
	mailer notify.Mailer,
	messenger notify.Messenger,
	interval time.Duration,
	now func() time.Time,
	reg prometheus.Registerer,
) (*ReminderDispatcher, error) {
	d := &ReminderDispatcher{
		reminders: reminders,
		emails:    emails,
		users:     users,
		mailer:    mailer,
		messenger: messenger,
		interval:  interval,
		now:       now,
		attempts:  map[int64]int{},
		sent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reminder_notifications_total",
				Help: "Reminder notifications processed by the dispatcher.",
			},
			[]string{"result"},
		),
	}
	if err := reg.Register(d.sent); err != nil {
		return nil, err
	}
	return d, nil
}

// Run dispatches immediately and then on every interval until ctx is done.
func (d *ReminderDispatcher) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info("reminder dispatcher started", slog.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if n, err := d.Dispatch(ctx); err != nil {
			log.Error("reminder dispatch failed", slog.Any("err", err))
		} else if n > 0 {
			log.Info("reminders dispatched", slog.Int("count", n))
		}

		select {
		case <-ctx.Done():
			log.Info("reminder dispatcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// Dispatch sends every due reminder and returns how many were marked notified.
func (d *ReminderDispatcher) Dispatch(ctx context.Context) (int, error) {
	now := d.now()
	pending, err := d.reminders.ListPending(ctx, model.DateOf(now))
	if err != nil {
		return 0, fmt.Errorf("list pending reminders: %w", err)
	}

	recipients := map[string]*familyRecipients{}
	notified := 0
	for _, r := range pending {
		if !due(r, now) {
			continue
		}

		to, ok := recipients[r.FamilyID]
		if !ok {
			to, err = d.recipientsOf(ctx, r.FamilyID)
			if err != nil {
				return notified, err
			}
			recipients[r.FamilyID] = to
		}

		result := "sent"
		delivered, err := d.deliver(ctx, r, to)
		switch {
		case err == nil:
		case delivered > 0:
			logger.FromContext(ctx).Warn("reminder partially delivered",
				slog.Int64("reminder_id", r.ID), slog.Int("delivered", delivered), slog.Any("err", err))
		default:
			d.attempts[r.ID]++
			if d.attempts[r.ID] < maxDeliveryAttempts {
				d.sent.WithLabelValues("failed").Inc()
				logger.FromContext(ctx).Warn("reminder delivery failed",
					slog.Int64("reminder_id", r.ID), slog.Int("attempt", d.attempts[r.ID]), slog.Any("err", err))
				continue
			}
			result = "abandoned"
			logger.FromContext(ctx).Error("reminder delivery abandoned",
				slog.Int64("reminder_id", r.ID), slog.Int("attempts", d.attempts[r.ID]), slog.Any("err", err))
		}

		if err := d.reminders.MarkNotified(ctx, r.ID, now); err != nil {
			return notified, fmt.Errorf("mark reminder %d notified: %w", r.ID, err)
		}
		delete(d.attempts, r.ID)
		d.sent.WithLabelValues(result).Inc()
		notified++
	}
	return notified, nil
}

// due reports whether r's moment has passed. Reminders without a time fire
// at the start of their day.
func due(r model.Reminder, now time.Time) bool {
	today := model.DateOf(now)
	if r.Date.Before(today) {
		return true
	}
	if r.Date.After(today) {
		return false
	}
	if r.NotificationTime == nil {
		return true
	}
	return !now.Before(r.NotificationTime.On(r.Date, now.Location()))
}

type familyRecipients struct {
	emails []string
	phones []string
}

func (d *ReminderDispatcher) recipientsOf(ctx context.Context, familyID string) (*familyRecipients, error) {
	emails, err := d.emails.List(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("list notification emails for family %s: %w", familyID, err)
	}
	members, err := d.users.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("list members of family %s: %w", familyID, err)
	}

	to := &familyRecipients{}
	for _, e := range emails {
		to.emails = append(to.emails, e.Email)
	}
	for _, m := range members {
		if m.PhoneNumber != nil && *m.PhoneNumber != "" {
			to.phones = append(to.phones, *m.PhoneNumber)
		}
	}
	return to, nil
}

// deliver returns how many messages went out and the errors of configured
// channels that failed. Disabled channels are skipped.
func (d *ReminderDispatcher) deliver(ctx context.Context, r model.Reminder, to *familyRecipients) (int, error) {
	subject := "Reminder for " + r.Date.Time().Format("Monday, January 2")
	var errs []error
	delivered := 0

	if len(to.emails) > 0 {
		err := d.mailer.Send(ctx, notify.Email{
			To:      to.emails,
			Subject: subject,
			HTML:    reminderHTML(r),
		})
		switch {
		case err == nil:
			delivered++
		case !errors.Is(err, notify.ErrDisabled):
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}

	for _, phone := range to.phones {
		err := d.messenger.SendSMS(ctx, phone, subject+": "+r.Text)
		if errors.Is(err, notify.ErrDisabled) {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
			continue
		}
		delivered++
	}

	return delivered, errors.Join(errs...)
}

func reminderHTML(r model.Reminder) string {
	return fmt.Sprintf(
		`<h2>Reminder for %s</h2><p>%s</p><p style="color:#888">Sent by Calndr</p>`,
		html.EscapeString(r.Date.Time().Format("Monday, January 2, 2006")),
		html.EscapeString(r.Text),
	)
}
