package service

import (
	"context"
	"errors"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

type ReminderInput struct {
	Date                model.Date       `json:"date"`
	Text                string           `json:"text" validate:"required,max=1000"`
	NotificationEnabled bool             `json:"notification_enabled"`
	NotificationTime    *model.TimeOfDay `json:"notification_time"`
}

// ReminderService manages one-per-day family reminders.
type ReminderService interface {
	// List returns reminders dated in [from, to].
	List(ctx context.Context, caller *model.User, from, to model.Date) ([]model.Reminder, error)
	Get(ctx context.Context, caller *model.User, id int64) (*model.Reminder, error)
	Create(ctx context.Context, caller *model.User, in ReminderInput) (*model.Reminder, error)
	Update(ctx context.Context, caller *model.User, id int64, in ReminderInput) (*model.Reminder, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type reminderService struct {
	repo repository.ReminderRepository
	now  Clock
}

func NewReminderService(repo repository.ReminderRepository, now Clock) ReminderService {
	return &reminderService{repo: repo, now: now}
}

func (s *reminderService) List(ctx context.Context, caller *model.User, from, to model.Date) ([]model.Reminder, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if from.IsZero() || to.IsZero() {
		return nil, invalid("start_date", "start_date and end_date are required")
	}
	if to.Before(from) {
		return nil, invalid("end_date", "end_date must not be before start_date")
	}
	return s.repo.ListRange(ctx, familyID, from, to)
}

func (s *reminderService) Get(ctx context.Context, caller *model.User, id int64) (*model.Reminder, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "reminder")
	}
	return r, nil
}

func (s *reminderService) Create(ctx context.Context, caller *model.User, in ReminderInput) (*model.Reminder, error) {
	r, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, r)
	if errors.Is(err, repository.ErrConflict) {
		return nil, conflict("a reminder already exists for %s", in.Date)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *reminderService) Update(ctx context.Context, caller *model.User, id int64, in ReminderInput) (*model.Reminder, error) {
	r, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	r.ID = id
	out, err := s.repo.Update(ctx, r, s.now.today())
	if errors.Is(err, repository.ErrConflict) {
		return nil, conflict("a reminder already exists for %s", in.Date)
	}
	if err != nil {
		return nil, fromRepo(err, "reminder")
	}
	return out, nil
}

func (s *reminderService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, familyID, id), "reminder")
}

func (s *reminderService) build(caller *model.User, in ReminderInput) (*model.Reminder, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, invalid("date", "date is required")
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := check(in); err != nil {
		return nil, err
	}
	if in.NotificationTime != nil && !in.NotificationEnabled {
		return nil, invalid("notification_time", "notification_time requires notification_enabled")
	}
	return &model.Reminder{
		FamilyID:            familyID,
		Date:                in.Date,
		Text:                in.Text,
		NotificationEnabled: in.NotificationEnabled,
		NotificationTime:    in.NotificationTime,
	}, nil
}
