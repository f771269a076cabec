package service

import (
	"context"
	"errors"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

type NotificationEmailInput struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// NotificationService manages the extra addresses that receive family
// reminder emails.
type NotificationService interface {
	List(ctx context.Context, caller *model.User) ([]model.NotificationEmail, error)
	Add(ctx context.Context, caller *model.User, in NotificationEmailInput) (*model.NotificationEmail, error)
	Update(ctx context.Context, caller *model.User, id int64, in NotificationEmailInput) (*model.NotificationEmail, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type notificationService struct {
	repo repository.NotificationEmailRepository
}

func NewNotificationService(repo repository.NotificationEmailRepository) NotificationService {
	return &notificationService{repo: repo}
}

func normalizeEmail(in NotificationEmailInput) (string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := check(in); err != nil {
		return "", err
	}
	return in.Email, nil
}

func (s *notificationService) List(ctx context.Context, caller *model.User) ([]model.NotificationEmail, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, familyID)
}

func (s *notificationService) Add(ctx context.Context, caller *model.User, in NotificationEmailInput) (*model.NotificationEmail, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, familyID, email)
	if errors.Is(err, repository.ErrConflict) {
		return nil, conflict("%s is already a notification email", email)
	}
	return out, err
}

func (s *notificationService) Update(ctx context.Context, caller *model.User, id int64, in NotificationEmailInput) (*model.NotificationEmail, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, familyID, id, email)
	if errors.Is(err, repository.ErrConflict) {
		return nil, conflict("%s is already a notification email", email)
	}
	if err != nil {
		return nil, fromRepo(err, "notification email")
	}
	return out, nil
}

func (s *notificationService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, familyID, id), "notification email")
}
