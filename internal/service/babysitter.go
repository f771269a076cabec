package service

import (
	"context"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

type BabysitterInput struct {
	FirstName   string   `json:"first_name" validate:"required,max=100"`
	LastName    string   `json:"last_name" validate:"required,max=100"`
	PhoneNumber string   `json:"phone_number" validate:"required,max=20"`
	Rate        *float64 `json:"rate" validate:"omitempty,gte=0"`
	Notes       *string  `json:"notes" validate:"omitempty,max=1000"`
}

// BabysitterService manages the babysitters linked to the caller's family.
type BabysitterService interface {
	List(ctx context.Context, caller *model.User) ([]model.Babysitter, error)
	Create(ctx context.Context, caller *model.User, in BabysitterInput) (*model.Babysitter, error)
	Update(ctx context.Context, caller *model.User, id int64, in BabysitterInput) (*model.Babysitter, error)
	// Delete removes the babysitter from the caller's family only.
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type babysitterService struct {
	repo repository.BabysitterRepository
}

func NewBabysitterService(repo repository.BabysitterRepository) BabysitterService {
	return &babysitterService{repo: repo}
}

func (s *babysitterService) List(ctx context.Context, caller *model.User) ([]model.Babysitter, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, familyID)
}

func (s *babysitterService) Create(ctx context.Context, caller *model.User, in BabysitterInput) (*model.Babysitter, error) {
	b, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fromRepo(err, "babysitter")
	}
	return out, nil
}

func (s *babysitterService) Update(ctx context.Context, caller *model.User, id int64, in BabysitterInput) (*model.Babysitter, error) {
	b, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	b.ID = id
	out, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, fromRepo(err, "babysitter")
	}
	return out, nil
}

func (s *babysitterService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Unlink(ctx, familyID, id), "babysitter")
}

func (s *babysitterService) build(caller *model.User, in BabysitterInput) (*model.Babysitter, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := check(in); err != nil {
		return nil, err
	}
	return &model.Babysitter{
		FamilyID:    familyID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Rate:        in.Rate,
		Notes:       in.Notes,
		CreatedBy:   caller.ID,
	}, nil
}
