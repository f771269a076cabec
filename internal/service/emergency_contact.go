package service

import (
	"context"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

type EmergencyContactInput struct {
	FirstName    string  `json:"first_name" validate:"required,max=100"`
	LastName     string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber  string  `json:"phone_number" validate:"required,max=20"`
	Relationship *string `json:"relationship" validate:"omitempty,max=100"`
	Notes        *string `json:"notes" validate:"omitempty,max=1000"`
}

type EmergencyContactService interface {
	List(ctx context.Context, caller *model.User) ([]model.EmergencyContact, error)
	Create(ctx context.Context, caller *model.User, in EmergencyContactInput) (*model.EmergencyContact, error)
	Update(ctx context.Context, caller *model.User, id int64, in EmergencyContactInput) (*model.EmergencyContact, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type emergencyContactService struct {
	repo repository.EmergencyContactRepository
}

func NewEmergencyContactService(repo repository.EmergencyContactRepository) EmergencyContactService {
	return &emergencyContactService{repo: repo}
}

func (s *emergencyContactService) List(ctx context.Context, caller *model.User) ([]model.EmergencyContact, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, familyID)
}

func (s *emergencyContactService) Create(ctx context.Context, caller *model.User, in EmergencyContactInput) (*model.EmergencyContact, error) {
	c, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fromRepo(err, "emergency contact")
	}
	return out, nil
}

func (s *emergencyContactService) Update(ctx context.Context, caller *model.User, id int64, in EmergencyContactInput) (*model.EmergencyContact, error) {
	c, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, fromRepo(err, "emergency contact")
	}
	return out, nil
}

func (s *emergencyContactService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, familyID, id), "emergency contact")
}

func (s *emergencyContactService) build(caller *model.User, in EmergencyContactInput) (*model.EmergencyContact, error) {
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
	return &model.EmergencyContact{
		FamilyID:     familyID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Relationship: in.Relationship,
		Notes:        in.Notes,
		CreatedBy:    caller.ID,
	}, nil
}
