package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"coparent/internal/model"
	"coparent/internal/repository"
)

type ChildInput struct {
	FirstName   string      `json:"first_name" validate:"required,max=100"`
	LastName    string      `json:"last_name" validate:"max=100"`
	DateOfBirth *model.Date `json:"dob" validate:"required"`
}

// ChildService manages the family's children.
type ChildService interface {
	List(ctx context.Context, caller *model.User) ([]model.Child, error)
	Create(ctx context.Context, caller *model.User, in ChildInput) (*model.Child, error)
	Update(ctx context.Context, caller *model.User, id string, in ChildInput) (*model.Child, error)
	Delete(ctx context.Context, caller *model.User, id string) error
}

type childService struct {
	repo repository.ChildRepository
}

func NewChildService(repo repository.ChildRepository) ChildService {
	return &childService{repo: repo}
}

func (s *childService) List(ctx context.Context, caller *model.User) ([]model.Child, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, familyID)
}

func (s *childService) Create(ctx context.Context, caller *model.User, in ChildInput) (*model.Child, error) {
	c, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fromRepo(err, "child")
	}
	return out, nil
}

func (s *childService) Update(ctx context.Context, caller *model.User, id string, in ChildInput) (*model.Child, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	c, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, fromRepo(err, "child")
	}
	return out, nil
}

func (s *childService) Delete(ctx context.Context, caller *model.User, id string) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	if err := checkUUID(id); err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, familyID, id), "child")
}

func (s *childService) build(caller *model.User, in ChildInput) (*model.Child, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := check(in); err != nil {
		return nil, err
	}
	return &model.Child{
		FamilyID:    familyID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: *in.DateOfBirth,
	}, nil
}

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid("id", "id must be a valid UUID")
	}
	return nil
}
