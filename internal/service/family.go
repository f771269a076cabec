package service

import (
	"context"
	"log/slog"
	"time"

	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/repository"
	"coparent/internal/schedule"
	"coparent/internal/storage"
)

// FamilyService answers questions about the caller's family.
type FamilyService interface {
	// Members lists the family ordered by join time, with photo URLs presigned.
	Members(ctx context.Context, caller *model.User) ([]model.User, error)
	// Custodians returns the two members that schedule patterns call parent1 and parent2.
	Custodians(ctx context.Context, caller *model.User) ([]model.User, error)
}

type familyService struct {
	users       repository.UserRepository
	photos      storage.Storage
	photoExpiry time.Duration
}

func NewFamilyService(users repository.UserRepository, photos storage.Storage, photoExpiry time.Duration) FamilyService {
	return &familyService{users: users, photos: photos, photoExpiry: photoExpiry}
}

func (s *familyService) Members(ctx context.Context, caller *model.User) ([]model.User, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	members, err := s.users.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		presignPhoto(ctx, s.photos, s.photoExpiry, &members[i])
	}
	return members, nil
}

func (s *familyService) Custodians(ctx context.Context, caller *model.User) ([]model.User, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	return custodiansOf(ctx, s.users, familyID)
}

// custodiansOf returns the first two members by join time.
func custodiansOf(ctx context.Context, users repository.UserRepository, familyID string) ([]model.User, error) {
	members, err := users.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if len(members) < 2 {
		return nil, invalid("", "family needs two members to schedule custody")
	}
	return members[:2], nil
}

func custodianPair(members []model.User) schedule.Custodians {
	return schedule.Custodians{Parent1: members[0].ID, Parent2: members[1].ID}
}

// presignPhoto fills ProfilePhotoURL from the stored key. A signing failure
// leaves the URL empty rather than failing the request.
func presignPhoto(ctx context.Context, photos storage.Storage, expiry time.Duration, u *model.User) {
	if u.ProfilePhotoKey == nil || *u.ProfilePhotoKey == "" || photos == nil {
		return
	}
	url, err := photos.PresignGet(ctx, *u.ProfilePhotoKey, expiry)
	if err != nil {
		logger.FromContext(ctx).Warn("presign profile photo failed",
			slog.String("user_id", u.ID), slog.Any("err", err))
		return
	}
	u.ProfilePhotoURL = &url
}
