package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/notify"
	"coparent/internal/repository"
)

type GroupChatInput struct {
	ContactType string `json:"contact_type" validate:"required,oneof=babysitter emergency"`
	ContactID   int64  `json:"contact_id" validate:"required,gt=0"`
}

type GroupChatResult struct {
	GroupIdentifier string    `json:"group_identifier"`
	Exists          bool      `json:"exists"`
	CreatedAt       time.Time `json:"created_at"`
}

// GroupChatService hands out stable group conversation identifiers per contact.
type GroupChatService interface {
	// CreateOrGet returns the family's identifier for the contact, creating
	// and registering one on first use.
	CreateOrGet(ctx context.Context, caller *model.User, in GroupChatInput) (*GroupChatResult, error)
}

type groupChatService struct {
	repo        repository.GroupChatRepository
	babysitters repository.BabysitterRepository
	contacts    repository.EmergencyContactRepository
	chat        notify.ChatRegistrar
	now         Clock
}

func NewGroupChatService(
	repo repository.GroupChatRepository,
	babysitters repository.BabysitterRepository,
	contacts repository.EmergencyContactRepository,
	chat notify.ChatRegistrar,
	now Clock,
) GroupChatService {
	return &groupChatService{repo: repo, babysitters: babysitters, contacts: contacts, chat: chat, now: now}
}

func groupIdentifier(familyID, contactType string, contactID int64, at time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%s-%d-%d", familyID, contactType, contactID, at.UnixNano())))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *groupChatService) CreateOrGet(ctx context.Context, caller *model.User, in GroupChatInput) (*GroupChatResult, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if err := s.contactExists(ctx, familyID, in); err != nil {
		return nil, err
	}

	existing, err := s.repo.Find(ctx, familyID, in.ContactType, in.ContactID)
	if err == nil {
		return &GroupChatResult{GroupIdentifier: existing.GroupIdentifier, Exists: true, CreatedAt: existing.CreatedAt}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.GroupChat{
		FamilyID:        familyID,
		ContactType:     in.ContactType,
		ContactID:       in.ContactID,
		GroupIdentifier: groupIdentifier(familyID, in.ContactType, in.ContactID, s.now()),
		CreatedBy:       caller.ID,
	})
	if errors.Is(err, repository.ErrConflict) {
		// Another member created it concurrently.
		existing, err := s.repo.Find(ctx, familyID, in.ContactType, in.ContactID)
		if err != nil {
			return nil, err
		}
		return &GroupChatResult{GroupIdentifier: existing.GroupIdentifier, Exists: true, CreatedAt: existing.CreatedAt}, nil
	}
	if err != nil {
		return nil, err
	}

	err = s.chat.RegisterGroup(ctx, notify.ChatGroup{
		Identifier:  created.GroupIdentifier,
		FamilyID:    familyID,
		ContactType: created.ContactType,
		ContactID:   created.ContactID,
	})
	if err != nil && !errors.Is(err, notify.ErrDisabled) {
		logger.FromContext(ctx).Warn("chat group registration failed",
			slog.String("group_identifier", created.GroupIdentifier), slog.Any("err", err))
	}

	return &GroupChatResult{GroupIdentifier: created.GroupIdentifier, Exists: false, CreatedAt: created.CreatedAt}, nil
}

// contactExists reports ErrNotFound unless the contact belongs to the family.
func (s *groupChatService) contactExists(ctx context.Context, familyID string, in GroupChatInput) error {
	if in.ContactType == "babysitter" {
		_, err := s.babysitters.FindByID(ctx, familyID, in.ContactID)
		return fromRepo(err, "babysitter")
	}
	_, err := s.contacts.FindByID(ctx, familyID, in.ContactID)
	return fromRepo(err, "emergency contact")
}
