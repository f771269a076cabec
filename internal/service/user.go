package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/notify"
	"coparent/internal/repository"
	"coparent/internal/storage"
)

// MaxPhotoSize caps profile photo uploads.
const MaxPhotoSize = 10 << 20

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// ProfileInput is the editable part of a user profile.
type ProfileInput struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164"`
}

// DeviceInput registers an APNS device token for push notifications.
type DeviceInput struct {
	Token string `json:"device_token" validate:"required,max=400"`
}

// PhotoUpload is a profile photo stream with its declared metadata.
type PhotoUpload struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UserService manages the caller's own account.
type UserService interface {
	Me(ctx context.Context, caller *model.User) (*model.User, error)
	UpdateProfile(ctx context.Context, caller *model.User, in ProfileInput) (*model.User, error)
	// RegisterDevice creates (or reuses) the SNS endpoint for a device token
	// and stores its ARN on the user.
	RegisterDevice(ctx context.Context, caller *model.User, in DeviceInput) error
	// UploadPhoto stores a new profile photo, replaces the previous one and
	// returns a presigned URL for it.
	UploadPhoto(ctx context.Context, caller *model.User, up PhotoUpload) (string, error)
}

type userService struct {
	users       repository.UserRepository
	photos      storage.Storage
	photoExpiry time.Duration
	messenger   notify.Messenger
}

func NewUserService(users repository.UserRepository, photos storage.Storage, photoExpiry time.Duration, messenger notify.Messenger) UserService {
	return &userService{users: users, photos: photos, photoExpiry: photoExpiry, messenger: messenger}
}

func (s *userService) Me(ctx context.Context, caller *model.User) (*model.User, error) {
	u, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fromRepo(err, "user")
	}
	presignPhoto(ctx, s.photos, s.photoExpiry, u)
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, caller *model.User, in ProfileInput) (*model.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := check(in); err != nil {
		return nil, err
	}

	u := *caller
	u.FirstName, u.LastName, u.PhoneNumber = in.FirstName, in.LastName, in.PhoneNumber
	updated, err := s.users.UpdateProfile(ctx, &u)
	if err != nil {
		return nil, fromRepo(err, "user")
	}
	presignPhoto(ctx, s.photos, s.photoExpiry, updated)
	return updated, nil
}

func (s *userService) RegisterDevice(ctx context.Context, caller *model.User, in DeviceInput) error {
	in.Token = strings.TrimSpace(in.Token)
	if err := check(in); err != nil {
		return err
	}

	arn, err := s.messenger.RegisterDevice(ctx, in.Token)
	if errors.Is(err, notify.ErrDisabled) {
		return unavailable("push notifications are not configured")
	}
	if err != nil {
		return fmt.Errorf("register device: %w", err)
	}
	if err := s.users.SetSNSEndpoint(ctx, caller.ID, arn); err != nil {
		return fromRepo(err, "user")
	}
	return nil
}

func (s *userService) UploadPhoto(ctx context.Context, caller *model.User, up PhotoUpload) (string, error) {
	if up.Body == nil {
		return "", invalid("file", "file is required")
	}
	ext, ok := photoExtensions[up.ContentType]
	if !ok {
		return "", invalid("file", "file must be a JPEG, PNG, WebP or HEIC image")
	}
	if up.Size > MaxPhotoSize {
		return "", invalid("file", "file must be at most %d MB", MaxPhotoSize>>20)
	}

	key := storage.ProfilePhotoKey(caller.ID, uuid.New().String(), ext)
	if _, err := s.photos.Put(ctx, key, up.Body, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
		Metadata:    map[string]string{"original-filename": up.Filename},
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.users.SetProfilePhoto(ctx, caller.ID, key); err != nil {
		if delErr := s.photos.Delete(ctx, key); delErr != nil {
			return "", fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", fmt.Errorf("db save failed: %w", err)
	}

	if old := caller.ProfilePhotoKey; old != nil && *old != "" && *old != key {
		if err := s.photos.Delete(ctx, *old); err != nil {
			logger.FromContext(ctx).Warn("delete previous profile photo failed",
				slog.String("key", *old), slog.Any("err", err))
		}
	}

	url, err := s.photos.PresignGet(ctx, key, s.photoExpiry)
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}
	return url, nil
}
