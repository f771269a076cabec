// Package repository defines persistence interfaces. Implementations live in
// subpackages (postgres) and contain no business logic.
package repository

import (
	"context"
	"errors"
	"time"

	"coparent/internal/model"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	// ListByFamily returns members ordered by created_at, oldest first.
	ListByFamily(ctx context.Context, familyID string) ([]model.User, error)
	UpdateProfile(ctx context.Context, u *model.User) (*model.User, error)
	SetSNSEndpoint(ctx context.Context, userID, arn string) error
	SetProfilePhoto(ctx context.Context, userID, key string) error
}

type ChildRepository interface {
	List(ctx context.Context, familyID string) ([]model.Child, error)
	Create(ctx context.Context, c *model.Child) (*model.Child, error)
	Update(ctx context.Context, c *model.Child) (*model.Child, error)
	Delete(ctx context.Context, familyID, id string) error
}

type CustodyRepository interface {
	// ListRange returns records in [from, to] ordered by date, with custodian names.
	ListRange(ctx context.Context, familyID string, from, to model.Date) ([]model.CustodyRecord, error)
	FindByDate(ctx context.Context, familyID string, d model.Date) (*model.CustodyRecord, error)
	// LastBefore returns the latest record strictly before d.
	LastBefore(ctx context.Context, familyID string, d model.Date) (*model.CustodyRecord, error)
	Create(ctx context.Context, r *model.CustodyRecord) (*model.CustodyRecord, error)
	// Upsert inserts or replaces the record for r.Date.
	Upsert(ctx context.Context, r *model.CustodyRecord) (*model.CustodyRecord, error)
	// SaveBatch writes records in one transaction. Existing days are replaced
	// when overwrite is set and left untouched otherwise. It returns the
	// number of rows written.
	SaveBatch(ctx context.Context, records []model.CustodyRecord, overwrite bool) (int, error)
}

type ScheduleTemplateRepository interface {
	List(ctx context.Context, familyID string) ([]model.ScheduleTemplate, error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.ScheduleTemplate, error)
	FindActive(ctx context.Context, familyID string) (*model.ScheduleTemplate, error)
	// Create and Update deactivate the family's other templates when t.IsActive is set.
	Create(ctx context.Context, t *model.ScheduleTemplate) (*model.ScheduleTemplate, error)
	Update(ctx context.Context, t *model.ScheduleTemplate) (*model.ScheduleTemplate, error)
	Activate(ctx context.Context, familyID string, id int64) error
	Delete(ctx context.Context, familyID string, id int64) error
}

type ReminderRepository interface {
	ListRange(ctx context.Context, familyID string, from, to model.Date) ([]model.Reminder, error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.Reminder, error)
	Create(ctx context.Context, r *model.Reminder) (*model.Reminder, error)
	// Update clears notified_at only when the date or time changes and the
	// new date is on or after rearmFrom.
	Update(ctx context.Context, r *model.Reminder, rearmFrom model.Date) (*model.Reminder, error)
	Delete(ctx context.Context, familyID string, id int64) error
	// ListPending returns enabled, not yet notified reminders dated on or before through.
	ListPending(ctx context.Context, through model.Date) ([]model.Reminder, error)
	MarkNotified(ctx context.Context, id int64, at time.Time) error
}

// MedicationFilter narrows and orders a medication listing.
type MedicationFilter struct {
	IsActive        *bool
	ReminderEnabled *bool
	// SortBy is one of name, start_date, created_at.
	SortBy string
	// Desc orders descending.
	Desc bool
	Page PageQuery
}

type MedicationRepository interface {
	List(ctx context.Context, familyID string, f MedicationFilter) (*PageResult[model.Medication], error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.Medication, error)
	Create(ctx context.Context, m *model.Medication) (*model.Medication, error)
	Update(ctx context.Context, m *model.Medication) (*model.Medication, error)
	Delete(ctx context.Context, familyID string, id int64) error
	// ListWithReminders returns active medications with reminders enabled.
	ListWithReminders(ctx context.Context, familyID string) ([]model.Medication, error)
}

type JournalRepository interface {
	// List returns entries newest first with author names.
	List(ctx context.Context, familyID string, pq PageQuery) (*PageResult[model.JournalEntry], error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.JournalEntry, error)
	Create(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error)
	Update(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error)
	Delete(ctx context.Context, familyID string, id int64) error
}

type NotificationEmailRepository interface {
	List(ctx context.Context, familyID string) ([]model.NotificationEmail, error)
	Create(ctx context.Context, familyID, email string) (*model.NotificationEmail, error)
	Update(ctx context.Context, familyID string, id int64, email string) (*model.NotificationEmail, error)
	Delete(ctx context.Context, familyID string, id int64) error
}

// BabysitterRepository reads babysitters through the family link table.
type BabysitterRepository interface {
	// List returns the family's babysitters ordered by name.
	List(ctx context.Context, familyID string) ([]model.Babysitter, error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.Babysitter, error)
	// Create inserts the babysitter and links it to b.FamilyID in one transaction.
	Create(ctx context.Context, b *model.Babysitter) (*model.Babysitter, error)
	Update(ctx context.Context, b *model.Babysitter) (*model.Babysitter, error)
	// Unlink removes the babysitter from the family; the babysitter row stays
	// for other families.
	Unlink(ctx context.Context, familyID string, id int64) error
}

type EmergencyContactRepository interface {
	// List returns the family's contacts ordered by name.
	List(ctx context.Context, familyID string) ([]model.EmergencyContact, error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.EmergencyContact, error)
	Create(ctx context.Context, c *model.EmergencyContact) (*model.EmergencyContact, error)
	Update(ctx context.Context, c *model.EmergencyContact) (*model.EmergencyContact, error)
	Delete(ctx context.Context, familyID string, id int64) error
}

// MedicalProviderFilter narrows and orders a provider listing.
type MedicalProviderFilter struct {
	// Search matches name, specialty or address, case-insensitively.
	Search string
	// Specialty matches a substring of specialty, case-insensitively.
	Specialty string
	// SortBy is one of name, specialty, created_at.
	SortBy string
	Desc   bool
	Page   PageQuery
}

type MedicalProviderRepository interface {
	List(ctx context.Context, familyID string, f MedicalProviderFilter) (*PageResult[model.MedicalProvider], error)
	FindByID(ctx context.Context, familyID string, id int64) (*model.MedicalProvider, error)
	Create(ctx context.Context, p *model.MedicalProvider) (*model.MedicalProvider, error)
	Update(ctx context.Context, p *model.MedicalProvider) (*model.MedicalProvider, error)
	Delete(ctx context.Context, familyID string, id int64) error
}

type GroupChatRepository interface {
	Find(ctx context.Context, familyID, contactType string, contactID int64) (*model.GroupChat, error)
	Create(ctx context.Context, g *model.GroupChat) (*model.GroupChat, error)
}
