// Package model contains the domain rows shared by the repository, service
// and HTTP layers. Types carry JSON tags only; persistence mapping lives in
// the repository implementations.
package model

import (
	"time"

	"coparent/internal/schedule"
)

type Family struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a family member. FamilyID is empty for users not yet in a family.
type User struct {
	ID              string    `json:"id"`
	FamilyID        string    `json:"family_id,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	SNSEndpointARN  *string   `json:"-"`
	ProfilePhotoKey *string   `json:"-"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Child struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"family_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth Date      `json:"dob"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustodyRecord assigns one family day to a custodian.
type CustodyRecord struct {
	ID              int64      `json:"id"`
	FamilyID        string     `json:"family_id"`
	Date            Date       `json:"date"`
	CustodianID     string     `json:"custodian_id"`
	CustodianName   string     `json:"custodian_name,omitempty"`
	ActorID         string     `json:"actor_id"`
	HandoffDay      bool       `json:"handoff_day"`
	HandoffTime     *TimeOfDay `json:"handoff_time,omitempty"`
	HandoffLocation *string    `json:"handoff_location,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ScheduleTemplate struct {
	ID          int64   `json:"id"`
	FamilyID    string  `json:"family_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	schedule.Pattern
	IsActive  bool      `json:"is_active"`
	CreatedBy string    `json:"created_by_user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reminder struct {
	ID                  int64      `json:"id"`
	FamilyID            string     `json:"family_id"`
	Date                Date       `json:"date"`
	Text                string     `json:"text"`
	NotificationEnabled bool       `json:"notification_enabled"`
	NotificationTime    *TimeOfDay `json:"notification_time,omitempty"`
	NotifiedAt          *time.Time `json:"notified_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type Medication struct {
	ID              int64      `json:"id"`
	FamilyID        string     `json:"family_id"`
	Name            string     `json:"name"`
	Dosage          *string    `json:"dosage,omitempty"`
	Frequency       *string    `json:"frequency,omitempty"`
	Instructions    *string    `json:"instructions,omitempty"`
	StartDate       *Date      `json:"start_date,omitempty"`
	EndDate         *Date      `json:"end_date,omitempty"`
	IsActive        bool       `json:"is_active"`
	ReminderEnabled bool       `json:"reminder_enabled"`
	ReminderTime    *TimeOfDay `json:"reminder_time,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// MedicationReminder is an active medication with its next reminder instant.
type MedicationReminder struct {
	Medication
	NextReminder time.Time `json:"next_reminder"`
}

type JournalEntry struct {
	ID         int64     `json:"id"`
	FamilyID   string    `json:"family_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Title      *string   `json:"title,omitempty"`
	Content    string    `json:"content"`
	EntryDate  Date      `json:"entry_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NotificationEmail struct {
	ID        int64     `json:"id"`
	FamilyID  string    `json:"family_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Babysitter can be shared by several families; FamilyID is the family the
// row was read for.
type Babysitter struct {
	ID          int64     `json:"id"`
	FamilyID    string    `json:"family_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Rate        *float64  `json:"rate,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type EmergencyContact struct {
	ID           int64     `json:"id"`
	FamilyID     string    `json:"family_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Relationship *string   `json:"relationship,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedBy    string    `json:"created_by_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type MedicalProvider struct {
	ID        int64     `json:"id"`
	FamilyID  string    `json:"family_id"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Website   *string   `json:"website,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	ZipCode   *string   `json:"zip_code,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GroupChat struct {
	ID              int64     `json:"id"`
	FamilyID        string    `json:"family_id"`
	ContactType     string    `json:"contact_type"`
	ContactID       int64     `json:"contact_id"`
	GroupIdentifier string    `json:"group_identifier"`
	CreatedBy       string    `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}
