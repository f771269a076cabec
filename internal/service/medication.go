package service

import (
	"context"
	"strings"
	"time"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// MedicationQuery filters, sorts and pages a medication listing.
type MedicationQuery struct {
	IsActive        *bool
	ReminderEnabled *bool
	// SortBy is name, start_date or created_at. Empty means name.
	SortBy string
	// SortOrder is asc or desc. Empty means asc.
	SortOrder string
	Page      Page
}

type MedicationPage struct {
	Medications []model.Medication `json:"medications"`
	Total       int                `json:"total"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
	TotalPages  int                `json:"total_pages"`
}

type MedicationReminders struct {
	Reminders []model.MedicationReminder `json:"reminders"`
	Total     int                        `json:"total"`
}

type MedicationInput struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Dosage          *string          `json:"dosage" validate:"omitempty,max=100"`
	Frequency       *string          `json:"frequency" validate:"omitempty,max=100"`
	Instructions    *string          `json:"instructions" validate:"omitempty,max=1000"`
	StartDate       *model.Date      `json:"start_date"`
	EndDate         *model.Date      `json:"end_date"`
	IsActive        *bool            `json:"is_active"`
	ReminderEnabled bool             `json:"reminder_enabled"`
	ReminderTime    *model.TimeOfDay `json:"reminder_time"`
	Notes           *string          `json:"notes" validate:"omitempty,max=1000"`
}

// MedicationPatch is a partial update; nil fields keep their current value.
type MedicationPatch struct {
	Name            *string          `json:"name"`
	Dosage          *string          `json:"dosage"`
	Frequency       *string          `json:"frequency"`
	Instructions    *string          `json:"instructions"`
	StartDate       *model.Date      `json:"start_date"`
	EndDate         *model.Date      `json:"end_date"`
	IsActive        *bool            `json:"is_active"`
	ReminderEnabled *bool            `json:"reminder_enabled"`
	ReminderTime    *model.TimeOfDay `json:"reminder_time"`
	Notes           *string          `json:"notes"`
}

// MedicationService manages the family's medications.
type MedicationService interface {
	List(ctx context.Context, caller *model.User, q MedicationQuery) (*MedicationPage, error)
	Get(ctx context.Context, caller *model.User, id int64) (*model.Medication, error)
	Create(ctx context.Context, caller *model.User, in MedicationInput) (*model.Medication, error)
	Update(ctx context.Context, caller *model.User, id int64, patch MedicationPatch) (*model.Medication, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
	// Reminders lists active medications with reminders and when each fires next.
	Reminders(ctx context.Context, caller *model.User) (*MedicationReminders, error)
}

type medicationService struct {
	repo repository.MedicationRepository
	now  Clock
}

func NewMedicationService(repo repository.MedicationRepository, now Clock) MedicationService {
	return &medicationService{repo: repo, now: now}
}

func (s *medicationService) List(ctx context.Context, caller *model.User, q MedicationQuery) (*MedicationPage, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	switch sortBy {
	case "name", "start_date", "created_at":
	default:
		return nil, invalid("sort_by", "sort_by must be one of: name, start_date, created_at")
	}
	var desc bool
	switch strings.ToLower(q.SortOrder) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, invalid("sort_order", "sort_order must be asc or desc")
	}

	page := q.Page.normalize()
	res, err := s.repo.List(ctx, familyID, repository.MedicationFilter{
		IsActive:        q.IsActive,
		ReminderEnabled: q.ReminderEnabled,
		SortBy:          sortBy,
		Desc:            desc,
		Page:            page.query(),
	})
	if err != nil {
		return nil, err
	}
	return &MedicationPage{
		Medications: res.Items,
		Total:       res.Total,
		Page:        page.Page,
		Limit:       page.Limit,
		TotalPages:  totalPages(res.Total, page.Limit),
	}, nil
}

func (s *medicationService) Get(ctx context.Context, caller *model.User, id int64) (*model.Medication, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "medication")
	}
	return m, nil
}

func (s *medicationService) Create(ctx context.Context, caller *model.User, in MedicationInput) (*model.Medication, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return nil, err
	}

	m := &model.Medication{
		FamilyID:        familyID,
		Name:            in.Name,
		Dosage:          in.Dosage,
		Frequency:       in.Frequency,
		Instructions:    in.Instructions,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		IsActive:        true,
		ReminderEnabled: in.ReminderEnabled,
		ReminderTime:    in.ReminderTime,
		Notes:           in.Notes,
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if err := checkMedication(m); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, m)
}

func (s *medicationService) Update(ctx context.Context, caller *model.User, id int64, patch MedicationPatch) (*model.Medication, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "medication")
	}

	if patch.Name != nil {
		m.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Dosage != nil {
		m.Dosage = patch.Dosage
	}
	if patch.Frequency != nil {
		m.Frequency = patch.Frequency
	}
	if patch.Instructions != nil {
		m.Instructions = patch.Instructions
	}
	if patch.StartDate != nil {
		m.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		m.EndDate = patch.EndDate
	}
	if patch.IsActive != nil {
		m.IsActive = *patch.IsActive
	}
	if patch.ReminderEnabled != nil {
		m.ReminderEnabled = *patch.ReminderEnabled
		if !m.ReminderEnabled {
			// Turning reminders off drops the stored time.
			m.ReminderTime = nil
		}
	}
	if patch.ReminderTime != nil {
		m.ReminderTime = patch.ReminderTime
	}
	if patch.Notes != nil {
		m.Notes = patch.Notes
	}

	if err := check(MedicationInput{
		Name:         m.Name,
		Dosage:       m.Dosage,
		Frequency:    m.Frequency,
		Instructions: m.Instructions,
		Notes:        m.Notes,
	}); err != nil {
		return nil, err
	}
	if err := checkMedication(m); err != nil {
		return nil, err
	}

	out, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, fromRepo(err, "medication")
	}
	return out, nil
}

// checkMedication holds the cross-field rules shared by create and update.
func checkMedication(m *model.Medication) error {
	if m.StartDate != nil && m.EndDate != nil && m.EndDate.Before(*m.StartDate) {
		return invalid("end_date", "end_date must not be before start_date")
	}
	if m.ReminderTime != nil && !m.ReminderEnabled {
		return invalid("reminder_time", "reminder_time requires reminder_enabled")
	}
	return nil
}

func (s *medicationService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, familyID, id), "medication")
}

func (s *medicationService) Reminders(ctx context.Context, caller *model.User) (*MedicationReminders, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	meds, err := s.repo.ListWithReminders(ctx, familyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]model.MedicationReminder, 0, len(meds))
	for _, m := range meds {
		next, ok := nextReminder(m, now)
		if !ok {
			continue
		}
		out = append(out, model.MedicationReminder{Medication: m, NextReminder: next})
	}
	return &MedicationReminders{Reminders: out, Total: len(out)}, nil
}

// nextReminder is the first reminder instant at or after now that falls within
// the medication's start and end dates.
func nextReminder(m model.Medication, now time.Time) (time.Time, bool) {
	if m.ReminderTime == nil {
		return time.Time{}, false
	}
	day := model.DateOf(now)
	if m.StartDate != nil && m.StartDate.After(day) {
		day = *m.StartDate
	}
	next := m.ReminderTime.On(day, now.Location())
	if next.Before(now) {
		day = day.AddDays(1)
		next = m.ReminderTime.On(day, now.Location())
	}
	if m.EndDate != nil && day.After(*m.EndDate) {
		return time.Time{}, false
	}
	return next, true
}
