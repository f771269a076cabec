package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/repository"
	"coparent/internal/schedule"
)

// defaultApplyDays is how far Apply reaches when no usable end date is given.
const defaultApplyDays = 90

// TemplateInput creates or replaces a schedule template.
type TemplateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	schedule.Pattern
	IsActive bool `json:"is_active"`
}

// ApplyInput selects a template and the window to write it into.
type ApplyInput struct {
	TemplateID        int64       `json:"template_id" validate:"required,gt=0"`
	StartDate         *model.Date `json:"start_date"`
	EndDate           *model.Date `json:"end_date"`
	OverwriteExisting bool        `json:"overwrite_existing"`
}

type ApplyResult struct {
	Success              bool       `json:"success"`
	Message              string     `json:"message"`
	StartDate            model.Date `json:"start_date"`
	EndDate              model.Date `json:"end_date"`
	DaysApplied          int        `json:"days_applied"`
	ConflictsOverwritten int        `json:"conflicts_overwritten"`
	DaysSkipped          int        `json:"days_skipped"`
}

// PreviewDay is one day Apply would write.
type PreviewDay struct {
	Date             model.Date `json:"date"`
	CustodianID      string     `json:"custodian_id"`
	CustodianName    string     `json:"custodian_name"`
	HandoffDay       bool       `json:"handoff_day"`
	HandoffTime      string     `json:"handoff_time,omitempty"`
	HandoffLocation  string     `json:"handoff_location,omitempty"`
	ReplacesExisting bool       `json:"replaces_existing"`
}

type PreviewResult struct {
	TemplateID           int64        `json:"template_id"`
	StartDate            model.Date   `json:"start_date"`
	EndDate              model.Date   `json:"end_date"`
	Days                 []PreviewDay `json:"days"`
	ConflictsOverwritten int          `json:"conflicts_overwritten"`
	DaysSkipped          int          `json:"days_skipped"`
}

// ScheduleService manages schedule templates and writes them into the calendar.
type ScheduleService interface {
	List(ctx context.Context, caller *model.User) ([]model.ScheduleTemplate, error)
	Get(ctx context.Context, caller *model.User, id int64) (*model.ScheduleTemplate, error)
	// Create and Update deactivate the family's other templates when the
	// template is active.
	Create(ctx context.Context, caller *model.User, in TemplateInput) (*model.ScheduleTemplate, error)
	Update(ctx context.Context, caller *model.User, id int64, in TemplateInput) (*model.ScheduleTemplate, error)
	Delete(ctx context.Context, caller *model.User, id int64) error

	// Apply activates the template and writes it into the calendar from
	// tomorrow at the earliest. Today and the past are never modified.
	Apply(ctx context.Context, caller *model.User, in ApplyInput) (*ApplyResult, error)
	// Preview computes what Apply would write without writing anything.
	Preview(ctx context.Context, caller *model.User, in ApplyInput) (*PreviewResult, error)
}

type scheduleService struct {
	templates repository.ScheduleTemplateRepository
	custody   repository.CustodyRepository
	users     repository.UserRepository
	cache     CustodyCache
	now       Clock
}

func NewScheduleService(
	templates repository.ScheduleTemplateRepository,
	custody repository.CustodyRepository,
	users repository.UserRepository,
	cache CustodyCache,
	now Clock,
) ScheduleService {
	return &scheduleService{templates: templates, custody: custody, users: users, cache: cache, now: now}
}

func (s *scheduleService) List(ctx context.Context, caller *model.User) ([]model.ScheduleTemplate, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	return s.templates.List(ctx, familyID)
}

func (s *scheduleService) Get(ctx context.Context, caller *model.User, id int64) (*model.ScheduleTemplate, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	t, err := s.templates.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "schedule template")
	}
	return t, nil
}

func (s *scheduleService) Create(ctx context.Context, caller *model.User, in TemplateInput) (*model.ScheduleTemplate, error) {
	t, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	out, err := s.templates.Create(ctx, t)
	if err != nil {
		return nil, fromRepo(err, "schedule template")
	}
	if out.IsActive {
		s.invalidateAhead(ctx, out.FamilyID)
	}
	return out, nil
}

func (s *scheduleService) Update(ctx context.Context, caller *model.User, id int64, in TemplateInput) (*model.ScheduleTemplate, error) {
	t, err := s.build(caller, in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	out, err := s.templates.Update(ctx, t)
	if err != nil {
		return nil, fromRepo(err, "schedule template")
	}
	if out.IsActive {
		s.invalidateAhead(ctx, out.FamilyID)
	}
	return out, nil
}

func (s *scheduleService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.templates.Delete(ctx, familyID, id), "schedule template")
}

func (s *scheduleService) build(caller *model.User, in TemplateInput) (*model.ScheduleTemplate, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return nil, err
	}
	if err := in.Pattern.Validate(); err != nil {
		return nil, invalid("pattern", "%s", err)
	}
	return &model.ScheduleTemplate{
		FamilyID:    familyID,
		Name:        in.Name,
		Description: in.Description,
		Pattern:     in.Pattern,
		IsActive:    in.IsActive,
		CreatedBy:   caller.ID,
	}, nil
}

// invalidateAhead drops cached months a newly active template may generate into.
func (s *scheduleService) invalidateAhead(ctx context.Context, familyID string) {
	start := s.now.today().MonthStart()
	months := make([]time.Time, 0, 13)
	for i := 0; i <= 12; i++ {
		months = append(months, start.AddMonths(i).Time())
	}
	if err := s.cache.Invalidate(ctx, familyID, months...); err != nil {
		logger.FromContext(ctx).Warn("custody cache invalidation failed",
			slog.String("family_id", familyID), slog.Any("err", err))
	}
}

// window clamps the requested range: start is never before tomorrow, and end
// falls back to start+90 days when missing or not after start.
func (s *scheduleService) window(in ApplyInput) (model.Date, model.Date) {
	start := s.now.today().AddDays(1)
	if in.StartDate != nil && in.StartDate.After(start) {
		start = *in.StartDate
	}
	end := start.AddDays(defaultApplyDays)
	if in.EndDate != nil && in.EndDate.After(start) {
		end = *in.EndDate
	}
	return start, end
}

type planned struct {
	template *model.ScheduleTemplate
	members  []model.User
	start    model.Date
	end      model.Date
	plan     schedule.Plan
}

func (s *scheduleService) plan(ctx context.Context, caller *model.User, in ApplyInput) (*planned, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	tmpl, err := s.templates.FindByID(ctx, familyID, in.TemplateID)
	if err != nil {
		return nil, fromRepo(err, "schedule template")
	}
	members, err := custodiansOf(ctx, s.users, familyID)
	if err != nil {
		return nil, err
	}

	start, end := s.window(in)
	req, err := expandRequest(ctx, s.custody, familyID, tmpl.Pattern, custodianPair(members), start, end)
	if err != nil {
		return nil, err
	}
	req.Overwrite = in.OverwriteExisting

	plan, err := schedule.Expand(req)
	switch {
	case errors.Is(err, schedule.ErrRangeTooLarge):
		return nil, invalid("end_date", "date range must not exceed %d days", schedule.MaxRangeDays)
	case errors.Is(err, schedule.ErrInvalidPattern):
		return nil, invalid("pattern", "%s", err)
	case err != nil:
		return nil, fmt.Errorf("expand template %d: %w", tmpl.ID, err)
	}
	return &planned{template: tmpl, members: members, start: start, end: end, plan: plan}, nil
}

func (s *scheduleService) Apply(ctx context.Context, caller *model.User, in ApplyInput) (*ApplyResult, error) {
	p, err := s.plan(ctx, caller, in)
	if err != nil {
		return nil, err
	}
	familyID := p.template.FamilyID

	if err := s.templates.Activate(ctx, familyID, p.template.ID); err != nil {
		return nil, fromRepo(err, "schedule template")
	}

	applied, err := s.custody.SaveBatch(ctx, planRecords(familyID, caller.ID, p.plan), in.OverwriteExisting)
	if err != nil {
		return nil, fmt.Errorf("apply template %d: %w", p.template.ID, err)
	}

	// The whole window, not just the written months, since activation changes
	// what later reads generate.
	months := make([]time.Time, 0)
	for m := p.start.MonthStart(); !m.After(p.end); m = m.AddMonths(1) {
		months = append(months, m.Time())
	}
	if err := s.cache.Invalidate(ctx, familyID, months...); err != nil {
		logger.FromContext(ctx).Warn("custody cache invalidation failed",
			slog.String("family_id", familyID), slog.Any("err", err))
	}

	logger.FromContext(ctx).Info("schedule template applied",
		slog.String("family_id", familyID),
		slog.Int64("template_id", p.template.ID),
		slog.String("start", p.start.String()),
		slog.String("end", p.end.String()),
		slog.Int("days_applied", applied),
		slog.Int("conflicts_overwritten", p.plan.Overwritten),
	)

	return &ApplyResult{
		Success:              true,
		Message:              fmt.Sprintf("Applied schedule template '%s' to %d days", p.template.Name, applied),
		StartDate:            p.start,
		EndDate:              p.end,
		DaysApplied:          applied,
		ConflictsOverwritten: p.plan.Overwritten,
		DaysSkipped:          p.plan.Skipped,
	}, nil
}

func (s *scheduleService) Preview(ctx context.Context, caller *model.User, in ApplyInput) (*PreviewResult, error) {
	p, err := s.plan(ctx, caller, in)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(p.members))
	for _, m := range p.members {
		names[m.ID] = m.FirstName
	}
	days := make([]PreviewDay, 0, len(p.plan.Assignments))
	for _, a := range p.plan.Assignments {
		days = append(days, PreviewDay{
			Date:             model.DateOf(a.Date),
			CustodianID:      a.CustodianID,
			CustodianName:    names[a.CustodianID],
			HandoffDay:       a.HandoffDay,
			HandoffTime:      a.HandoffTime,
			HandoffLocation:  a.HandoffLocation,
			ReplacesExisting: a.Replaces,
		})
	}

	return &PreviewResult{
		TemplateID:           p.template.ID,
		StartDate:            p.start,
		EndDate:              p.end,
		Days:                 days,
		ConflictsOverwritten: p.plan.Overwritten,
		DaysSkipped:          p.plan.Skipped,
	}, nil
}
