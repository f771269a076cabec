package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"coparent/internal/cache"
	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/notify"
	"coparent/internal/repository"
	"coparent/internal/schedule"
)

// MaxBulkRecords bounds one bulk custody request.
const MaxBulkRecords = schedule.MaxRangeDays

// CustodyCache is the month cache consulted by custody reads.
type CustodyCache interface {
	Get(ctx context.Context, view cache.View, familyID string, year int, month time.Month) ([]model.CustodyRecord, bool, error)
	Set(ctx context.Context, view cache.View, familyID string, year int, month time.Month, records []model.CustodyRecord) error
	Invalidate(ctx context.Context, familyID string, months ...time.Time) error
}

// CustodyInput assigns a day to a custodian. HandoffDay is derived when omitted.
type CustodyInput struct {
	Date            model.Date       `json:"date"`
	CustodianID     string           `json:"custodian_id" validate:"required,uuid"`
	HandoffDay      *bool            `json:"handoff_day"`
	HandoffTime     *model.TimeOfDay `json:"handoff_time"`
	HandoffLocation *string          `json:"handoff_location" validate:"omitempty,max=255"`
}

// CustodyService reads and edits the family custody calendar.
type CustodyService interface {
	// Month returns every record of the month, generating future days from the
	// active template first.
	Month(ctx context.Context, caller *model.User, year, month int) ([]model.CustodyRecord, error)
	// Handoffs returns the month's handoff days that carry a handoff time.
	Handoffs(ctx context.Context, caller *model.User, year, month int) ([]model.CustodyRecord, error)
	Create(ctx context.Context, caller *model.User, in CustodyInput) (*model.CustodyRecord, error)
	// Update replaces the record for date.
	Update(ctx context.Context, caller *model.User, date model.Date, in CustodyInput) (*model.CustodyRecord, error)
	// Bulk inserts records in one transaction, leaving existing days untouched.
	// It returns the number of records created.
	Bulk(ctx context.Context, caller *model.User, in []CustodyInput) (int, error)
}

type custodyService struct {
	custody   repository.CustodyRepository
	templates repository.ScheduleTemplateRepository
	users     repository.UserRepository
	cache     CustodyCache
	messenger notify.Messenger
	now       Clock
}

func NewCustodyService(
	custody repository.CustodyRepository,
	templates repository.ScheduleTemplateRepository,
	users repository.UserRepository,
	cache CustodyCache,
	messenger notify.Messenger,
	now Clock,
) CustodyService {
	return &custodyService{
		custody:   custody,
		templates: templates,
		users:     users,
		cache:     cache,
		messenger: messenger,
		now:       now,
	}
}

func checkMonth(year, month int) error {
	if year < 1900 || year > 2100 {
		return invalid("year", "year must be between 1900 and 2100")
	}
	if month < 1 || month > 12 {
		return invalid("month", "month must be between 1 and 12")
	}
	return nil
}

func (s *custodyService) Month(ctx context.Context, caller *model.User, year, month int) ([]model.CustodyRecord, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if err := checkMonth(year, month); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	if records, ok, err := s.cache.Get(ctx, cache.ViewMonth, familyID, year, time.Month(month)); err != nil {
		log.Warn("custody cache read failed", slog.Any("err", err))
	} else if ok {
		return records, nil
	}

	first := model.NewDate(year, time.Month(month), 1)
	last := first.MonthEnd()

	if err := s.generate(ctx, caller, familyID, first, last); err != nil {
		log.Error("custody auto-generation failed",
			slog.String("family_id", familyID), slog.String("month", first.String()), slog.Any("err", err))
	}

	records, err := s.custody.ListRange(ctx, familyID, first, last)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.ViewMonth, familyID, year, time.Month(month), records); err != nil {
		log.Warn("custody cache write failed", slog.Any("err", err))
	}
	return records, nil
}

// generate fills days from tomorrow onwards in [from, to] that have no record
// yet, using the family's active template.
func (s *custodyService) generate(ctx context.Context, caller *model.User, familyID string, from, to model.Date) error {
	if tomorrow := s.now.today().AddDays(1); from.Before(tomorrow) {
		from = tomorrow
	}
	if from.After(to) {
		return nil
	}

	tmpl, err := s.templates.FindActive(ctx, familyID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find active template: %w", err)
	}

	members, err := s.users.ListByFamily(ctx, familyID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	if len(members) < 2 {
		return nil
	}

	req, err := expandRequest(ctx, s.custody, familyID, tmpl.Pattern, custodianPair(members), from, to)
	if err != nil {
		return err
	}
	plan, err := schedule.Expand(req)
	if err != nil {
		return fmt.Errorf("expand template %d: %w", tmpl.ID, err)
	}
	if len(plan.Assignments) == 0 {
		return nil
	}

	n, err := s.custody.SaveBatch(ctx, planRecords(familyID, caller.ID, plan), false)
	if err != nil {
		return fmt.Errorf("save generated custody: %w", err)
	}
	logger.FromContext(ctx).Info("custody generated from template",
		slog.String("family_id", familyID), slog.Int64("template_id", tmpl.ID), slog.Int("days", n))
	return s.cache.Invalidate(ctx, familyID, plan.Months()...)
}

// expandRequest loads what the engine needs to know about [from, to]: the days
// already recorded and the custodian on the day before from.
func expandRequest(ctx context.Context, custody repository.CustodyRepository, familyID string, p schedule.Pattern, pair schedule.Custodians, from, to model.Date) (schedule.Request, error) {
	existing, err := custody.ListRange(ctx, familyID, from, to)
	if err != nil {
		return schedule.Request{}, fmt.Errorf("list existing custody: %w", err)
	}
	taken := make(map[string]string, len(existing))
	for _, r := range existing {
		taken[r.Date.String()] = r.CustodianID
	}

	var previous string
	prev, err := custody.LastBefore(ctx, familyID, from)
	switch {
	case err == nil:
		previous = prev.CustodianID
	case !errors.Is(err, repository.ErrNotFound):
		return schedule.Request{}, fmt.Errorf("find previous custody: %w", err)
	}

	return schedule.Request{
		Pattern:           p,
		Start:             from.Time(),
		End:               to.Time(),
		Custodians:        pair,
		Existing:          taken,
		PreviousCustodian: previous,
	}, nil
}

func planRecords(familyID, actorID string, plan schedule.Plan) []model.CustodyRecord {
	out := make([]model.CustodyRecord, 0, len(plan.Assignments))
	for _, a := range plan.Assignments {
		rec := model.CustodyRecord{
			FamilyID:    familyID,
			Date:        model.DateOf(a.Date),
			CustodianID: a.CustodianID,
			ActorID:     actorID,
			HandoffDay:  a.HandoffDay,
		}
		if a.HandoffTime != "" {
			if t, err := model.ParseTimeOfDay(a.HandoffTime); err == nil {
				rec.HandoffTime = &t
			}
		}
		if a.HandoffLocation != "" {
			loc := a.HandoffLocation
			rec.HandoffLocation = &loc
		}
		out = append(out, rec)
	}
	return out
}

func (s *custodyService) Handoffs(ctx context.Context, caller *model.User, year, month int) ([]model.CustodyRecord, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if err := checkMonth(year, month); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	if records, ok, err := s.cache.Get(ctx, cache.ViewHandoffs, familyID, year, time.Month(month)); err != nil {
		log.Warn("custody cache read failed", slog.Any("err", err))
	} else if ok {
		return records, nil
	}

	all, err := s.Month(ctx, caller, year, month)
	if err != nil {
		return nil, err
	}
	handoffs := make([]model.CustodyRecord, 0)
	for _, r := range all {
		if r.HandoffDay && r.HandoffTime != nil {
			handoffs = append(handoffs, r)
		}
	}
	if err := s.cache.Set(ctx, cache.ViewHandoffs, familyID, year, time.Month(month), handoffs); err != nil {
		log.Warn("custody cache write failed", slog.Any("err", err))
	}
	return handoffs, nil
}

func (s *custodyService) Create(ctx context.Context, caller *model.User, in CustodyInput) (*model.CustodyRecord, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, invalid("date", "date is required")
	}
	if err := check(in); err != nil {
		return nil, err
	}
	members, err := s.users.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	custodian, err := memberByID(members, in.CustodianID)
	if err != nil {
		return nil, err
	}

	if _, err := s.custody.FindByDate(ctx, familyID, in.Date); err == nil {
		return nil, conflict("custody record already exists for %s", in.Date)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	rec := custodyRecord(familyID, caller.ID, in)
	if in.HandoffDay == nil && in.HandoffTime == nil {
		prev, err := s.custody.FindByDate(ctx, familyID, in.Date.AddDays(-1))
		switch {
		case err == nil:
			rec.HandoffDay = prev.CustodianID != in.CustodianID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	out, err := s.custody.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflict("custody record already exists for %s", in.Date)
		}
		return nil, err
	}
	out.CustodianName = custodian.FirstName

	s.afterWrite(ctx, caller, familyID, members, out)
	return out, nil
}

func (s *custodyService) Update(ctx context.Context, caller *model.User, date model.Date, in CustodyInput) (*model.CustodyRecord, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	in.Date = date
	if err := check(in); err != nil {
		return nil, err
	}
	members, err := s.users.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	custodian, err := memberByID(members, in.CustodianID)
	if err != nil {
		return nil, err
	}

	current, err := s.custody.FindByDate(ctx, familyID, date)
	if err != nil {
		return nil, fromRepo(err, "custody record")
	}

	out, err := s.custody.Upsert(ctx, custodyRecord(familyID, caller.ID, in))
	if err != nil {
		return nil, err
	}
	out.CustodianName = custodian.FirstName

	if current.CustodianID != out.CustodianID {
		s.afterWrite(ctx, caller, familyID, members, out)
	} else {
		s.invalidate(ctx, familyID, date.MonthStart().Time())
	}
	return out, nil
}

func (s *custodyService) Bulk(ctx context.Context, caller *model.User, in []CustodyInput) (int, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return 0, err
	}
	if len(in) == 0 {
		return 0, invalid("records", "records must not be empty")
	}
	if len(in) > MaxBulkRecords {
		return 0, invalid("records", "at most %d records per request", MaxBulkRecords)
	}
	members, err := s.users.ListByFamily(ctx, familyID)
	if err != nil {
		return 0, err
	}
	for _, r := range in {
		if r.Date.IsZero() {
			return 0, invalid("date", "date is required")
		}
		if err := check(r); err != nil {
			return 0, err
		}
		if _, err := memberByID(members, r.CustodianID); err != nil {
			return 0, err
		}
	}

	sorted := append([]CustodyInput(nil), in...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	records := make([]model.CustodyRecord, 0, len(sorted))
	months := make([]time.Time, 0)
	var prev string
	for _, r := range sorted {
		rec := custodyRecord(familyID, caller.ID, r)
		if r.HandoffDay == nil && r.HandoffTime == nil {
			rec.HandoffDay = prev != "" && prev != r.CustodianID
		}
		prev = r.CustodianID
		records = append(records, *rec)

		m := r.Date.MonthStart().Time()
		if len(months) == 0 || !months[len(months)-1].Equal(m) {
			months = append(months, m)
		}
	}

	n, err := s.custody.SaveBatch(ctx, records, false)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, familyID, months...)
	return n, nil
}

// custodyRecord maps input onto a record. HandoffDay defaults to whether a
// handoff time was supplied.
func custodyRecord(familyID, actorID string, in CustodyInput) *model.CustodyRecord {
	rec := &model.CustodyRecord{
		FamilyID:        familyID,
		Date:            in.Date,
		CustodianID:     in.CustodianID,
		ActorID:         actorID,
		HandoffDay:      in.HandoffTime != nil,
		HandoffTime:     in.HandoffTime,
		HandoffLocation: in.HandoffLocation,
	}
	if in.HandoffDay != nil {
		rec.HandoffDay = *in.HandoffDay
	}
	return rec
}

func memberByID(members []model.User, id string) (*model.User, error) {
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, invalid("custodian_id", "custodian must be a member of the family")
}

func (s *custodyService) afterWrite(ctx context.Context, caller *model.User, familyID string, members []model.User, rec *model.CustodyRecord) {
	s.invalidate(ctx, familyID, rec.Date.MonthStart().Time())
	s.notifyCoParents(ctx, caller, members, rec)
}

func (s *custodyService) invalidate(ctx context.Context, familyID string, months ...time.Time) {
	if err := s.cache.Invalidate(ctx, familyID, months...); err != nil {
		logger.FromContext(ctx).Warn("custody cache invalidation failed",
			slog.String("family_id", familyID), slog.Any("err", err))
	}
}

// notifyCoParents pushes a custody change to every other member with a
// registered device. Failures are logged only.
func (s *custodyService) notifyCoParents(ctx context.Context, caller *model.User, members []model.User, rec *model.CustodyRecord) {
	log := logger.FromContext(ctx)
	day := rec.Date.Time().Format("Monday, January 2")

	p := notify.Push{
		Title:    "Schedule Updated",
		Subtitle: rec.CustodianName + " now has custody",
		Body:     fmt.Sprintf("%s changed the schedule for %s. Tap to manage your schedule.", caller.FirstName, day),
		Category: "CUSTODY_CHANGE",
		Data: map[string]string{
			"type":      "custody_change",
			"date":      rec.Date.String(),
			"custodian": rec.CustodianName,
			"sender":    caller.FirstName,
			"deep_link": "calndr://schedule",
		},
	}

	for _, m := range members {
		if m.ID == caller.ID || m.SNSEndpointARN == nil || *m.SNSEndpointARN == "" {
			continue
		}
		err := s.messenger.Push(ctx, *m.SNSEndpointARN, p)
		switch {
		case err == nil:
			log.Info("custody change push sent", slog.String("recipient_id", m.ID), slog.String("date", rec.Date.String()))
		case errors.Is(err, notify.ErrDisabled):
			return
		default:
			log.Warn("custody change push failed", slog.String("recipient_id", m.ID), slog.Any("err", err))
		}
	}
}
