package service

import (
	"context"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

type JournalInput struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content string  `json:"content" validate:"required,max=10000"`
	// EntryDate defaults to today.
	EntryDate *model.Date `json:"entry_date"`
}

type JournalPage struct {
	Entries    []model.JournalEntry `json:"entries"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

// JournalService manages the shared family journal. Entries are visible to
// the whole family; only the author may change or remove one.
type JournalService interface {
	List(ctx context.Context, caller *model.User, page Page) (*JournalPage, error)
	Get(ctx context.Context, caller *model.User, id int64) (*model.JournalEntry, error)
	Create(ctx context.Context, caller *model.User, in JournalInput) (*model.JournalEntry, error)
	Update(ctx context.Context, caller *model.User, id int64, in JournalInput) (*model.JournalEntry, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type journalService struct {
	repo repository.JournalRepository
	now  Clock
}

func NewJournalService(repo repository.JournalRepository, now Clock) JournalService {
	return &journalService{repo: repo, now: now}
}

func (s *journalService) List(ctx context.Context, caller *model.User, page Page) (*JournalPage, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	page = page.normalize()
	res, err := s.repo.List(ctx, familyID, page.query())
	if err != nil {
		return nil, err
	}
	return &JournalPage{
		Entries:    res.Items,
		Total:      res.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages(res.Total, page.Limit),
	}, nil
}

func (s *journalService) Get(ctx context.Context, caller *model.User, id int64) (*model.JournalEntry, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "journal entry")
	}
	return e, nil
}

func (s *journalService) Create(ctx context.Context, caller *model.User, in JournalInput) (*model.JournalEntry, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	e, err := s.build(in)
	if err != nil {
		return nil, err
	}
	e.FamilyID, e.UserID = familyID, caller.ID
	return s.repo.Create(ctx, e)
}

func (s *journalService) Update(ctx context.Context, caller *model.User, id int64, in JournalInput) (*model.JournalEntry, error) {
	current, err := s.owned(ctx, caller, id, "edit")
	if err != nil {
		return nil, err
	}
	e, err := s.build(in)
	if err != nil {
		return nil, err
	}
	e.ID, e.FamilyID, e.UserID = current.ID, current.FamilyID, current.UserID
	out, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, fromRepo(err, "journal entry")
	}
	return out, nil
}

func (s *journalService) Delete(ctx context.Context, caller *model.User, id int64) error {
	current, err := s.owned(ctx, caller, id, "delete")
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, current.FamilyID, id), "journal entry")
}

// owned loads an entry and requires the caller to be its author.
func (s *journalService) owned(ctx context.Context, caller *model.User, id int64, action string) (*model.JournalEntry, error) {
	e, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != caller.ID {
		return nil, forbidden("you can only %s your own journal entries", action)
	}
	return e, nil
}

func (s *journalService) build(in JournalInput) (*model.JournalEntry, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if err := check(in); err != nil {
		return nil, err
	}
	e := &model.JournalEntry{Title: in.Title, Content: in.Content, EntryDate: s.now.today()}
	if in.EntryDate != nil {
		e.EntryDate = *in.EntryDate
	}
	return e, nil
}
