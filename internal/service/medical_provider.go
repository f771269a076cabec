package service

import (
	"context"
	"fmt"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// MedicalProviderQuery filters, sorts and pages a provider listing.
type MedicalProviderQuery struct {
	// Search matches name, specialty or address.
	Search    string
	Specialty string
	// SortBy is name, specialty or created_at. Empty means name.
	SortBy string
	// SortOrder is asc or desc. Empty means asc.
	SortOrder string
	Page      Page
}

type MedicalProviderPage struct {
	Providers  []model.MedicalProvider `json:"providers"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

type MedicalProviderInput struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Specialty *string  `json:"specialty" validate:"omitempty,max=255"`
	Address   *string  `json:"address" validate:"omitempty,max=500"`
	Phone     *string  `json:"phone" validate:"omitempty,max=50"`
	Email     *string  `json:"email" validate:"omitempty,email,max=255"`
	Website   *string  `json:"website" validate:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ZipCode   *string  `json:"zip_code" validate:"omitempty,max=20"`
	Notes     *string  `json:"notes" validate:"omitempty,max=2000"`
}

// MedicalProviderPatch is a partial update; nil fields keep their current value.
type MedicalProviderPatch struct {
	Name      *string  `json:"name"`
	Specialty *string  `json:"specialty"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Email     *string  `json:"email"`
	Website   *string  `json:"website"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ZipCode   *string  `json:"zip_code"`
	Notes     *string  `json:"notes"`
}

// MedicalProviderService manages the family's doctors, dentists and clinics.
type MedicalProviderService interface {
	List(ctx context.Context, caller *model.User, q MedicalProviderQuery) (*MedicalProviderPage, error)
	// Search is List with a required search term.
	Search(ctx context.Context, caller *model.User, q MedicalProviderQuery) (*MedicalProviderPage, error)
	Get(ctx context.Context, caller *model.User, id int64) (*model.MedicalProvider, error)
	Create(ctx context.Context, caller *model.User, in MedicalProviderInput) (*model.MedicalProvider, error)
	Update(ctx context.Context, caller *model.User, id int64, patch MedicalProviderPatch) (*model.MedicalProvider, error)
	Delete(ctx context.Context, caller *model.User, id int64) error
}

type medicalProviderService struct {
	repo repository.MedicalProviderRepository
}

func NewMedicalProviderService(repo repository.MedicalProviderRepository) MedicalProviderService {
	return &medicalProviderService{repo: repo}
}

func (s *medicalProviderService) List(ctx context.Context, caller *model.User, q MedicalProviderQuery) (*MedicalProviderPage, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	switch sortBy {
	case "name", "specialty", "created_at":
	default:
		return nil, invalid("sort_by", "sort_by must be one of: name, specialty, created_at")
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
	res, err := s.repo.List(ctx, familyID, repository.MedicalProviderFilter{
		Search:    strings.TrimSpace(q.Search),
		Specialty: strings.TrimSpace(q.Specialty),
		SortBy:    sortBy,
		Desc:      desc,
		Page:      page.query(),
	})
	if err != nil {
		return nil, err
	}
	return &MedicalProviderPage{
		Providers:  res.Items,
		Total:      res.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages(res.Total, page.Limit),
	}, nil
}

func (s *medicalProviderService) Search(ctx context.Context, caller *model.User, q MedicalProviderQuery) (*MedicalProviderPage, error) {
	if strings.TrimSpace(q.Search) == "" {
		return nil, invalid("q", "q is required")
	}
	return s.List(ctx, caller, q)
}

func (s *medicalProviderService) Get(ctx context.Context, caller *model.User, id int64) (*model.MedicalProvider, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "medical provider")
	}
	return p, nil
}

func (s *medicalProviderService) Create(ctx context.Context, caller *model.User, in MedicalProviderInput) (*model.MedicalProvider, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	p := &model.MedicalProvider{
		FamilyID:  familyID,
		Name:      in.Name,
		Specialty: in.Specialty,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Website:   in.Website,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		ZipCode:   in.ZipCode,
		Notes:     in.Notes,
	}
	if err := normalizeProvider(p); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fromRepo(err, "medical provider")
	}
	return out, nil
}

func (s *medicalProviderService) Update(ctx context.Context, caller *model.User, id int64, patch MedicalProviderPatch) (*model.MedicalProvider, error) {
	familyID, err := familyOf(caller)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, fromRepo(err, "medical provider")
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Specialty != nil {
		p.Specialty = patch.Specialty
	}
	if patch.Address != nil {
		p.Address = patch.Address
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.Email != nil {
		p.Email = patch.Email
	}
	if patch.Website != nil {
		p.Website = patch.Website
	}
	if patch.Latitude != nil {
		p.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = patch.Longitude
	}
	if patch.ZipCode != nil {
		p.ZipCode = patch.ZipCode
	}
	if patch.Notes != nil {
		p.Notes = patch.Notes
	}

	if err := normalizeProvider(p); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, fromRepo(err, "medical provider")
	}
	return out, nil
}

func (s *medicalProviderService) Delete(ctx context.Context, caller *model.User, id int64) error {
	familyID, err := familyOf(caller)
	if err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, familyID, id), "medical provider")
}

// normalizeProvider trims text fields, blanks become nil, then validates and
// rewrites phone and website into their stored forms.
func normalizeProvider(p *model.MedicalProvider) error {
	p.Name = strings.TrimSpace(p.Name)
	for _, f := range []**string{&p.Specialty, &p.Address, &p.Phone, &p.Email, &p.Website, &p.ZipCode, &p.Notes} {
		*f = trimmed(*f)
	}
	if err := check(MedicalProviderInput{
		Name:      p.Name,
		Specialty: p.Specialty,
		Address:   p.Address,
		Phone:     p.Phone,
		Email:     p.Email,
		Website:   p.Website,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		ZipCode:   p.ZipCode,
		Notes:     p.Notes,
	}); err != nil {
		return err
	}

	if p.Phone != nil {
		phone, ok := formatPhone(*p.Phone)
		if !ok {
			return invalid("phone", "phone must be a 10 digit US number")
		}
		p.Phone = &phone
	}
	if p.Website != nil {
		site := *p.Website
		if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
			site = "https://" + site
		}
		p.Website = &site
	}
	return nil
}

// formatPhone renders 10 digits, or 11 with a leading country code 1, as
// (XXX) XXX-XXXX. Formatting characters in the input are ignored.
func formatPhone(s string) (string, bool) {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), true
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
