package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coparent/internal/model"
	"coparent/internal/repository"
	repoMocks "coparent/internal/repository/mocks"
)

func TestBabysitterService_Create(t *testing.T) {
	ctx := context.Background()
	rate := 18.5

	t.Run("links to the caller's family", func(t *testing.T) {
		mRepo := new(repoMocks.MockBabysitterRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(b *model.Babysitter) bool {
			return b.FamilyID == famID && b.CreatedBy == parentOne && b.FirstName == "Ana" && *b.Rate == rate
		})).Return(&model.Babysitter{ID: 7, FamilyID: famID, FirstName: "Ana"}, nil)

		got, err := NewBabysitterService(mRepo).Create(ctx, testCaller(),
			BabysitterInput{FirstName: " Ana ", LastName: "Lopez", PhoneNumber: "555-0100", Rate: &rate})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		mRepo.AssertExpectations(t)
	})

	cases := map[string]struct {
		in    BabysitterInput
		field string
	}{
		"missing first name": {BabysitterInput{LastName: "Lopez", PhoneNumber: "555"}, "first_name"},
		"missing last name":  {BabysitterInput{FirstName: "Ana", PhoneNumber: "555"}, "last_name"},
		"missing phone":      {BabysitterInput{FirstName: "Ana", LastName: "Lopez", PhoneNumber: "  "}, "phone_number"},
		"negative rate":      {BabysitterInput{FirstName: "Ana", LastName: "Lopez", PhoneNumber: "555", Rate: func() *float64 { r := -1.0; return &r }()}, "rate"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mRepo := new(repoMocks.MockBabysitterRepository)
			_, err := NewBabysitterService(mRepo).Create(ctx, testCaller(), tc.in)

			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tc.field, svcErr.Field)
			mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestBabysitterService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	in := BabysitterInput{FirstName: "Ana", LastName: "Lopez", PhoneNumber: "555-0100"}

	t.Run("update in another family", func(t *testing.T) {
		mRepo := new(repoMocks.MockBabysitterRepository)
		mRepo.On("Update", ctx, mock.MatchedBy(func(b *model.Babysitter) bool {
			return b.ID == 3 && b.FamilyID == famID
		})).Return(nil, repository.ErrNotFound)

		_, err := NewBabysitterService(mRepo).Update(ctx, testCaller(), 3, in)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "babysitter not found")
	})

	t.Run("delete unlinks from the family", func(t *testing.T) {
		mRepo := new(repoMocks.MockBabysitterRepository)
		mRepo.On("Unlink", ctx, famID, int64(3)).Return(nil)

		require.NoError(t, NewBabysitterService(mRepo).Delete(ctx, testCaller(), 3))
		mRepo.AssertExpectations(t)
	})

	t.Run("delete when not linked", func(t *testing.T) {
		mRepo := new(repoMocks.MockBabysitterRepository)
		mRepo.On("Unlink", ctx, famID, int64(3)).Return(repository.ErrNotFound)

		assert.ErrorIs(t, NewBabysitterService(mRepo).Delete(ctx, testCaller(), 3), ErrNotFound)
	})

	t.Run("caller without family", func(t *testing.T) {
		_, err := NewBabysitterService(new(repoMocks.MockBabysitterRepository)).List(ctx, &model.User{ID: parentOne})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestEmergencyContactService(t *testing.T) {
	ctx := context.Background()
	grandmother := "grandmother"
	in := EmergencyContactInput{FirstName: "Rosa", LastName: "Diaz", PhoneNumber: "555-0199", Relationship: &grandmother}

	t.Run("create", func(t *testing.T) {
		mRepo := new(repoMocks.MockEmergencyContactRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.EmergencyContact) bool {
			return c.FamilyID == famID && c.CreatedBy == parentOne && *c.Relationship == grandmother
		})).Return(&model.EmergencyContact{ID: 2}, nil)

		got, err := NewEmergencyContactService(mRepo).Create(ctx, testCaller(), in)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("update missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockEmergencyContactRepository)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, repository.ErrNotFound)

		_, err := NewEmergencyContactService(mRepo).Update(ctx, testCaller(), 9, in)
		assert.EqualError(t, err, "emergency contact not found")
	})

	t.Run("delete", func(t *testing.T) {
		mRepo := new(repoMocks.MockEmergencyContactRepository)
		mRepo.On("Delete", ctx, famID, int64(2)).Return(nil)

		require.NoError(t, NewEmergencyContactService(mRepo).Delete(ctx, testCaller(), 2))
		mRepo.AssertExpectations(t)
	})

	t.Run("relationship too long", func(t *testing.T) {
		long := string(make([]byte, 101))
		bad := in
		bad.Relationship = &long

		_, err := NewEmergencyContactService(new(repoMocks.MockEmergencyContactRepository)).Create(ctx, testCaller(), bad)
		var svcErr *Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "relationship", svcErr.Field)
	})
}
