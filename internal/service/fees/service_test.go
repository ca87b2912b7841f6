package fees

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/CMS-FacilityService/internal/integrations/userdirectory"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

type fakeFacilityRepo struct {
	facility *domain.Facility
	err      error
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, f.err
}

type fakeUserDirectory struct {
	users map[string]*userdirectory.User
}

func (f *fakeUserDirectory) FindByEmail(_ context.Context, email string) (*userdirectory.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, userdirectory.ErrUserNotFound
	}
	return user, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestService_Quote(t *testing.T) {
	facility := &domain.Facility{ID: 1, Name: "Tennis Court 1", HourlyPrice: 20, IsActive: true}
	directory := &fakeUserDirectory{users: map[string]*userdirectory.User{
		"member@club.com":  {Email: "member@club.com", Name: "Member", Role: "member"},
		"premium@club.com": {Email: "premium@club.com", Name: "Premium", Role: "premium"},
		"admin@club.com":   {Email: "admin@club.com", Name: "Admin", Role: "admin"},
		"staff@club.com":   {Email: "staff@club.com", Name: "Staff", Role: "staff"},
	}}

	svc := NewService(&fakeFacilityRepo{facility: facility}, directory, nopLogger{})

	tests := []struct {
		name           string
		customerEmail  string
		requesterEmail string
		expectedFee    float64
		expectedRole   domain.Role
		expectedErr    error
	}{
		{
			name:          "registered member",
			customerEmail: "member@club.com",
			expectedFee:   40,
			expectedRole:  domain.RoleMember,
		},
		{
			name:          "premium books for free",
			customerEmail: "premium@club.com",
			expectedFee:   0,
			expectedRole:  domain.RolePremium,
		},
		{
			name:          "empty email falls back to guest",
			customerEmail: "",
			expectedFee:   40,
			expectedRole:  domain.RoleGuest,
		},
		{
			name:          "unregistered email falls back to guest",
			customerEmail: "stranger@mail.com",
			expectedFee:   40,
			expectedRole:  domain.RoleGuest,
		},
		{
			name:           "admin booking for self gets discount",
			customerEmail:  "admin@club.com",
			requesterEmail: "admin@club.com",
			expectedFee:    32,
			expectedRole:   domain.RoleAdmin,
		},
		{
			name:           "admin booking for someone else is rejected",
			customerEmail:  "admin@club.com",
			requesterEmail: "staff@club.com",
			expectedErr:    ErrRoleNotAllowed,
		},
		{
			name:          "staff is rejected",
			customerEmail: "staff@club.com",
			expectedErr:   ErrRoleNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Quote(context.Background(), &QuoteRequest{
				FacilityID:     1,
				StartTime:      mustTime(t, "10:00"),
				EndTime:        mustTime(t, "12:00"),
				CustomerEmail:  tt.customerEmail,
				RequesterEmail: tt.requesterEmail,
			})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.expectedFee, resp.Fee, 0.001)
			assert.Equal(t, tt.expectedRole, resp.Role)
			assert.Equal(t, 120, resp.DurationMinutes)
		})
	}
}

func TestService_Quote_FacilityNotFound(t *testing.T) {
	svc := NewService(
		&fakeFacilityRepo{err: facilityRepo.ErrFacilityNotFound},
		&fakeUserDirectory{},
		nopLogger{},
	)

	_, err := svc.Quote(context.Background(), &QuoteRequest{
		FacilityID: 99,
		StartTime:  mustTime(t, "10:00"),
		EndTime:    mustTime(t, "11:00"),
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
