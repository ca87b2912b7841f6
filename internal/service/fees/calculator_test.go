package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

func TestCompute(t *testing.T) {
	start, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("12:00")
	require.NoError(t, err)

	tests := []struct {
		name        string
		hourlyPrice float64
		role        domain.Role
		selfService bool
		expected    float64
		expectedErr error
	}{
		{
			name:        "member pays full price",
			hourlyPrice: 20,
			role:        domain.RoleMember,
			expected:    40,
		},
		{
			name:        "guest pays full price",
			hourlyPrice: 20,
			role:        domain.RoleGuest,
			expected:    40,
		},
		{
			name:        "premium pays nothing",
			hourlyPrice: 20,
			role:        domain.RolePremium,
			expected:    0,
		},
		{
			name:        "coach pays nothing",
			hourlyPrice: 20,
			role:        domain.RoleCoach,
			expected:    0,
		},
		{
			name:        "admin self-service gets 20 percent discount",
			hourlyPrice: 20,
			role:        domain.RoleAdmin,
			selfService: true,
			expected:    32,
		},
		{
			name:        "admin without self-service is rejected",
			hourlyPrice: 20,
			role:        domain.RoleAdmin,
			expectedErr: ErrRoleNotAllowed,
		},
		{
			name:        "staff is rejected",
			hourlyPrice: 20,
			role:        domain.RoleStaff,
			expectedErr: ErrRoleNotAllowed,
		},
		{
			name:        "superadmin is rejected",
			hourlyPrice: 20,
			role:        domain.RoleSuperAdmin,
			expectedErr: ErrRoleNotAllowed,
		},
		{
			name:        "unknown role is rejected",
			hourlyPrice: 20,
			role:        domain.Role("janitor"),
			expectedErr: ErrUnknownRole,
		},
		{
			name:        "fractional price rounds to cents",
			hourlyPrice: 19.99,
			role:        domain.RoleMember,
			expected:    39.98,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := Compute(tt.hourlyPrice, start, end, tt.role, tt.selfService)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, fee, 0.001)
		})
	}
}

func TestCompute_PartialHour(t *testing.T) {
	start, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("11:30")
	require.NoError(t, err)

	fee, err := Compute(20, start, end, domain.RoleMember, false)
	require.NoError(t, err)
	assert.InDelta(t, 30, fee, 0.001)
}

func TestCompute_InvalidRange(t *testing.T) {
	start, err := types.NewTimeStringFromString("12:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	_, err = Compute(20, start, end, domain.RoleMember, false)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = Compute(20, start, start, domain.RoleMember, false)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		submitted float64
		computed  float64
		expected  bool
	}{
		{name: "exact match", submitted: 40, computed: 40, expected: true},
		{name: "within epsilon", submitted: 40.004, computed: 40, expected: true},
		{name: "below epsilon boundary", submitted: 39.996, computed: 40, expected: true},
		{name: "one cent off", submitted: 40.01, computed: 40, expected: false},
		{name: "tampered amount", submitted: 0, computed: 40, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.submitted, tt.computed))
		})
	}
}
