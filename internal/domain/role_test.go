package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "member lowercase", input: "member", want: RoleMember},
		{name: "mixed case", input: "Premium", want: RolePremium},
		{name: "uppercase", input: "COACH", want: RoleCoach},
		{name: "with spaces", input: "  admin  ", want: RoleAdmin},
		{name: "superadmin", input: "SuperAdmin", want: RoleSuperAdmin},
		{name: "guest", input: "guest", want: RoleGuest},
		{name: "unknown role", input: "manager", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_IsExclusive(t *testing.T) {
	assert.True(t, RoleCoach.IsExclusive())
	assert.False(t, RoleMember.IsExclusive())
	assert.False(t, RolePremium.IsExclusive())
	assert.False(t, RoleAdmin.IsExclusive())
}

func TestIsValidPaymentMethod(t *testing.T) {
	assert.True(t, IsValidPaymentMethod(PayNone))
	assert.True(t, IsValidPaymentMethod(PayCash))
	assert.True(t, IsValidPaymentMethod(PayCard))
	assert.True(t, IsValidPaymentMethod(PayEWallet))
	assert.False(t, IsValidPaymentMethod("Crypto"))
}
