package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func navKeys(items []NavItem) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

func TestNavigationFor(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  []string
	}{
		{name: "admin sees everything", roles: []string{RoleAdmin}, want: []string{"dashboard", "projects", "transactions", "debts", "categories", "companies", "positions", "users"}},
		{name: "manager", roles: []string{RoleManager}, want: []string{"dashboard", "projects", "transactions", "debts", "categories", "companies"}},
		{name: "member", roles: []string{RoleMember}, want: []string{"dashboard", "projects", "transactions"}},
		{name: "member and manager union", roles: []string{RoleMember, RoleManager}, want: []string{"dashboard", "projects", "transactions", "debts", "categories", "companies"}},
		{name: "no roles", roles: nil, want: []string{}},
		{name: "unknown role", roles: []string{"guest"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, navKeys(NavigationFor(tt.roles)))
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, HasAnyRole([]string{RoleMember, RoleAdmin}, RoleAdmin))
	assert.False(t, HasAnyRole([]string{RoleMember}, RoleAdmin, RoleManager))
	assert.False(t, HasAnyRole(nil, RoleAdmin))
	assert.True(t, IsValidRole(RoleManager))
	assert.False(t, IsValidRole("root"))
}
