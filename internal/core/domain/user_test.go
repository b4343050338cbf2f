package domain

import "testing"

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role        Role
		manager     bool
		worker      bool
		manageUsers bool
	}{
		{RoleAdiestrado, false, true, false},
		{RoleRegular, false, true, false},
		{RoleEspecialista, false, true, false},
		{RoleAdmin, true, false, false},
		{RoleSuperuser, true, false, true},
	}

	for _, tc := range cases {
		u := &User{Profile: Profile{Role: tc.role}}
		if got := IsManager(u); got != tc.manager {
			t.Fatalf("%s: IsManager = %t", tc.role, got)
		}
		if got := IsWorker(u); got != tc.worker {
			t.Fatalf("%s: IsWorker = %t", tc.role, got)
		}
		if got := CanManageUsers(u); got != tc.manageUsers {
			t.Fatalf("%s: CanManageUsers = %t", tc.role, got)
		}
	}
}

func TestRolePredicates_NilUser(t *testing.T) {
	if IsManager(nil) || IsWorker(nil) || CanManageUsers(nil) {
		t.Fatalf("nil user must hold no capabilities")
	}
}

func TestThemeOpposite(t *testing.T) {
	if ThemeLight.Opposite() != ThemeDark {
		t.Fatalf("light must flip to dark")
	}
	if ThemeDark.Opposite() != ThemeLight {
		t.Fatalf("dark must flip to light")
	}
	if !ValidTheme("light") || !ValidTheme("dark") || ValidTheme("sepia") {
		t.Fatalf("theme validation mismatch")
	}
}
