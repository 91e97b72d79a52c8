package domain

import "testing"

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleCustomer, RoleTasker, RoleVendor, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("expected %s to be valid", r)
		}
	}
	if Role("driver").Valid() {
		t.Fatalf("unknown role accepted")
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("tasker")
	if err != nil || role != RoleTasker {
		t.Fatalf("expected tasker, got %v (%v)", role, err)
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestFeaturesFor(t *testing.T) {
	if f := FeaturesFor(RoleTasker); !f.CanAcceptJobs || f.CanPlaceOrders || f.CanManageListings {
		t.Fatalf("unexpected tasker features: %+v", f)
	}
	if f := FeaturesFor(RoleVendor); !f.CanManageListings || f.CanAcceptJobs {
		t.Fatalf("unexpected vendor features: %+v", f)
	}
	if f := FeaturesFor(RoleCustomer); !f.CanPlaceOrders || f.CanModerate {
		t.Fatalf("unexpected customer features: %+v", f)
	}
	admin := FeaturesFor(RoleAdmin)
	if !admin.CanPlaceOrders || !admin.CanAcceptJobs || !admin.CanManageListings || !admin.CanModerate {
		t.Fatalf("expected admin to have everything: %+v", admin)
	}
	if f := FeaturesFor(Role("ghost")); f != (Features{}) {
		t.Fatalf("expected empty features for unknown role: %+v", f)
	}
}

func TestUser_Apply(t *testing.T) {
	u := User{Name: "Ann", Email: "ann@example.com", Role: RoleCustomer}
	name := "Anna"
	avatar := "https://cdn.example.com/a.png"
	u.Apply(UserPatch{Name: &name, AvatarURL: &avatar})

	if u.Name != "Anna" || u.AvatarURL != avatar {
		t.Fatalf("patch not applied: %+v", u)
	}
	if u.Email != "ann@example.com" || u.Role != RoleCustomer {
		t.Fatalf("untouched fields changed: %+v", u)
	}
}
