package domain

import (
	"reflect"
	"testing"
)

func TestCatalog_IsFixedAndUnique(t *testing.T) {
	perms := Catalog()
	if len(perms) != 22 {
		t.Fatalf("expected 22 permissions, got %d", len(perms))
	}

	seen := make(map[string]bool)
	for _, p := range perms {
		if seen[p.ID] {
			t.Fatalf("duplicate permission id %q", p.ID)
		}
		seen[p.ID] = true
		if _, err := ParseCategory(string(p.Category)); err != nil {
			t.Fatalf("permission %q has unknown category %q", p.ID, p.Category)
		}
	}

	perms[0].Name = "mutated"
	if got, _ := LookupPermission(perms[0].ID); got.Name == "mutated" {
		t.Fatalf("Catalog must return a copy")
	}
}

func TestPermissionsInCategory(t *testing.T) {
	cases := map[PermissionCategory]int{
		CategoryUserManagement:      4,
		CategoryOrderManagement:     5,
		CategoryCustomerManagement:  4,
		CategoryInventoryManagement: 4,
		CategorySettings:            3,
		CategoryReports:             2,
	}
	for cat, want := range cases {
		if got := len(PermissionsInCategory(cat)); got != want {
			t.Errorf("%s: expected %d permissions, got %d", cat, want, got)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryInventoryManagement.Label(); got != "Inventory Management" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := CategoryReports.Label(); got != "Reports" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestFilterPermissions_DropsUnknownAndDuplicates(t *testing.T) {
	got := FilterPermissions([]string{"users.view", "bogus.permission", "users.view"})
	if len(got) != 1 || got[0].ID != "users.view" {
		t.Fatalf("expected only users.view, got %+v", got)
	}
}

func TestFilterPermissions_FollowsCatalogOrder(t *testing.T) {
	got := FilterPermissions([]string{"reports.view", "users.delete", "orders.view"})
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	want := []string{"users.delete", "orders.view", "reports.view"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}

func TestExpandPermissionPatterns(t *testing.T) {
	if got := ExpandPermissionPatterns([]string{"*"}); len(got) != 22 {
		t.Fatalf("wildcard should select the whole catalog, got %d", len(got))
	}

	got := ExpandPermissionPatterns([]string{"inventory.*", "orders.fulfill", "nope.*", "nope.view"})
	want := []string{"orders.fulfill", "inventory.view", "inventory.create", "inventory.edit", "inventory.delete"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseUserType(t *testing.T) {
	if got, err := ParseUserType("EMPLOYEE"); err != nil || got != UserTypeEmployee {
		t.Fatalf("expected employee, got %q (%v)", got, err)
	}
	if _, err := ParseUserType("vendor"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestRoleKey(t *testing.T) {
	cases := map[string]string{
		"Admin":             "admin",
		"Customer Service":  "customer_service",
		"  Team   Member  ": "team_member",
	}
	for in, want := range cases {
		if got := RoleKey(in); got != want {
			t.Errorf("RoleKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIdentityClaims_Validate(t *testing.T) {
	valid := IdentityClaims{Subject: "u1", Email: "a@example.com", TenantID: "t1", Type: UserTypeEmployee, Role: "admin"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := valid
	missing.TenantID = ""
	if err := missing.Validate(); err == nil {
		t.Fatalf("expected error for missing tenant")
	}

	badType := valid
	badType.Type = "EMPLOYEE"
	if err := badType.Validate(); err == nil {
		t.Fatalf("expected error for non-canonical type")
	}
}
