package domain

import (
	"errors"
	"strings"
)

// PermissionCategory groups catalog entries for display and bulk selection.
type PermissionCategory string

const (
	CategoryUserManagement      PermissionCategory = "user_management"
	CategoryOrderManagement     PermissionCategory = "order_management"
	CategoryCustomerManagement  PermissionCategory = "customer_management"
	CategoryInventoryManagement PermissionCategory = "inventory_management"
	CategorySettings            PermissionCategory = "settings"
	CategoryReports             PermissionCategory = "reports"
)

var ErrUnknownCategory = errors.New("unknown permission category")

// Label returns the human readable name, e.g. "Order Management".
func (c PermissionCategory) Label() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Permission is an immutable catalog entry keyed by a stable id such as
// "orders.fulfill".
type Permission struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    PermissionCategory `json:"category"`
	Resource    string             `json:"resource"`
	Action      string             `json:"action"`
}

var categories = []PermissionCategory{
	CategoryUserManagement,
	CategoryOrderManagement,
	CategoryCustomerManagement,
	CategoryInventoryManagement,
	CategorySettings,
	CategoryReports,
}

var catalog = []Permission{
	{"users.view", "View Users", "View user list and details", CategoryUserManagement, "users", "view"},
	{"users.create", "Create Users", "Add new users to the system", CategoryUserManagement, "users", "create"},
	{"users.edit", "Edit Users", "Modify user information and roles", CategoryUserManagement, "users", "edit"},
	{"users.delete", "Delete Users", "Remove users from the system", CategoryUserManagement, "users", "delete"},

	{"orders.view", "View Orders", "View order list and details", CategoryOrderManagement, "orders", "view"},
	{"orders.create", "Create Orders", "Create new orders", CategoryOrderManagement, "orders", "create"},
	{"orders.edit", "Edit Orders", "Modify order information", CategoryOrderManagement, "orders", "edit"},
	{"orders.delete", "Delete Orders", "Cancel or remove orders", CategoryOrderManagement, "orders", "delete"},
	{"orders.fulfill", "Fulfill Orders", "Process and fulfill orders", CategoryOrderManagement, "orders", "fulfill"},

	{"customers.view", "View Customers", "View customer list and details", CategoryCustomerManagement, "customers", "view"},
	{"customers.create", "Create Customers", "Add new customers", CategoryCustomerManagement, "customers", "create"},
	{"customers.edit", "Edit Customers", "Modify customer information", CategoryCustomerManagement, "customers", "edit"},
	{"customers.delete", "Delete Customers", "Remove customers", CategoryCustomerManagement, "customers", "delete"},

	{"inventory.view", "View Inventory", "View inventory levels and products", CategoryInventoryManagement, "inventory", "view"},
	{"inventory.create", "Create Products", "Add new products to inventory", CategoryInventoryManagement, "inventory", "create"},
	{"inventory.edit", "Edit Inventory", "Modify inventory levels and products", CategoryInventoryManagement, "inventory", "edit"},
	{"inventory.delete", "Delete Products", "Remove products from inventory", CategoryInventoryManagement, "inventory", "delete"},

	{"settings.view", "View Settings", "Access system settings", CategorySettings, "settings", "view"},
	{"settings.edit", "Edit Settings", "Modify system configuration", CategorySettings, "settings", "edit"},
	{"roles.manage", "Manage Roles", "Create and edit user roles", CategorySettings, "roles", "manage"},

	{"reports.view", "View Reports", "Access system reports", CategoryReports, "reports", "view"},
	{"reports.export", "Export Reports", "Export reports to various formats", CategoryReports, "reports", "export"},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, p := range catalog {
		idx[p.ID] = i
	}
	return idx
}()

// Catalog returns a copy of the fixed permission catalog in display order.
func Catalog() []Permission {
	out := make([]Permission, len(catalog))
	copy(out, catalog)
	return out
}

// Categories returns every category in display order.
func Categories() []PermissionCategory {
	out := make([]PermissionCategory, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory validates a category value.
func ParseCategory(s string) (PermissionCategory, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// LookupPermission finds a catalog entry by id.
func LookupPermission(id string) (Permission, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Permission{}, false
	}
	return catalog[i], true
}

// PermissionsInCategory lists the catalog entries of one category.
func PermissionsInCategory(c PermissionCategory) []Permission {
	var out []Permission
	for _, p := range catalog {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// FilterPermissions keeps only ids present in the catalog, dropping unknown
// ids and duplicates. The result follows catalog order.
func FilterPermissions(ids []string) []Permission {
	return NewPermissionSet(ids...).Permissions()
}

// ExpandPermissionPatterns resolves seed-style patterns into catalog ids.
// "*" selects everything, "orders.*" selects every id with that resource
// prefix, anything else must be an exact id. Unmatched patterns are dropped.
func ExpandPermissionPatterns(patterns []string) []string {
	set := NewPermissionSet()
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		switch {
		case pattern == "*":
			for _, p := range catalog {
				set.Add(p.ID)
			}
		case strings.HasSuffix(pattern, ".*"):
			prefix := strings.TrimSuffix(pattern, "*")
			for _, p := range catalog {
				if strings.HasPrefix(p.ID, prefix) {
					set.Add(p.ID)
				}
			}
		default:
			set.Add(pattern)
		}
	}
	return set.IDs()
}
