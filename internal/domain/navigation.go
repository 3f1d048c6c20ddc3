package domain

// NavItem is one entry of the dashboard's side navigation.
// swagger:model NavItem
type NavItem struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Label string `json:"label"`
}

type navEntry struct {
	item  NavItem
	roles []string
}

var navigation = []navEntry{
	{NavItem{Key: "dashboard", Path: "/dashboard", Label: "Dashboard"}, AllRoles},
	{NavItem{Key: "projects", Path: "/projects", Label: "Projects"}, AllRoles},
	{NavItem{Key: "transactions", Path: "/transactions", Label: "Transactions"}, AllRoles},
	{NavItem{Key: "debts", Path: "/debts", Label: "Debts"}, []string{RoleAdmin, RoleManager}},
	{NavItem{Key: "categories", Path: "/categories", Label: "Categories"}, []string{RoleAdmin, RoleManager}},
	{NavItem{Key: "companies", Path: "/companies", Label: "Companies"}, []string{RoleAdmin, RoleManager}},
	{NavItem{Key: "positions", Path: "/positions", Label: "Positions"}, []string{RoleAdmin}},
	{NavItem{Key: "users", Path: "/users", Label: "Users"}, []string{RoleAdmin}},
}

// NavigationFor returns the navigation entries visible to a holder of roles, in display order.
func NavigationFor(roles []string) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	for _, e := range navigation {
		if HasAnyRole(roles, e.roles...) {
			items = append(items, e.item)
		}
	}
	return items
}
