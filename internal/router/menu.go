package router

// MenuItem is a sidebar entry.
type MenuItem struct {
	Label        string
	Path         string
	ElevatedOnly bool
}

var menu = []MenuItem{
	{Label: "Dashboard", Path: LandingPath},
	{Label: "Victims", Path: "/victims"},
	{Label: "Resistance Attempts", Path: "/attempts"},
	{Label: "Reports", Path: "/reports", ElevatedOnly: true},
	{Label: "Rewards & Punishments", Path: "/rewards"},
	{Label: "Resistance Content", Path: "/content"},
	{Label: "User Management", Path: "/users", ElevatedOnly: true},
}

// Menu lists the sidebar entries visible to a session.
func Menu(elevated bool) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.ElevatedOnly && !elevated {
			continue
		}
		items = append(items, item)
	}
	return items
}
