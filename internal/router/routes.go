package router

import "strings"

// Route is an entry in the console's route table. Child paths inherit the guards of
// their parent entry.
type Route struct {
	Path       string
	Title      string
	Guards     []Guard
	RedirectTo string
}

// Routes is the console's route table.
var Routes = []Route{
	{Path: LoginPath, Title: "Login"},
	{Path: "/", RedirectTo: LandingPath},
	{Path: LandingPath, Title: "Dashboard", Guards: []Guard{AuthGuard}},
	{Path: "/victims", Title: "Victims", Guards: []Guard{AuthGuard}},
	{Path: "/attempts", Title: "Resistance Attempts", Guards: []Guard{AuthGuard}},
	{Path: "/reports", Title: "Reports", Guards: []Guard{AuthGuard}},
	{Path: "/rewards", Title: "Rewards & Punishments", Guards: []Guard{AuthGuard}},
	{Path: "/content", Title: "Resistance Content", Guards: []Guard{AuthGuard}},
	{Path: "/users", Title: "User Management", Guards: []Guard{AuthGuard, ElevatedGuard}},
	{Path: NotFoundPath, Title: "Not Found"},
}

// Match finds the route for path, ignoring any query string. Unknown paths resolve to
// the not-found route.
func Match(path string) Route {
	p := cleanPath(path)
	for _, route := range Routes {
		if route.Path == "/" {
			if p == "/" {
				return route
			}
			continue
		}
		if p == route.Path || strings.HasPrefix(p, route.Path+"/") {
			return route
		}
	}
	return Route{Path: NotFoundPath, Title: "Not Found"}
}

func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
