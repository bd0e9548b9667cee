// Package router decides where console navigation may go.
package router

import "net/url"

const (
	LoginPath    = "/login"
	LandingPath  = "/dashboard"
	NotFoundPath = "/not-found"
)

// AccessDeniedNotice is shown when an authenticated session lacks the elevated role.
const AccessDeniedNotice = "Access denied. You must be a superadmin to access this page."

// Session is the read side of the session store the guards consult.
type Session interface {
	IsAuthenticated() bool
	HasElevatedRole() bool
}

// Decision is a guard outcome. A refused navigation carries where to go instead and,
// for privilege denials, the notice to show.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Notice     string
}

// Allow lets the navigation through.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Guard decides whether the session may reach target.
type Guard interface {
	Name() string
	Check(s Session, target string) Decision
}

type authGuard struct{}

// AuthGuard sends unauthenticated visitors to login with the requested path as the
// returnUrl parameter.
var AuthGuard Guard = authGuard{}

func (authGuard) Name() string { return "auth" }

func (authGuard) Check(s Session, target string) Decision {
	if s.IsAuthenticated() {
		return Allow()
	}
	return Decision{RedirectTo: LoginRedirect(target)}
}

type elevatedGuard struct{}

// ElevatedGuard sends sessions without the elevated role to the landing page with a
// denial notice. It is always composed after AuthGuard.
var ElevatedGuard Guard = elevatedGuard{}

func (elevatedGuard) Name() string { return "elevated" }

func (elevatedGuard) Check(s Session, _ string) Decision {
	if s.HasElevatedRole() {
		return Allow()
	}
	return Decision{RedirectTo: LandingPath, Notice: AccessDeniedNotice}
}

// LoginRedirect builds the login path that returns to target after a successful login.
func LoginRedirect(target string) string {
	return LoginPath + "?returnUrl=" + url.QueryEscape(target)
}

// ReturnURL extracts a safe post-login destination from a login path, falling back to
// the landing page. Only local paths are accepted.
func ReturnURL(loginPath string) string {
	u, err := url.Parse(loginPath)
	if err != nil {
		return LandingPath
	}
	dest := u.Query().Get("returnUrl")
	if dest == "" || dest[0] != '/' || (len(dest) > 1 && (dest[1] == '/' || dest[1] == '\\')) {
		return LandingPath
	}
	return dest
}

// Evaluate runs guards in order; the first refusal wins so later guards never see a
// session an earlier one rejected.
func Evaluate(s Session, target string, guards ...Guard) (Decision, Guard) {
	for _, guard := range guards {
		if decision := guard.Check(s, target); !decision.Allowed {
			return decision, guard
		}
	}
	return Allow(), nil
}
