package gate

import "strings"

// RouteClass is the single classification every request receives.
type RouteClass int

const (
	// PublicRead requires no authentication.
	PublicRead RouteClass = iota
	// PrivilegedWrite is any non-read API call not explicitly public.
	// Failures here are machine-readable rejections, never redirects.
	PrivilegedWrite
	// ProtectedPage is an administrative or user-dashboard page.
	ProtectedPage
)

func (c RouteClass) String() string {
	switch c {
	case PrivilegedWrite:
		return "privileged_write"
	case ProtectedPage:
		return "protected_page"
	default:
		return "public_read"
	}
}

// publicWritePaths are API mutations reachable without a session.
var publicWritePaths = map[string]struct{}{
	"/api/auth/login":    {},
	"/api/auth/register": {},
}

// protectedPagePrefixes are browser surfaces requiring a session.
var protectedPagePrefixes = []string{"/admin", "/dashboard"}

// maintenanceExemptPrefixes stay reachable while maintenance mode is on:
// administrative surfaces and the login path (page and API forms), plus the
// maintenance page itself.
var maintenanceExemptPrefixes = []string{"/admin", "/login", "/maintenance", "/api/admin", "/api/auth"}

// Classify assigns exactly one class to a request.
func Classify(method, path string) RouteClass {
	if strings.HasPrefix(path, "/api/") {
		if method == "GET" || method == "HEAD" {
			return PublicRead
		}
		if _, ok := publicWritePaths[path]; ok {
			return PublicRead
		}
		return PrivilegedWrite
	}
	for _, prefix := range protectedPagePrefixes {
		if strings.HasPrefix(path, prefix) {
			return ProtectedPage
		}
	}
	return PublicRead
}

// MaintenanceExempt reports whether the path bypasses maintenance mode.
func MaintenanceExempt(path string) bool {
	for _, prefix := range maintenanceExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
