package gate

import (
	"context"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/emberworks/studio-portal/internal/auth"
	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/observability"
	"github.com/emberworks/studio-portal/pkg/util"
)

// Redirect targets used by the pipeline.
const (
	LoginPath        = "/login"
	MaintenancePath  = "/maintenance"
	UnauthorizedPath = "/unauthorized"
)

// Gate decision labels for metrics.
const (
	DecisionProceed             = "proceed"
	DecisionRedirectMaintenance = "redirect_maintenance"
	DecisionRedirectLogin       = "redirect_login"
	DecisionRedirectForbidden   = "redirect_unauthorized"
	DecisionReject              = "reject"
)

const claimsKey = "session_claims"

// SettingsReader fetches the site settings singleton. The gate reads it per
// request and never caches the value across requests.
type SettingsReader interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
}

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, bool)
}

// Gate is the per-request authorization pipeline. Every inbound request
// passes through it before reaching any handler; authentication and
// authorization failures are resolved here and never reach handler code.
type Gate struct {
	settings    SettingsReader
	tokens      TokenVerifier
	cookieName  string
	permissions map[string]string
	prefixes    []string
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// DefaultPagePermissions maps protected admin sub-paths to the permission
// they require. Paths without an entry pass once authenticated.
func DefaultPagePermissions() map[string]string {
	return map[string]string{
		"/admin/users": domain.PermManageUsers,
	}
}

// New builds the gate.
func New(settings SettingsReader, tokens TokenVerifier, cookieName string, pagePermissions map[string]string, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	if pagePermissions == nil {
		pagePermissions = DefaultPagePermissions()
	}
	prefixes := make([]string, 0, len(pagePermissions))
	for prefix := range pagePermissions {
		prefixes = append(prefixes, prefix)
	}
	// longest prefix wins when entries nest
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	return &Gate{
		settings:    settings,
		tokens:      tokens,
		cookieName:  cookieName,
		permissions: pagePermissions,
		prefixes:    prefixes,
		logger:      logger,
		metrics:     metrics,
	}
}

// Handle evaluates the fixed decision pipeline once per request.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()

	// Maintenance check fails open: an unreachable settings store must not
	// lock everyone out.
	settings, err := g.settings.Get(c.UserContext())
	if err != nil {
		g.logger.Warn("site settings unavailable; skipping maintenance check", zap.Error(err))
	} else if settings.MaintenanceMode && !MaintenanceExempt(path) {
		g.metrics.RecordGateDecision(DecisionRedirectMaintenance)
		return c.Redirect(MaintenancePath, fiber.StatusFound)
	}

	switch Classify(c.Method(), path) {
	case PrivilegedWrite:
		// API clients get a machine-readable rejection, never a redirect.
		claims, ok := g.verifySession(c)
		if !ok {
			g.metrics.RecordGateDecision(DecisionReject)
			return util.NewTokenInvalid("missing or invalid session token")
		}
		c.Locals(claimsKey, claims)

	case ProtectedPage:
		claims, ok := g.verifySession(c)
		if !ok {
			g.metrics.RecordGateDecision(DecisionRedirectLogin)
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		if required, found := g.requiredPermission(path); found && !claims.HasPermission(required) {
			g.metrics.RecordGateDecision(DecisionRedirectForbidden)
			return c.Redirect(UnauthorizedPath, fiber.StatusFound)
		}
		c.Locals(claimsKey, claims)
	}

	g.metrics.RecordGateDecision(DecisionProceed)
	return c.Next()
}

// verifySession re-verifies the cookie token on every request; there is no
// verification cache, so a dependency failure can never read as
// "authenticated".
func (g *Gate) verifySession(c *fiber.Ctx) (*auth.Claims, bool) {
	token := c.Cookies(g.cookieName)
	if token == "" {
		return nil, false
	}
	return g.tokens.Verify(token)
}

func (g *Gate) requiredPermission(path string) (string, bool) {
	for _, prefix := range g.prefixes {
		if strings.HasPrefix(path, prefix) {
			return g.permissions[prefix], true
		}
	}
	return "", false
}

// ClaimsFromContext retrieves the verified session claims the gate stored
// for the current request.
func ClaimsFromContext(c *fiber.Ctx) (*auth.Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
