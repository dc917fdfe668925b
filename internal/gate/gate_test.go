package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberworks/studio-portal/internal/auth"
	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/pkg/util"
)

const testCookieName = "auth-token"

type stubSettings struct {
	maintenance bool
	err         error
}

func (s *stubSettings) Get(ctx context.Context) (domain.SiteSettings, error) {
	if s.err != nil {
		return domain.SiteSettings{}, s.err
	}
	return domain.SiteSettings{ID: domain.SettingsID, MaintenanceMode: s.maintenance}, nil
}

type stubVerifier struct {
	claims *auth.Claims
}

func (v *stubVerifier) Verify(token string) (*auth.Claims, bool) {
	if v.claims == nil || token != "good" {
		return nil, false
	}
	return v.claims, true
}

func newTestApp(t *testing.T, settings *stubSettings, verifier *stubVerifier) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := util.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	g := New(settings, verifier, testCookieName, nil, zap.NewNop(), nil)
	app.Use(g.Handle)
	app.All("/*", func(c *fiber.Ctx) error {
		if claims, ok := ClaimsFromContext(c); ok {
			return c.SendString("hello " + claims.UserID)
		}
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMaintenanceRedirectsPublicTraffic(t *testing.T) {
	app := newTestApp(t, &stubSettings{maintenance: true}, &stubVerifier{})

	resp := doRequest(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, MaintenancePath, resp.Header.Get("Location"))
}

func TestMaintenanceExemptPathsStayReachable(t *testing.T) {
	admin := &auth.Claims{UserID: "u1", Role: "Admin", Permissions: []string{domain.PermManageUsers}}
	app := newTestApp(t, &stubSettings{maintenance: true}, &stubVerifier{claims: admin})

	resp := doRequest(t, app, http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/admin", "good")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMaintenanceCheckFailsOpen(t *testing.T) {
	app := newTestApp(t, &stubSettings{err: errors.New("store down")}, &stubVerifier{})

	resp := doRequest(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteWithoutSessionIsRejectedNotRedirected(t *testing.T) {
	app := newTestApp(t, &stubSettings{}, &stubVerifier{})

	resp := doRequest(t, app, http.MethodPost, "/api/tickets", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestWriteWithBadTokenIsRejected(t *testing.T) {
	admin := &auth.Claims{UserID: "u1", Role: "Admin"}
	app := newTestApp(t, &stubSettings{}, &stubVerifier{claims: admin})

	resp := doRequest(t, app, http.MethodPost, "/api/tickets", "tampered")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWriteWithSessionProceeds(t *testing.T) {
	admin := &auth.Claims{UserID: "u1", Role: "Admin"}
	app := newTestApp(t, &stubSettings{}, &stubVerifier{claims: admin})

	resp := doRequest(t, app, http.MethodPost, "/api/tickets", "good")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedPageWithoutSessionRedirectsToLogin(t *testing.T) {
	app := newTestApp(t, &stubSettings{}, &stubVerifier{})

	resp := doRequest(t, app, http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}

func TestProtectedPageMissingPermissionRedirectsToUnauthorized(t *testing.T) {
	user := &auth.Claims{UserID: "u2", Role: "User", Permissions: []string{}}
	app := newTestApp(t, &stubSettings{}, &stubVerifier{claims: user})

	resp := doRequest(t, app, http.MethodGet, "/admin/users", "good")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, UnauthorizedPath, resp.Header.Get("Location"))
}

func TestProtectedPageWithPermissionProceeds(t *testing.T) {
	admin := &auth.Claims{UserID: "u1", Role: "Admin", Permissions: []string{domain.PermManageUsers}}
	app := newTestApp(t, &stubSettings{}, &stubVerifier{claims: admin})

	resp := doRequest(t, app, http.MethodGet, "/admin/users", "good")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnmappedProtectedPageNeedsOnlyASession(t *testing.T) {
	user := &auth.Claims{UserID: "u2", Role: "User", Permissions: []string{}}
	app := newTestApp(t, &stubSettings{}, &stubVerifier{claims: user})

	resp := doRequest(t, app, http.MethodGet, "/dashboard", "good")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicReadNeverTouchesAuth(t *testing.T) {
	app := newTestApp(t, &stubSettings{}, &stubVerifier{})

	resp := doRequest(t, app, http.MethodGet, "/api/tickets", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
