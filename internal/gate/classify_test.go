package gate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   RouteClass
	}{
		{http.MethodGet, "/api/tickets", PublicRead},
		{http.MethodHead, "/api/admin/auditlog", PublicRead},
		{http.MethodPost, "/api/tickets", PrivilegedWrite},
		{http.MethodPut, "/api/admin/settings", PrivilegedWrite},
		{http.MethodDelete, "/api/admin/devlogs/abc", PrivilegedWrite},
		{http.MethodPost, "/api/auth/login", PublicRead},
		{http.MethodPost, "/api/auth/register", PublicRead},
		{http.MethodPost, "/api/auth/logout", PrivilegedWrite},
		{http.MethodGet, "/admin", ProtectedPage},
		{http.MethodGet, "/admin/users", ProtectedPage},
		{http.MethodGet, "/dashboard", ProtectedPage},
		{http.MethodGet, "/", PublicRead},
		{http.MethodGet, "/login", PublicRead},
		{http.MethodGet, "/about", PublicRead},
	}

	for _, tc := range cases {
		got := Classify(tc.method, tc.path)
		assert.Equal(t, tc.want, got, "%s %s", tc.method, tc.path)
	}
}

func TestMaintenanceExempt(t *testing.T) {
	exempt := []string{
		"/admin",
		"/admin/users",
		"/login",
		"/maintenance",
		"/api/admin/settings",
		"/api/auth/login",
	}
	for _, path := range exempt {
		assert.True(t, MaintenanceExempt(path), path)
	}

	blocked := []string{"/", "/dashboard", "/api/tickets", "/about"}
	for _, path := range blocked {
		assert.False(t, MaintenanceExempt(path), path)
	}
}

func TestRouteClassString(t *testing.T) {
	assert.Equal(t, "public_read", PublicRead.String())
	assert.Equal(t, "privileged_write", PrivilegedWrite.String())
	assert.Equal(t, "protected_page", ProtectedPage.String())
}
