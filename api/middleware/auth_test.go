package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arontec/scm-backend/pkg/config"
	"github.com/arontec/scm-backend/pkg/session"
)

type stubChecker struct {
	resolveFn func(ctx context.Context, sessionID string) (*session.Identity, error)
}

func (s *stubChecker) Resolve(ctx context.Context, sessionID string) (*session.Identity, error) {
	return s.resolveFn(ctx, sessionID)
}

func sessionCfg() config.SessionConfig {
	return config.SessionConfig{CookieName: "arontec_session"}
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	handler := Auth(sessionCfg(), &stubChecker{
		resolveFn: func(context.Context, string) (*session.Identity, error) {
			t.Fatal("resolve should not be called")
			return nil, nil
		},
	}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing credentials")
}

func TestAuthRejectsExpiredSession(t *testing.T) {
	handler := Auth(sessionCfg(), &stubChecker{
		resolveFn: func(context.Context, string) (*session.Identity, error) {
			return nil, session.ErrNotFound
		},
	}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "arontec_session", Value: "stale"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session expired")
}

func TestAuthSeedsIdentity(t *testing.T) {
	wantID := "abc-123"
	handler := Auth(sessionCfg(), &stubChecker{
		resolveFn: func(_ context.Context, sessionID string) (*session.Identity, error) {
			assert.Equal(t, wantID, sessionID)
			return &session.Identity{UserID: 7, IsAdmin: true, IsApproved: true}, nil
		},
	}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		require.NotNil(t, identity)
		assert.Equal(t, int64(7), identity.UserID)
		assert.True(t, identity.IsAdmin)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "arontec_session", Value: wantID})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireApprovedBlocksPendingAccounts(t *testing.T) {
	handler := RequireApproved(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req = req.WithContext(WithIdentity(req.Context(), &session.Identity{UserID: 3}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "account pending approval")
}

func TestRequireApprovedAllowsAdmins(t *testing.T) {
	handler := RequireApproved(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req = req.WithContext(WithIdentity(req.Context(), &session.Identity{UserID: 1, IsAdmin: true}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdminBlocksMembers(t *testing.T) {
	handler := RequireAdmin(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/members", nil)
	req = req.WithContext(WithIdentity(req.Context(), &session.Identity{UserID: 5, IsApproved: true}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin access required")
}
