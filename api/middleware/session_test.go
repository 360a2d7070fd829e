package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	rec       *session.Record
	sessionID string
	err       error
	gotToken  string
}

func (f *fakeLookup) Lookup(_ context.Context, token string) (*session.Record, string, error) {
	f.gotToken = token
	if f.err != nil {
		return nil, "", f.err
	}
	return f.rec, f.sessionID, nil
}

func (f *fakeLookup) CookieName() string { return "feria_session" }

func TestSessionSeedsContextFromCookie(t *testing.T) {
	userID := uuid.New()
	lookup := &fakeLookup{
		rec:       &session.Record{UserID: userID, Role: enums.UserRoleVendor, Name: "Pedro"},
		sessionID: "sid-1",
	}

	var gotUser uuid.UUID
	var gotRole enums.UserRole
	var gotName, gotSession string
	handler := Session(lookup, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotName = UserNameFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/mis-reservas", nil)
	r.AddCookie(&http.Cookie{Name: "feria_session", Value: "tok-abc"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-abc", lookup.gotToken)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, enums.UserRoleVendor, gotRole)
	assert.Equal(t, "Pedro", gotName)
	assert.Equal(t, "sid-1", gotSession)
}

func TestSessionAcceptsBearerToken(t *testing.T) {
	lookup := &fakeLookup{
		rec:       &session.Record{UserID: uuid.New(), Role: enums.UserRoleBuyer, Name: "Ana"},
		sessionID: "sid-2",
	}
	handler := Session(lookup, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest("GET", "/mis-reservas", nil)
	r.Header.Set("Authorization", "Bearer tok-xyz")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-xyz", lookup.gotToken)
}

func TestSessionRejectsMissingToken(t *testing.T) {
	handler := Session(&fakeLookup{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	r := httptest.NewRequest("GET", "/mis-reservas", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRejectsStaleToken(t *testing.T) {
	lookup := &fakeLookup{err: session.ErrNoSession}
	handler := Session(lookup, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	r := httptest.NewRequest("GET", "/mis-reservas", nil)
	r.AddCookie(&http.Cookie{Name: "feria_session", Value: "stale"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleBlocksOtherRole(t *testing.T) {
	handler := RequireRole(enums.UserRoleVendor, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	ctx := WithSessionContext(context.Background(), uuid.New(), enums.UserRoleBuyer, "Ana", "sid")
	r := httptest.NewRequest("GET", "/mi-puesto", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	called := false
	handler := RequireRole(enums.UserRoleVendor, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	ctx := WithSessionContext(context.Background(), uuid.New(), enums.UserRoleVendor, "Pedro", "sid")
	r := httptest.NewRequest("GET", "/mi-puesto", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}
