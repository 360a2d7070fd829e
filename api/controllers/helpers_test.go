package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeSessions struct {
	mu      sync.Mutex
	records map[string]session.Record
	flashes map[string][]session.Flash
	flushed []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		records: map[string]session.Record{},
		flashes: map[string][]session.Flash{},
	}
}

func (f *fakeSessions) Create(_ context.Context, rec session.Record) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := "token-" + uuid.NewString()
	f.records[token] = rec
	return token, "sid-" + token, nil
}

func (f *fakeSessions) Lookup(_ context.Context, token string) (*session.Record, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[token]
	if !ok {
		return nil, "", session.ErrNoSession
	}
	return &rec, "sid-" + token, nil
}

func (f *fakeSessions) Refresh(_ context.Context, _ string, _ session.Record) error { return nil }

func (f *fakeSessions) Flush(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushed = append(f.flushed, sessionID)
	return nil
}

func (f *fakeSessions) PushFlash(_ context.Context, sessionID string, level session.FlashLevel, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flashes[sessionID] = append(f.flashes[sessionID], session.Flash{Level: level, Message: message})
	return nil
}

func (f *fakeSessions) PopFlashes(_ context.Context, sessionID string) ([]session.Flash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	queued := f.flashes[sessionID]
	delete(f.flashes, sessionID)
	if queued == nil {
		queued = []session.Flash{}
	}
	return queued, nil
}

func (f *fakeSessions) CookieName() string { return "feria_session" }

func (f *fakeSessions) queuedFor(sessionID string) []session.Flash {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flashes[sessionID]
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}

func newControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:controllers_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Fair{},
		&models.Stall{},
		&models.Category{},
		&models.Product{},
		&models.Reservation{},
		&models.ReservationLine{},
	))
	return conn
}

// withSession seeds the request context the way the session middleware does.
func withSession(r *http.Request, userID uuid.UUID, role enums.UserRole, name, sessionID string) *http.Request {
	ctx := middleware.WithSessionContext(r.Context(), userID, role, name, sessionID)
	return r.WithContext(ctx)
}

func newFakeUserID() uuid.UUID { return uuid.New() }

// withURLParam seeds a chi route parameter the way the router does.
func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func doRequest(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)
	return rr
}
