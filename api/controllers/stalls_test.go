package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Gortyum/feriadigital/internal/fairs"
	"github.com/Gortyum/feriadigital/internal/stalls"
	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stallFixture struct {
	conn   *gorm.DB
	svc    stalls.Service
	vendor *models.User
	fair   *models.Fair
}

func newStallFixture(t *testing.T) *stallFixture {
	t.Helper()
	conn := newControllerDB(t)

	vendor := &models.User{ID: uuid.New(), RUT: "22222222-2", Name: "Pedro", Role: enums.UserRoleVendor}
	require.NoError(t, conn.Create(vendor).Error)
	fair := &models.Fair{ID: uuid.New(), Name: "Feria Central"}
	require.NoError(t, conn.Create(fair).Error)

	svc, err := stalls.NewService(stalls.NewRepository(conn), fairs.NewRepository(conn))
	require.NoError(t, err)

	return &stallFixture{conn: conn, svc: svc, vendor: vendor, fair: fair}
}

func TestMyStallsEmptyRendersEmptyList(t *testing.T) {
	fx := newStallFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/mi-puesto", nil)
	r = withSession(r, fx.vendor.ID, enums.UserRoleVendor, fx.vendor.Name, "sid-v")

	rr := doRequest(MyStalls(fx.svc, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data struct {
			Puestos []json.RawMessage `json:"puestos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Puestos)
}

func TestMyStallsListsEveryStall(t *testing.T) {
	fx := newStallFixture(t)

	otherFair := &models.Fair{ID: uuid.New(), Name: "Feria Sur"}
	require.NoError(t, fx.conn.Create(otherFair).Error)
	for _, fairID := range []uuid.UUID{fx.fair.ID, otherFair.ID} {
		stall := &models.Stall{ID: uuid.New(), FairID: fairID, UserID: fx.vendor.ID}
		require.NoError(t, fx.conn.Create(stall).Error)
	}

	r := httptest.NewRequest(http.MethodGet, "/mi-puesto", nil)
	r = withSession(r, fx.vendor.ID, enums.UserRoleVendor, fx.vendor.Name, "sid-v")

	rr := doRequest(MyStalls(fx.svc, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data struct {
			Puestos []struct {
				Feria string `json:"feria"`
			} `json:"puestos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Puestos, 2)
}

func TestMyStallUpdateAddressesStallByID(t *testing.T) {
	fx := newStallFixture(t)
	sessions := newFakeSessions()

	stall := &models.Stall{ID: uuid.New(), FairID: fx.fair.ID, UserID: fx.vendor.ID}
	require.NoError(t, fx.conn.Create(stall).Error)
	target := &models.Fair{ID: uuid.New(), Name: "Feria Sur"}
	require.NoError(t, fx.conn.Create(target).Error)

	form := url.Values{}
	form.Set("feria_id", target.ID.String())
	r := postForm("/mi-puesto/"+stall.ID.String()+"/editar", form)
	r = withSession(r, fx.vendor.ID, enums.UserRoleVendor, fx.vendor.Name, "sid-v")
	r = withURLParam(r, "stallID", stall.ID.String())

	rr := doRequest(MyStallUpdate(fx.svc, sessions, testLogger()), r)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/mi-puesto", rr.Header().Get("Location"))

	var moved models.Stall
	require.NoError(t, fx.conn.First(&moved, "id = ?", stall.ID).Error)
	assert.Equal(t, target.ID, moved.FairID)
}

func TestMyStallDeleteByIntruderFlashesDenial(t *testing.T) {
	fx := newStallFixture(t)
	sessions := newFakeSessions()

	stall := &models.Stall{ID: uuid.New(), FairID: fx.fair.ID, UserID: fx.vendor.ID}
	require.NoError(t, fx.conn.Create(stall).Error)

	intruder := &models.User{ID: uuid.New(), RUT: "33333333-3", Name: "Otro", Role: enums.UserRoleVendor}
	require.NoError(t, fx.conn.Create(intruder).Error)

	r := httptest.NewRequest(http.MethodPost, "/mi-puesto/"+stall.ID.String()+"/eliminar", nil)
	r = withSession(r, intruder.ID, enums.UserRoleVendor, intruder.Name, "sid-i")
	r = withURLParam(r, "stallID", stall.ID.String())

	rr := doRequest(MyStallDelete(fx.svc, sessions, testLogger()), r)

	require.Equal(t, http.StatusSeeOther, rr.Code)

	queued := sessions.queuedFor("sid-i")
	require.Len(t, queued, 1)
	assert.Equal(t, session.FlashError, queued[0].Level)
	assert.Equal(t, "Acceso denegado", queued[0].Message)

	var count int64
	require.NoError(t, fx.conn.Model(&models.Stall{}).Where("id = ?", stall.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
