package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Gortyum/feriadigital/internal/reservations"
	"github.com/Gortyum/feriadigital/internal/stalls"
	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reservationFixture struct {
	conn    *gorm.DB
	svc     reservations.Service
	buyer   *models.User
	vendor  *models.User
	product *models.Product
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	conn := newControllerDB(t)

	buyer := &models.User{ID: uuid.New(), RUT: "11111111-1", Name: "María", Role: enums.UserRoleBuyer}
	require.NoError(t, conn.Create(buyer).Error)
	vendor := &models.User{ID: uuid.New(), RUT: "22222222-2", Name: "Pedro", Role: enums.UserRoleVendor}
	require.NoError(t, conn.Create(vendor).Error)

	fair := &models.Fair{ID: uuid.New(), Name: "Feria Central", Location: strPtr("Calle 1"), City: strPtr("Santiago")}
	require.NoError(t, conn.Create(fair).Error)
	stall := &models.Stall{ID: uuid.New(), FairID: fair.ID, UserID: vendor.ID}
	require.NoError(t, conn.Create(stall).Error)
	product := &models.Product{ID: uuid.New(), StallID: stall.ID, Name: "Paltas", Stock: 10}
	require.NoError(t, conn.Create(product).Error)

	svc, err := reservations.NewService(conn, stalls.NewRepository(conn))
	require.NoError(t, err)

	return &reservationFixture{conn: conn, svc: svc, buyer: buyer, vendor: vendor, product: product}
}

func TestReservationCreateRedirectsWithFlash(t *testing.T) {
	fx := newReservationFixture(t)
	sessions := newFakeSessions()

	form := url.Values{}
	form.Set("producto_id", fx.product.ID.String())
	form.Set("cantidad", "3")
	r := postForm("/reservas", form)
	r = withSession(r, fx.buyer.ID, enums.UserRoleBuyer, fx.buyer.Name, "sid-b")

	rr := doRequest(ReservationCreate(fx.svc, sessions, testLogger()), r)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/mis-reservas", rr.Header().Get("Location"))

	queued := sessions.queuedFor("sid-b")
	require.Len(t, queued, 1)
	assert.Equal(t, session.FlashSuccess, queued[0].Level)
	assert.Equal(t, "Reserva creada exitosamente", queued[0].Message)

	var product models.Product
	require.NoError(t, fx.conn.First(&product, "id = ?", fx.product.ID).Error)
	assert.Equal(t, 7, product.Stock)
}

func TestReservationCreateInsufficientStockFlashesError(t *testing.T) {
	fx := newReservationFixture(t)
	sessions := newFakeSessions()

	form := url.Values{}
	form.Set("producto_id", fx.product.ID.String())
	form.Set("cantidad", "99")
	r := postForm("/reservas", form)
	r = withSession(r, fx.buyer.ID, enums.UserRoleBuyer, fx.buyer.Name, "sid-b")

	rr := doRequest(ReservationCreate(fx.svc, sessions, testLogger()), r)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/buscar", rr.Header().Get("Location"))

	queued := sessions.queuedFor("sid-b")
	require.Len(t, queued, 1)
	assert.Equal(t, session.FlashError, queued[0].Level)
	assert.Equal(t, "Stock insuficiente", queued[0].Message)
}

func TestMyReservationsRendersFlashes(t *testing.T) {
	fx := newReservationFixture(t)
	sessions := newFakeSessions()
	require.NoError(t, sessions.PushFlash(context.Background(), "sid-b", session.FlashSuccess, "Reserva creada exitosamente"))

	r := httptest.NewRequest(http.MethodGet, "/mis-reservas", nil)
	r = withSession(r, fx.buyer.ID, enums.UserRoleBuyer, fx.buyer.Name, "sid-b")

	rr := doRequest(MyReservations(fx.svc, sessions, testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data struct {
			Usuario  string `json:"usuario"`
			Mensajes []struct {
				Level   string `json:"level"`
				Message string `json:"message"`
			} `json:"mensajes"`
			Reservas []json.RawMessage `json:"reservas"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "María", envelope.Data.Usuario)
	require.Len(t, envelope.Data.Mensajes, 1)
	assert.Equal(t, "Reserva creada exitosamente", envelope.Data.Mensajes[0].Message)
	assert.Empty(t, envelope.Data.Reservas)

	// one-shot: a second render has no messages
	rr = doRequest(MyReservations(fx.svc, sessions, testLogger()), r)
	require.Equal(t, http.StatusOK, rr.Code)
	var second struct {
		Data struct {
			Mensajes []json.RawMessage `json:"mensajes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	assert.Empty(t, second.Data.Mensajes)
}

func TestReservationCompleteByVendor(t *testing.T) {
	fx := newReservationFixture(t)
	sessions := newFakeSessions()

	dto, err := fx.svc.Create(context.Background(), fx.buyer.ID, reservations.CreateReservationInput{ProductID: fx.product.ID, Quantity: 2})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/reservas-recibidas/"+dto.ID.String()+"/procesar", nil)
	r = withSession(r, fx.vendor.ID, enums.UserRoleVendor, fx.vendor.Name, "sid-v")
	r = withURLParam(r, "reservationID", dto.ID.String())

	rr := doRequest(ReservationComplete(fx.svc, sessions, testLogger()), r)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/reservas-recibidas", rr.Header().Get("Location"))

	var product models.Product
	require.NoError(t, fx.conn.First(&product, "id = ?", fx.product.ID).Error)
	assert.Equal(t, 8, product.Stock)
}
