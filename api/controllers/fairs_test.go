package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gortyum/feriadigital/internal/fairs"
	"github.com/Gortyum/feriadigital/pkg/config"
	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/weather"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixedForecast struct {
	snap *weather.Snapshot
}

func (f fixedForecast) CurrentByCity(_ context.Context, _ string) (*weather.Snapshot, error) {
	return f.snap, nil
}

func seedFair(t *testing.T, conn *gorm.DB, city *string) *models.Fair {
	t.Helper()
	fair := &models.Fair{ID: uuid.New(), Name: "Feria Central", Location: strPtr("Calle 1"), City: city}
	require.NoError(t, conn.Create(fair).Error)
	return fair
}

func strPtr(s string) *string { return &s }

func TestFairsListAnnotatesWeather(t *testing.T) {
	conn := newControllerDB(t)
	svc := fairs.NewService(fairs.NewRepository(conn))
	seedFair(t, conn, strPtr("Santiago"))

	forecast := weather.NewService(fixedForecast{snap: &weather.Snapshot{City: "Santiago", Temperature: 22.0}}, nil, nil, nil, config.WeatherConfig{})

	r := httptest.NewRequest(http.MethodGet, "/ferias", nil)
	r = withSession(r, newFakeUserID(), enums.UserRoleBuyer, "María", "sid-1")

	rr := doRequest(FairsList(svc, forecast, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data struct {
			Usuario string `json:"usuario"`
			Ferias  []struct {
				Feria struct {
					Nombre string `json:"nombre"`
					Ciudad string `json:"ciudad"`
				} `json:"feria"`
				Clima *struct {
					Ciudad      string  `json:"ciudad"`
					Temperatura float64 `json:"temperatura"`
				} `json:"clima"`
			} `json:"ferias"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "María", envelope.Data.Usuario)
	require.Len(t, envelope.Data.Ferias, 1)
	assert.Equal(t, "Feria Central", envelope.Data.Ferias[0].Feria.Nombre)
	require.NotNil(t, envelope.Data.Ferias[0].Clima)
	assert.Equal(t, "Santiago", envelope.Data.Ferias[0].Clima.Ciudad)
	assert.InDelta(t, 22.0, envelope.Data.Ferias[0].Clima.Temperatura, 0.001)
}

func TestFairsListWithoutCitySkipsWeather(t *testing.T) {
	conn := newControllerDB(t)
	svc := fairs.NewService(fairs.NewRepository(conn))
	seedFair(t, conn, nil)

	r := httptest.NewRequest(http.MethodGet, "/ferias", nil)
	r = withSession(r, newFakeUserID(), enums.UserRoleBuyer, "María", "sid-1")

	rr := doRequest(FairsList(svc, nil, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "\"clima\"")
}

func TestFairDetailIncludesWeather(t *testing.T) {
	conn := newControllerDB(t)
	svc := fairs.NewService(fairs.NewRepository(conn))
	fair := seedFair(t, conn, strPtr("Valparaíso"))

	forecast := weather.NewService(fixedForecast{snap: &weather.Snapshot{City: "Valparaíso", Temperature: 17.5}}, nil, nil, nil, config.WeatherConfig{})

	r := httptest.NewRequest(http.MethodGet, "/ferias/"+fair.ID.String(), nil)
	r = withSession(r, newFakeUserID(), enums.UserRoleBuyer, "María", "sid-1")
	r = withURLParam(r, "fairID", fair.ID.String())

	rr := doRequest(FairDetail(svc, forecast, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data struct {
			Feria struct {
				Nombre string `json:"nombre"`
			} `json:"feria"`
			Clima *struct {
				Ciudad      string  `json:"ciudad"`
				Temperatura float64 `json:"temperatura"`
			} `json:"clima"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "Feria Central", envelope.Data.Feria.Nombre)
	require.NotNil(t, envelope.Data.Clima)
	assert.Equal(t, "Valparaíso", envelope.Data.Clima.Ciudad)
	assert.InDelta(t, 17.5, envelope.Data.Clima.Temperatura, 0.001)
}

func TestFairDetailWithoutCitySkipsWeather(t *testing.T) {
	conn := newControllerDB(t)
	svc := fairs.NewService(fairs.NewRepository(conn))
	fair := seedFair(t, conn, nil)

	r := httptest.NewRequest(http.MethodGet, "/ferias/"+fair.ID.String(), nil)
	r = withSession(r, newFakeUserID(), enums.UserRoleBuyer, "María", "sid-1")
	r = withURLParam(r, "fairID", fair.ID.String())

	rr := doRequest(FairDetail(svc, nil, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "\"clima\"")
}

func TestFairDetailUnknownFair(t *testing.T) {
	conn := newControllerDB(t)
	svc := fairs.NewService(fairs.NewRepository(conn))

	r := httptest.NewRequest(http.MethodGet, "/ferias/"+uuid.NewString(), nil)
	r = withURLParam(r, "fairID", uuid.NewString())

	rr := doRequest(FairDetail(svc, nil, newFakeSessions(), testLogger()), r)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "La feria no existe")
}
