package products

import (
	"context"
	"testing"
	"time"

	"github.com/Gortyum/feriadigital/internal/stalls"
	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/Gortyum/feriadigital/pkg/enums"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	conn   *gorm.DB
	svc    Service
	vendor *models.User
	fair   *models.Fair
	stall  *models.Stall
}

func strPtr(s string) *string { return &s }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Fair{}, &models.Stall{},
		&models.Category{}, &models.Product{}, &models.Reservation{},
	))

	vendor := &models.User{
		ID: uuid.New(), RUT: "11111111-1", Name: "Pedro", StallName: strPtr("Frutas Pedro"),
		Role: enums.UserRoleVendor, PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(vendor).Error)

	fair := &models.Fair{ID: uuid.New(), Name: "Feria Modelo", City: strPtr("Talca")}
	require.NoError(t, conn.Create(fair).Error)

	stall := &models.Stall{ID: uuid.New(), FairID: fair.ID, UserID: vendor.ID}
	require.NoError(t, conn.Create(stall).Error)

	svc, err := NewService(NewRepository(conn), stalls.NewRepository(conn))
	require.NoError(t, err)
	return &testEnv{conn: conn, svc: svc, vendor: vendor, fair: fair, stall: stall}
}

func (e *testEnv) mustCreateCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.New(), Name: name}
	require.NoError(t, e.conn.Create(category).Error)
	return category
}

func TestCreateListAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCreateCategory(t, "Frutas")

	created, err := env.svc.Create(ctx, env.vendor.ID, CreateProductInput{
		StallID: env.stall.ID, Name: "Paltas", Stock: 50, CategoryID: &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paltas", created.Name)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Frutas", *created.Category)
	assert.Equal(t, "Feria Modelo", created.FairName)

	mine, err := env.svc.ListMine(ctx, env.vendor.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	updated, err := env.svc.Update(ctx, env.vendor.ID, created.ID, UpdateProductInput{Name: "Paltas Hass", Stock: 40})
	require.NoError(t, err)
	assert.Equal(t, "Paltas Hass", updated.Name)
	assert.Equal(t, 40, updated.Stock)
	assert.Nil(t, updated.Category)
}

func TestCreateRejectsUnknownStall(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.vendor.ID, CreateProductInput{StallID: uuid.New(), Name: "Paltas", Stock: 1})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateRejectsForeignStall(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), uuid.New(), CreateProductInput{StallID: env.stall.ID, Name: "Paltas", Stock: 1})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	ghost := uuid.New()

	_, err := env.svc.Create(context.Background(), env.vendor.ID, CreateProductInput{
		StallID: env.stall.ID, Name: "Paltas", Stock: 1, CategoryID: &ghost,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Equal(t, "La categoría no existe", appErr.Message())
}

func TestListMineSpansAllStalls(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	secondStall := &models.Stall{ID: uuid.New(), FairID: env.fair.ID, UserID: env.vendor.ID}
	require.NoError(t, env.conn.Create(secondStall).Error)

	_, err := env.svc.Create(ctx, env.vendor.ID, CreateProductInput{StallID: env.stall.ID, Name: "Paltas", Stock: 5})
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, env.vendor.ID, CreateProductInput{StallID: secondStall.ID, Name: "Tomates", Stock: 8})
	require.NoError(t, err)

	mine, err := env.svc.ListMine(ctx, env.vendor.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Paltas", mine[0].Name)
	assert.Equal(t, "Tomates", mine[1].Name)
}

func TestUpdateRejectsForeignProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	other := &models.User{
		ID: uuid.New(), RUT: "22222222-2", Name: "Marta", StallName: strPtr("Verduras Marta"),
		Role: enums.UserRoleVendor, PasswordHash: "hash",
	}
	require.NoError(t, env.conn.Create(other).Error)
	otherStall := &models.Stall{ID: uuid.New(), FairID: env.fair.ID, UserID: other.ID}
	require.NoError(t, env.conn.Create(otherStall).Error)
	foreign := &models.Product{ID: uuid.New(), StallID: otherStall.ID, Name: "Lechugas", Stock: 5}
	require.NoError(t, env.conn.Create(foreign).Error)

	_, err := env.svc.Update(ctx, env.vendor.ID, foreign.ID, UpdateProductInput{Name: "Lechugas", Stock: 10})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestDeleteGuardedByReservations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, env.vendor.ID, CreateProductInput{StallID: env.stall.ID, Name: "Tomates", Stock: 30})
	require.NoError(t, err)

	productID := created.ID
	require.NoError(t, env.conn.Create(&models.Reservation{
		ID: uuid.New(), UserID: env.vendor.ID, ProductID: &productID, Quantity: 2, ReservedOn: time.Now(),
	}).Error)

	err = env.svc.Delete(ctx, env.vendor.ID, created.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())

	require.NoError(t, env.conn.Delete(&models.Reservation{}, "product_id = ?", created.ID).Error)
	require.NoError(t, env.svc.Delete(ctx, env.vendor.ID, created.ID))
}

func TestSearchFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	frutas := env.mustCreateCategory(t, "Frutas")
	verduras := env.mustCreateCategory(t, "Verduras")

	_, err := env.svc.Create(ctx, env.vendor.ID, CreateProductInput{StallID: env.stall.ID, Name: "Paltas Hass", Stock: 50, CategoryID: &frutas.ID})
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, env.vendor.ID, CreateProductInput{StallID: env.stall.ID, Name: "Tomates", Stock: 30, CategoryID: &verduras.ID})
	require.NoError(t, err)

	byName, err := env.svc.Search(ctx, SearchInput{Query: "palta"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Paltas Hass", byName[0].Name)

	byCategory, err := env.svc.Search(ctx, SearchInput{CategoryID: verduras.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Tomates", byCategory[0].Name)

	byFair, err := env.svc.Search(ctx, SearchInput{FairID: env.fair.ID})
	require.NoError(t, err)
	assert.Len(t, byFair, 2)

	none, err := env.svc.Search(ctx, SearchInput{FairID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, none)
}
