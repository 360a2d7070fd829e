package validators

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	RUT      string  `json:"rut" validate:"required,rut"`
	Name     string  `json:"nombre" validate:"required"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
}

type reserveForm struct {
	ProductID uuid.UUID `json:"producto_id" validate:"required"`
	Quantity  int       `json:"cantidad" validate:"required,gt=0"`
}

func TestDecodeBodyFromForm(t *testing.T) {
	form := url.Values{}
	form.Set("rut", "12345678-9")
	form.Set("nombre", "Ana Rojas")
	form.Set("email", "ana@example.com")
	form.Set("password", "secreto")

	r := httptest.NewRequest("POST", "/registro", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest registerForm
	require.NoError(t, DecodeBody(r, &dest))
	assert.Equal(t, "12345678-9", dest.RUT)
	assert.Equal(t, "Ana Rojas", dest.Name)
	require.NotNil(t, dest.Email)
	assert.Equal(t, "ana@example.com", *dest.Email)
}

func TestDecodeBodyFromJSON(t *testing.T) {
	body := `{"rut":"1234567-k","nombre":"Pedro","password":"secreto"}`
	r := httptest.NewRequest("POST", "/registro", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	var dest registerForm
	require.NoError(t, DecodeBody(r, &dest))
	assert.Equal(t, "1234567-k", dest.RUT)
	assert.Nil(t, dest.Email)
}

func TestDecodeBodyRejectsBadRUT(t *testing.T) {
	form := url.Values{}
	form.Set("rut", "not-a-rut")
	form.Set("nombre", "Ana")
	form.Set("password", "secreto")

	r := httptest.NewRequest("POST", "/registro", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest registerForm
	err := DecodeBody(r, &dest)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	details, ok := appErr.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "rut")
}

func TestDecodeBodyRejectsShortPassword(t *testing.T) {
	body := `{"rut":"12345678-9","nombre":"Ana","password":"abc"}`
	r := httptest.NewRequest("POST", "/registro", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	var dest registerForm
	err := DecodeBody(r, &dest)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDecodeBodyParsesUUIDAndInt(t *testing.T) {
	id := uuid.New()
	form := url.Values{}
	form.Set("producto_id", id.String())
	form.Set("cantidad", "3")

	r := httptest.NewRequest("POST", "/reservas", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest reserveForm
	require.NoError(t, DecodeBody(r, &dest))
	assert.Equal(t, id, dest.ProductID)
	assert.Equal(t, 3, dest.Quantity)
}

func TestDecodeBodyRejectsNonNumericQuantity(t *testing.T) {
	form := url.Values{}
	form.Set("producto_id", uuid.NewString())
	form.Set("cantidad", "muchos")

	r := httptest.NewRequest("POST", "/reservas", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest reserveForm
	err := DecodeBody(r, &dest)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hola", SanitizeString("  hola  ", 10))
	assert.Equal(t, "ho", SanitizeString("hola", 2))
}
