package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("db went away")
	err := Wrap(CodeDependency, cause, "load fair")

	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, "load fair", err.Message())
	assert.ErrorIs(t, err, cause)
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeNotFound, "puesto no encontrado")
	wrapped := fmt.Errorf("outer: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Stock insuficiente", PublicMessage(New(CodeConflict, "Stock insuficiente")))
	assert.Equal(t, "Error interno", PublicMessage(fmt.Errorf("raw failure")))
	assert.Equal(t, "Error interno", PublicMessage(New(CodeInternal, "secret detail")))
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeConflict, fmt.Errorf("duplicate key value"), "create user")
	dump := Dump(err)
	assert.Equal(t, CodeConflict, dump.Code)
	assert.Len(t, dump.Chain, 2)
}
