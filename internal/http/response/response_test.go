package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	resp := Error("cannot load cars")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "cannot load cars", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Username string `validate:"required,min=3"`
		Fullname string `validate:"required"`
	}

	v := validator.New()
	err := v.Struct(payload{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Fullname is a required field")
}

func TestValidationError_MinTag(t *testing.T) {
	type payload struct {
		Username string `validate:"min=3"`
	}

	v := validator.New()
	err := v.Struct(payload{Username: "ab"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field Username is too short")
}
