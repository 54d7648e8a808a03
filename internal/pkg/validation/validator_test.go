package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Init()
}

func TestValidate(t *testing.T) {
	type input struct {
		Endpoint string `validate:"required,url"`
		Level    string `validate:"omitempty,oneof=debug info warn error"`
	}

	t.Run("valid struct passes", func(t *testing.T) {
		err := Validate(input{Endpoint: "https://rpc.example.com", Level: "info"})
		assert.NoError(t, err)
	})

	t.Run("missing required field fails with ErrValidation", func(t *testing.T) {
		err := Validate(input{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("invalid enum value fails", func(t *testing.T) {
		err := Validate(input{Endpoint: "https://rpc.example.com", Level: "loud"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
