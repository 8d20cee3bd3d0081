package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,password"`
	FullName   string `validate:"omitempty,alphaspace"`
	NationalID string `json:"-"`
}

func TestValidate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(sample{Email: "a@x.com", Password: "longenough", FullName: "Ana Maria"}))

	err = v.Validate(sample{Email: "nope", Password: "short", FullName: "R2D2"})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)

	assert.Equal(t, "email must be a valid email address", ve.Values()["email"])
	assert.Equal(t, "password must be 8-72 characters", ve.Values()["password"])
	assert.Equal(t, "full_name can contain only letters and spaces", ve.Values()["full_name"])
	assert.Len(t, ve, 3)
}

func TestNewV10Validator(t *testing.T) {
	t.Run("BuildsWithDefaultTranslations", func(t *testing.T) {
		// Act
		v, err := NewV10Validator()

		// Assert
		require.NoError(t, err)
		require.NotNil(t, v)
	})

	t.Run("AlphaSpaceAcceptsAnyScript", func(t *testing.T) {
		v, err := NewV10Validator()
		require.NoError(t, err)

		for _, name := range []string{"José Álvarez", "Nguyễn Văn An", "Budi Santoso"} {
			assert.NoError(t, v.Validate(sample{Email: "a@x.com", Password: "longenough", FullName: name}), name)
		}
	})

	t.Run("AlphaSpaceMessageOverridesDefault", func(t *testing.T) {
		v, err := NewV10Validator()
		require.NoError(t, err)

		err = v.Validate(sample{Email: "a@x.com", Password: "longenough", FullName: "Ana_Maria"})
		var ve ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, ValidationError{"full_name": "full_name can contain only letters and spaces"}, ve)
	})
}

func TestValidateRequired(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate(sample{})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email is a required field", ve["email"])
	assert.Contains(t, ve.Error(), "password")
}
