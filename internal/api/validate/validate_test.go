package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerDTO struct {
	Name      string `validate:"required,min=2"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	Role      string `validate:"required,role"`
	StudentID string `validate:"omitempty,studentid"`
}

func TestStructOK(t *testing.T) {
	t.Parallel()

	err := Struct(registerDTO{
		Name: "Ada", Email: "a@uni.edu", Password: "secret1",
		Role: "researcher", StudentID: "EC/2020/012",
	})
	assert.NoError(t, err)
}

func TestStructFieldErrors(t *testing.T) {
	t.Parallel()

	err := Struct(registerDTO{Name: "A", Email: "nope", Password: "pw", Role: "admin", StudentID: "EC-1"})
	require.Error(t, err)

	errs, ok := err.(Errs)
	require.True(t, ok)

	byField := map[string]string{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Msg
	}
	assert.Equal(t, "must be at least 2 characters", byField["name"])
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at least 6 characters", byField["password"])
	assert.Equal(t, "must be user or researcher", byField["role"])
	assert.Equal(t, "must be in EC/YYYY/XXX format", byField["studentid"])
	assert.NotEmpty(t, errs.Error())
}
