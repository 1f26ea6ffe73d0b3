package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string   `json:"title" validate:"required,min=2"`
	Price *float64 `json:"price" validate:"required"`
	Email string   `form:"email" validate:"omitempty,email"`
	Role  string   `form:"role" validate:"omitempty,role"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetails_ValidationErrors(t *testing.T) {
	v := newValidator()

	err := v.Struct(sample{Title: "a", Email: "nope", Role: "root"})
	require.Error(t, err)

	details := ToDetails(err)
	byField := map[string]FieldError{}
	for _, d := range details {
		byField[d.Field] = d
	}

	require.Len(t, details, 4)
	assert.Equal(t, "title must be at least 2 characters long", byField["title"].Message)
	assert.Equal(t, "a", byField["title"].Value)
	assert.Equal(t, "price is required", byField["price"].Message)
	assert.Equal(t, "email must be a valid email", byField["email"].Message)
	assert.Equal(t, "role must be one of: default, admin, manager", byField["role"].Message)
}

func TestToDetails_ValidStruct(t *testing.T) {
	v := newValidator()
	price := 10.5

	assert.NoError(t, v.Struct(sample{Title: "Go", Price: &price, Email: "a@x.com", Role: "manager"}))
	assert.Nil(t, ToDetails(nil))
}

func TestToDetails_JSONErrors(t *testing.T) {
	var out struct {
		Price float64 `json:"price"`
	}

	err := json.Unmarshal([]byte(`{"price":"free"}`), &out)
	details := ToDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "price", details[0].Field)
	assert.Equal(t, "type", details[0].Tag)

	err = json.Unmarshal([]byte(`{"price":`), &out)
	details = ToDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "payload", details[0].Field)
}

func TestToDetails_Fallback(t *testing.T) {
	details := ToDetails(errors.New("something odd"))

	require.Len(t, details, 1)
	assert.Equal(t, "invalid payload", details[0].Message)
}
