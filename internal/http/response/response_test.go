package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": 1})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestFieldError(t *testing.T) {
	resp := FieldError("Email", "an account with this email already exists")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, map[string]string{
		"Email": "an account with this email already exists",
	}, resp.Fields)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email           string `validate:"required,email,max=256"`
		Password        string `validate:"required,min=6,max=100"`
		ConfirmPassword string `validate:"eqfield=Password"`
		Name            string `validate:"required,max=100"`
	}

	tests := []struct {
		name       string
		input      form
		wantFields map[string]string
	}{
		{
			name:  "missing required fields",
			input: form{ConfirmPassword: ""},
			wantFields: map[string]string{
				"Email":    "field Email is a required field",
				"Password": "field Password is a required field",
				"Name":     "field Name is a required field",
			},
		},
		{
			name:  "malformed email and short password",
			input: form{Email: "not-an-email", Password: "abc", ConfirmPassword: "abc", Name: "Anna"},
			wantFields: map[string]string{
				"Email":    "field Email must be a valid email address",
				"Password": "field Password must be at least 6 characters",
			},
		},
		{
			name:  "confirmation mismatch",
			input: form{Email: "anna@example.com", Password: "password123", ConfirmPassword: "other", Name: "Anna"},
			wantFields: map[string]string{
				"ConfirmPassword": "field ConfirmPassword must match field Password",
			},
		},
	}

	validate := validator.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			require.Error(t, err)

			resp := ValidationError(err.(validator.ValidationErrors))

			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantFields, resp.Fields)
		})
	}
}
