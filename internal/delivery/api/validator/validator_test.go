package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required,max=6"`
}

type signup struct {
	Email    string  `json:"email" validate:"required,email"`
	Quantity int     `json:"quantity" validate:"min=1"`
	Role     string  `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	Address  address `json:"address" validate:"required"`
	Internal string  `json:"-" validate:"max=1"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	valid := signup{
		Email:    "asha@example.com",
		Quantity: 1,
		Address:  address{City: "Surat", PostalCode: "395003"},
	}

	tests := []struct {
		name   string
		mutate func(s *signup)
		want   string
	}{
		{name: "valid", mutate: func(*signup) {}},
		{name: "missing email", mutate: func(s *signup) { s.Email = "" }, want: "email is required"},
		{name: "bad email", mutate: func(s *signup) { s.Email = "asha" }, want: "email must be a valid email"},
		{name: "below minimum", mutate: func(s *signup) { s.Quantity = 0 }, want: "quantity must be at least 1"},
		{name: "unknown role", mutate: func(s *signup) { s.Role = "OWNER" }, want: "role must be one of USER ADMIN"},
		{name: "nested field", mutate: func(s *signup) { s.Address.City = "" }, want: "address.city is required"},
		{name: "nested max", mutate: func(s *signup) { s.Address.PostalCode = "1234567" }, want: "address.postal_code must be at most 6"},
		{
			name: "several failures",
			mutate: func(s *signup) {
				s.Email = ""
				s.Quantity = 0
			},
			want: "email is required; quantity must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			err := v.Validate(&input)
			if tt.want == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidator_NonStruct(t *testing.T) {
	assert.Error(t, New().Validate("not a struct"))
}
