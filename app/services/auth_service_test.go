package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
)

func TestRegisterAndLogin(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, err := svc.Register(RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "correct-horse", user.Password)

	got, tokens, err := svc.Login(LoginInput{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRegisterInputRules(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"single-character name", RegisterInput{Name: "A", Email: "a@example.com", Password: "password1"}, "name"},
		{"short password", RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "short"}, "password"},
		{"malformed email", RegisterInput{Name: "Ada", Email: "not-an-email", Password: "password1"}, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Register(RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Name: "Imposter", Email: "ADA@example.com", Password: "password2"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, err := svc.Register(RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(LoginInput{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)

	got, err := NewAuthService().Me(asUser(user))
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = NewAuthService().Me(asUser(models.User{}))
	assert.ErrorIs(t, err, ErrNotFound)
}
