package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/application/auth"
	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/pkg/jwt"
)

type staticVerifier map[string]entity.Principal

func (v staticVerifier) Verify(_ context.Context, username, password string) (*entity.Principal, error) {
	p, ok := v[username+":"+password]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &p, nil
}

func TestLogin_GeneraTokenConRol(t *testing.T) {
	verifier := staticVerifier{"kasir:rahasia": {Username: "kasir", Role: entity.RoleCashier}}
	uc := auth.NewAuthUseCase(verifier, auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60, Issuer: "sakti-pos"})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "kasir", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, out.Role)
	assert.Equal(t, 3600, out.ExpiresIn)

	username, role, err := jwt.Parse("s3cret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "kasir", username)
	assert.Equal(t, entity.RoleCashier, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := auth.NewAuthUseCase(staticVerifier{}, auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "owner", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: " ", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
