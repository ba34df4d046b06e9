package credential_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/credential"
)

func TestBcryptVerifier_Verify(t *testing.T) {
	ownerHash, err := credential.HashPassword("pemilik-123")
	require.NoError(t, err)
	cashierHash, err := credential.HashPassword("kasir-456")
	require.NoError(t, err)

	v := credential.NewBcryptVerifier(
		credential.Account{Username: "owner", PasswordHash: ownerHash, Role: entity.RoleOwner},
		credential.Account{Username: "kasir", PasswordHash: cashierHash, Role: entity.RoleCashier},
	)
	require.True(t, v.Enabled())
	ctx := context.Background()

	p, err := v.Verify(ctx, "kasir", "kasir-456")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, p.Role)

	p, err = v.Verify(ctx, "owner", "pemilik-123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, p.Role)

	_, err = v.Verify(ctx, "owner", "kasir-456")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = v.Verify(ctx, "nadie", "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBcryptVerifier_SinHashDeshabilitado(t *testing.T) {
	v := credential.NewBcryptVerifier(credential.Account{Username: "owner", Role: entity.RoleOwner})
	assert.False(t, v.Enabled())

	_, err := v.Verify(context.Background(), "owner", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
