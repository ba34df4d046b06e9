// Package credential verifica las credenciales del dueño y del kasir contra hashes bcrypt de la configuración.
package credential

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

var _ ports.CredentialVerifier = (*BcryptVerifier)(nil)

// Account usuario configurado con su hash bcrypt y su rol.
type Account struct {
	Username     string
	PasswordHash string
	Role         string
}

// BcryptVerifier implementa ports.CredentialVerifier sobre una lista fija de cuentas.
type BcryptVerifier struct {
	accounts []Account
}

// NewBcryptVerifier construye el verificador. Las cuentas sin usuario o sin hash se ignoran.
func NewBcryptVerifier(accounts ...Account) *BcryptVerifier {
	v := &BcryptVerifier{}
	for _, a := range accounts {
		if a.Username != "" && a.PasswordHash != "" {
			v.accounts = append(v.accounts, a)
		}
	}
	return v
}

// Enabled indica si hay al menos una cuenta utilizable.
func (v *BcryptVerifier) Enabled() bool { return len(v.accounts) > 0 }

// Verify compara el password con el hash de la cuenta. Retorna domain.ErrUnauthorized si no coincide.
func (v *BcryptVerifier) Verify(_ context.Context, username, password string) (*entity.Principal, error) {
	for _, a := range v.accounts {
		if subtle.ConstantTimeCompare([]byte(a.Username), []byte(username)) != 1 {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
			return nil, domain.ErrUnauthorized
		}
		return &entity.Principal{Username: a.Username, Role: a.Role}, nil
	}
	return nil, domain.ErrUnauthorized
}

// HashPassword genera el hash bcrypt para la configuración (cmd/hash_password).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
