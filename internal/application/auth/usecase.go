package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del dueño y del kasir.
type AuthUseCase struct {
	verifier ports.CredentialVerifier
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(verifier ports.CredentialVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{verifier: verifier, jwtCfg: jwtCfg}
}

// Login verifica usuario/password con el CredentialVerifier y genera el JWT con el rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	principal, err := uc.verifier.Verify(ctx, username, in.Password)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, principal.Username, principal.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  principal.Username,
		Role:      principal.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
