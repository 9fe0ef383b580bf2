package auth

import (
	"context"
	"strings"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
	"github.com/foxred/hillary/pkg/jwt"
	"github.com/foxred/hillary/pkg/password"
)

// AuthUseCase inicio de sesión y emisión de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtOpts  jwt.Options
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtOpts jwt.Options) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtOpts: jwtOpts}
}

// Login busca el usuario activo por email, verifica la contraseña y emite un token.
// Usuario inexistente, inactivo o contraseña errónea dan el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Email y contraseña son requeridos")
	}
	user, err := uc.userRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(in.Password, user.PasswordHash) {
		return nil, domain.Errorf(domain.ErrInvalidCredentials, "Credenciales inválidas")
	}
	token, exp, err := jwt.Generate(uc.jwtOpts, identityOf(user))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		CompanyID:   user.CompanyID,
		CompanyName: user.CompanyName,
		RoleID:      user.RoleID,
		RoleName:    user.RoleName,
		ExpiresAt:   exp.UTC(),
	}, nil
}

// Me describe la identidad de un token ya validado.
func Me(id jwt.Identity) dto.MeResponse {
	return dto.MeResponse{
		UserID:    id.UserID,
		Name:      id.Name,
		Email:     id.Email,
		CompanyID: id.CompanyID,
		RoleID:    id.RoleID,
		RoleName:  id.RoleName,
		IsAdmin:   id.RoleID == entity.RoleManager,
	}
}

func identityOf(u *entity.User) jwt.Identity {
	return jwt.Identity{
		UserID:    u.ID,
		CompanyID: u.CompanyID,
		RoleID:    u.RoleID,
		RoleName:  u.RoleName,
		Name:      u.Name,
		Email:     u.Email,
	}
}
