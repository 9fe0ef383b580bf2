package usecase

import (
	"context"
	"strings"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/access"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
	"github.com/foxred/hillary/pkg/password"
)

// UserUseCase administración de usuarios dentro de la empresa del usuario autenticado.
type UserUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	emails    *EmailGenerator
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, companies repository.CompanyRepository, emails *EmailGenerator) *UserUseCase {
	return &UserUseCase{users: users, companies: companies, emails: emails}
}

// Create da de alta un usuario en la empresa del actor.
// Un Usuario no puede crear Gerentes; el email se genera si no viene.
func (uc *UserUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserCreatedResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No se pudo obtener la empresa del usuario autenticado")
	}
	if in.CompanyID != 0 && in.CompanyID != actor.CompanyID {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Solo puedes crear usuarios para tu propia empresa")
	}
	if !actor.CanAssignRole(in.RoleID) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No tienes permisos para crear usuarios con rol Gerente")
	}
	if in.RoleID == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Debe especificar un rol válido")
	}
	user, err := uc.newUser(ctx, actor.CompanyID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserCreatedResponse{
		Message:   "Usuario creado exitosamente",
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CompanyID: user.CompanyID,
	}, nil
}

// Register es el alta pública: la empresa debe existir y el rol por defecto es Gerente.
func (uc *UserUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserCreatedResponse, error) {
	if in.CompanyID == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Debe indicar la empresa")
	}
	if in.RoleID == 0 {
		in.RoleID = entity.RoleManager
	}
	user, err := uc.newUser(ctx, in.CompanyID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserCreatedResponse{
		Message: "Usuario registrado exitosamente",
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
	}, nil
}

// GetByID obtiene un usuario de la empresa del actor.
func (uc *UserUseCase) GetByID(ctx context.Context, actor access.Actor, id int64) (*dto.UserResponse, error) {
	user, err := uc.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update cambia nombre y, si vienen informados, email y password.
// Un Usuario solo puede editarse a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, actor access.Actor, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanEditUser(user) {
		return nil, domain.Errorf(domain.ErrForbidden, "Solo puedes editar tu propio perfil")
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(in.Email); email != "" && !strings.EqualFold(email, user.Email) {
		exists, err := uc.users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Errorf(domain.ErrEmailAlreadyExists, "El email %s ya está registrado", email)
		}
		user.Email = email
	}
	if hash := password.Hash(in.Password); hash != "" {
		user.PasswordHash = hash
	}
	if err := checkUser(user); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Delete elimina un usuario de la empresa del actor.
func (uc *UserUseCase) Delete(ctx context.Context, actor access.Actor, id int64) error {
	if _, err := uc.findVisible(ctx, actor, id); err != nil {
		return err
	}
	return uc.users.Delete(ctx, id)
}

// ChangeStatus activa o desactiva un usuario de la empresa del actor.
func (uc *UserUseCase) ChangeStatus(ctx context.Context, actor access.Actor, id int64, active bool) (string, error) {
	if _, err := uc.findVisible(ctx, actor, id); err != nil {
		return "", err
	}
	if err := uc.users.SetActive(ctx, id, active); err != nil {
		return "", err
	}
	if active {
		return "Usuario activado exitosamente", nil
	}
	return "Usuario desactivado exitosamente", nil
}

// Search busca usuarios siempre dentro de la empresa del actor.
func (uc *UserUseCase) Search(ctx context.Context, actor access.Actor, in dto.UserSearchRequest) (*dto.UserListResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No se pudo obtener la empresa del usuario autenticado")
	}
	in.Normalize()
	list, total, err := uc.users.Search(ctx, repository.UserFilter{
		CompanyID: actor.CompanyID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		RoleID:    in.RoleID,
		Active:    in.Active,
	}, repository.Page{Limit: in.PageSize, Offset: in.Offset()})
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{CountRow: total, Data: make([]dto.UserResponse, 0, len(list))}
	for _, u := range list {
		out.Data = append(out.Data, *entityToUserResponse(u))
	}
	return out, nil
}

// newUser valida los datos comunes de alta y resuelve el email.
func (uc *UserUseCase) newUser(ctx context.Context, companyID int64, in dto.CreateUserRequest) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "El nombre es requerido")
	}
	if err := checkLengths(field{"nombre", name, maxNameLen}); err != nil {
		return nil, err
	}
	hash := password.Hash(in.Password)
	if hash == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "La contraseña es requerida")
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Empresa con ID %d no encontrada", companyID)
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email, err = uc.emails.Generate(ctx, name, company)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := uc.users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Errorf(domain.ErrEmailAlreadyExists, "El email %s ya está registrado", email)
		}
	}
	user := &entity.User{
		CompanyID:    company.ID,
		RoleID:       in.RoleID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		CompanyName:  company.Name,
	}
	if err := checkUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func checkUser(u *entity.User) error {
	return checkLengths(field{"nombre", u.Name, maxNameLen}, field{"email", u.Email, maxEmailLen})
}

func (uc *UserUseCase) findVisible(ctx context.Context, actor access.Actor, id int64) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Usuario no encontrado")
	}
	if !actor.SameCompany(user.CompanyID) {
		return nil, domain.Errorf(domain.ErrForbidden, "El usuario pertenece a otra empresa")
	}
	return user, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		CompanyName: u.CompanyName,
		RoleID:      u.RoleID,
		RoleName:    u.RoleName,
		Name:        u.Name,
		Email:       u.Email,
		Active:      u.Active,
	}
}
