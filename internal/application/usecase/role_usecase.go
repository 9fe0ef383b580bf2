package usecase

import (
	"context"
	"strings"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

// RoleUseCase casos de uso del catálogo de roles.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create registra un rol nuevo.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el nombre del rol es requerido")
	}
	role := &entity.Role{Name: name, Description: strings.TrimSpace(in.Description)}
	if err := checkRole(role); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// GetByID obtiene un rol.
func (uc *RoleUseCase) GetByID(ctx context.Context, id int64) (*dto.RoleResponse, error) {
	role, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// Update reemplaza nombre y descripción. El ID del cuerpo debe coincidir con el de la ruta.
func (uc *RoleUseCase) Update(ctx context.Context, id int64, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if in.ID != id {
		return nil, domain.Errorf(domain.ErrInvalidInput, "El ID no coincide")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el nombre del rol es requerido")
	}
	role, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Name = name
	role.Description = strings.TrimSpace(in.Description)
	if err := checkRole(role); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// Delete elimina un rol sin usuarios asignados.
func (uc *RoleUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search busca roles por nombre.
func (uc *RoleUseCase) Search(ctx context.Context, in dto.RoleSearchRequest) (*dto.RoleListResponse, error) {
	in.Normalize()
	list, total, err := uc.repo.Search(ctx, repository.RoleFilter{Name: strings.TrimSpace(in.Name)},
		repository.Page{Limit: in.PageSize, Offset: in.Offset()})
	if err != nil {
		return nil, err
	}
	out := &dto.RoleListResponse{CountRow: total, Data: make([]dto.RoleResponse, 0, len(list))}
	for _, r := range list {
		out.Data = append(out.Data, *entityToRoleResponse(r))
	}
	return out, nil
}

func (uc *RoleUseCase) find(ctx context.Context, id int64) (*entity.Role, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Rol con ID %d no encontrado", id)
	}
	return role, nil
}

func checkRole(r *entity.Role) error {
	return checkLengths(
		field{"nombre", r.Name, maxRoleNameLen},
		field{"descripción", r.Description, maxDescriptionLen},
	)
}

func entityToRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, UserCount: r.UserCount}
}
