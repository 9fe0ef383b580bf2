package usecase

import (
	"context"
	"strings"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/access"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

// TaskUseCase tareas de la empresa del usuario autenticado.
type TaskUseCase struct {
	repo repository.TaskRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

// Create registra una tarea en la empresa del actor.
func (uc *TaskUseCase) Create(ctx context.Context, actor access.Actor, in dto.TaskRequest) (*dto.MessageResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No se pudo obtener la empresa del usuario autenticado")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "El nombre de la tarea es requerido")
	}
	if err := checkLengths(field{"nombre", name, maxNameLen}); err != nil {
		return nil, err
	}
	task := &entity.Task{CompanyID: actor.CompanyID, Name: name, Description: strings.TrimSpace(in.Description)}
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Tarea creada exitosamente", ID: task.ID}, nil
}

// GetByID obtiene una tarea visible para el actor.
func (uc *TaskUseCase) GetByID(ctx context.Context, actor access.Actor, id int64) (*dto.TaskResponse, error) {
	task, err := uc.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return entityToTaskResponse(task), nil
}

// Update reemplaza nombre y descripción; la tarea queda en la empresa del actor.
func (uc *TaskUseCase) Update(ctx context.Context, actor access.Actor, id int64, in dto.TaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "El nombre de la tarea es requerido")
	}
	if err := checkLengths(field{"nombre", name, maxNameLen}); err != nil {
		return nil, err
	}
	task.Name = name
	task.Description = strings.TrimSpace(in.Description)
	task.CompanyID = actor.CompanyID
	if err := uc.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return entityToTaskResponse(task), nil
}

// Delete solo lo pueden hacer Gerentes, y solo sobre tareas de su empresa.
func (uc *TaskUseCase) Delete(ctx context.Context, actor access.Actor, id int64) error {
	if !actor.IsManager() {
		return domain.Errorf(domain.ErrForbidden, "Solo los gerentes pueden eliminar tareas")
	}
	if _, err := uc.findVisible(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search busca tareas por nombre dentro de la empresa del actor.
func (uc *TaskUseCase) Search(ctx context.Context, actor access.Actor, in dto.TaskSearchRequest) (*dto.TaskListResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No se pudo obtener la empresa del usuario autenticado")
	}
	in.Normalize()
	list, total, err := uc.repo.Search(ctx, repository.TaskFilter{CompanyID: actor.CompanyID, Name: strings.TrimSpace(in.Name)},
		repository.Page{Limit: in.PageSize, Offset: in.Offset()})
	if err != nil {
		return nil, err
	}
	return toTaskList(list, total), nil
}

// Mine devuelve todas las tareas de la empresa del actor.
func (uc *TaskUseCase) Mine(ctx context.Context, actor access.Actor) ([]dto.TaskResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No se pudo obtener la empresa del usuario autenticado")
	}
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	return toTaskList(list, len(list)).Data, nil
}

func (uc *TaskUseCase) findVisible(ctx context.Context, actor access.Actor, id int64) (*entity.Task, error) {
	task, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Tarea con ID %d no encontrada", id)
	}
	if !actor.SameCompany(task.CompanyID) {
		return nil, domain.Errorf(domain.ErrForbidden, "La tarea pertenece a otra empresa")
	}
	return task, nil
}

func toTaskList(list []*entity.Task, total int) *dto.TaskListResponse {
	out := &dto.TaskListResponse{CountRow: total, Data: make([]dto.TaskResponse, 0, len(list))}
	for _, t := range list {
		out.Data = append(out.Data, *entityToTaskResponse(t))
	}
	return out
}

func entityToTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		CompanyID:   t.CompanyID,
		CompanyName: t.CompanyName,
		Name:        t.Name,
		Description: t.Description,
	}
}
