package apiclient

import (
	"context"
	"net/http"

	"github.com/foxred/hillary/internal/application/dto"
)

// ── Usuarios y sesión ────────────────────────────────────────────────────────

// Login POST /api/users/login.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /api/users/register.
func (c *Client) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserCreatedResponse, error) {
	var out dto.UserCreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchUsers POST /api/users/search.
func (c *Client) SearchUsers(ctx context.Context, token string, in dto.UserSearchRequest) (*dto.UserListResponse, error) {
	var out dto.UserListResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/search", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser GET /api/users/:id.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/users", id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser POST /api/users.
func (c *Client) CreateUser(ctx context.Context, token string, in dto.CreateUserRequest) (*dto.UserCreatedResponse, error) {
	var out dto.UserCreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Empresas ─────────────────────────────────────────────────────────────────

// SearchCompanies POST /api/companies/search.
func (c *Client) SearchCompanies(ctx context.Context, in dto.CompanySearchRequest) (*dto.CompanyListResponse, error) {
	var out dto.CompanyListResponse
	if err := c.do(ctx, http.MethodPost, "/api/companies/search", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCompany GET /api/companies/:id.
func (c *Client) GetCompany(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	var out dto.CompanyResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/companies", id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCompany POST /api/companies.
func (c *Client) CreateCompany(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	var out dto.CompanyResponse
	if err := c.do(ctx, http.MethodPost, "/api/companies", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompany PUT /api/companies/:id.
func (c *Client) UpdateCompany(ctx context.Context, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	var out dto.CompanyResponse
	if err := c.do(ctx, http.MethodPut, idPath("/api/companies", id), "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCompany DELETE /api/companies/:id.
func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/companies", id), "", nil, nil)
}

// ChangeCompanyStatus PATCH /api/companies/:id/status.
func (c *Client) ChangeCompanyStatus(ctx context.Context, id int64, active bool) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	err := c.do(ctx, http.MethodPatch, idPath("/api/companies", id)+"/status", "", dto.ChangeStatusRequest{Active: active}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Roles ────────────────────────────────────────────────────────────────────

// SearchRoles POST /api/roles/search.
func (c *Client) SearchRoles(ctx context.Context, in dto.RoleSearchRequest) (*dto.RoleListResponse, error) {
	var out dto.RoleListResponse
	if err := c.do(ctx, http.MethodPost, "/api/roles/search", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Tareas ───────────────────────────────────────────────────────────────────

// SearchTasks POST /api/tasks/search.
func (c *Client) SearchTasks(ctx context.Context, token string, in dto.TaskSearchRequest) (*dto.TaskListResponse, error) {
	var out dto.TaskListResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks/search", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyTasks GET /api/tasks/mine.
func (c *Client) MyTasks(ctx context.Context, token string) ([]dto.TaskResponse, error) {
	var out []dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks/mine", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask GET /api/tasks/:id.
func (c *Client) GetTask(ctx context.Context, token string, id int64) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/tasks", id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask POST /api/tasks.
func (c *Client) CreateTask(ctx context.Context, token string, in dto.TaskRequest) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask PUT /api/tasks/:id.
func (c *Client) UpdateTask(ctx context.Context, token string, id int64, in dto.TaskRequest) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := c.do(ctx, http.MethodPut, idPath("/api/tasks", id), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask DELETE /api/tasks/:id.
func (c *Client) DeleteTask(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/tasks", id), token, nil, nil)
}
