package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/internal/application/auth"
	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/infrastructure/memory"
	apphttp "github.com/foxred/hillary/internal/interfaces/http"
	"github.com/foxred/hillary/pkg/password"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewSeededStore()
	emails := usecase.NewEmailGenerator(store.Users(), usecase.EmailFormatFull)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "hillary-api",
		CompanyUC:   usecase.NewCompanyUseCase(store.Companies()),
		RoleUC:      usecase.NewRoleUseCase(store.Roles()),
		UserUC:      usecase.NewUserUseCase(store.Users(), store.Companies(), emails),
		TaskUC:      usecase.NewTaskUseCase(store.Tasks()),
		AuthUC:      auth.NewAuthUseCase(store.Users(), testJWT),
		JWT:         testJWT,
	})
	return &apiFixture{app: app, store: store}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *apiFixture) company(t *testing.T, name string) int64 {
	t.Helper()
	var out dto.CompanyResponse
	status := f.do(t, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: name}, &out)
	require.Equal(t, http.StatusCreated, status)
	return out.ID
}

func (f *apiFixture) user(t *testing.T, companyID, roleID int64, email string) int64 {
	t.Helper()
	u := &entity.User{CompanyID: companyID, RoleID: roleID, Name: email, Email: email, PasswordHash: password.Hash("123456"), Active: true}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u.ID
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	var out map[string]string
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", "", nil, &out))
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "hillary-api", out["service"])
}

func TestCompanies_CRUD(t *testing.T) {
	f := newAPI(t)
	id := f.company(t, "FoxRed")

	var got dto.CompanyResponse
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/companies/1", "", nil, &got))
	assert.Equal(t, id, got.ID)
	assert.True(t, got.Active)

	var msg dto.MessageResponse
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/api/companies/1/status", "", dto.ChangeStatusRequest{Active: false}, &msg))
	assert.Equal(t, "Empresa desactivada exitosamente", msg.Message)

	var list dto.CompanyListResponse
	inactive := false
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/companies/search", "", dto.CompanySearchRequest{Active: &inactive}, &list))
	assert.Equal(t, 1, list.CountRow)

	var errOut dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/companies/99", "", nil, &errOut))
	assert.Equal(t, "NOT_FOUND", errOut.Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/companies/abc", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{}, nil))

	f.user(t, id, entity.RoleManager, "ana@foxred.com")
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodDelete, "/api/companies/1", "", nil, &errOut))
	assert.Equal(t, "IN_USE", errOut.Code)
}

func TestCompanies_SearchSinCuerpo(t *testing.T) {
	f := newAPI(t)
	f.company(t, "A")
	var list dto.CompanyListResponse
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/companies/search", "", nil, &list))
	assert.Equal(t, 1, list.CountRow)
}

func TestBusquedas_LimitesDePaginacion(t *testing.T) {
	f := newAPI(t)
	for i := 0; i < 3; i++ {
		f.company(t, "Empresa "+itoa(int64(i)))
	}
	huge := dto.PageQuery{PageNumber: 1 << 62, PageSize: 100}

	var companies dto.CompanyListResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/companies/search", "", dto.CompanySearchRequest{PageQuery: huge}, &companies))
	assert.Equal(t, 3, companies.CountRow)
	assert.Empty(t, companies.Data)

	var roles dto.RoleListResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/roles/search", "", dto.RoleSearchRequest{PageQuery: huge}, &roles))
	assert.Equal(t, 2, roles.CountRow)
	assert.Empty(t, roles.Data)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/companies/search", "", dto.CompanySearchRequest{PageQuery: dto.PageQuery{PageSize: 5000}}, &companies))
	assert.Len(t, companies.Data, 3)
}

func TestCompanies_CampoDemasiadoLargo(t *testing.T) {
	f := newAPI(t)
	var errOut dto.ErrorResponse
	status := f.do(t, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: "Acme", TaxID: "123456789012345678901"}, &errOut)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errOut.Code)
}

func TestRoles_UpdateIDNoCoincide(t *testing.T) {
	f := newAPI(t)
	var errOut dto.ErrorResponse
	status := f.do(t, http.MethodPut, "/api/roles/2", "", dto.RoleRequest{ID: 1, Name: "X"}, &errOut)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El ID no coincide", errOut.Message)

	status = f.do(t, http.MethodPost, "/api/roles", "", dto.RoleRequest{Name: "Gerente"}, &errOut)
	assert.Equal(t, http.StatusConflict, status)
}

func TestUsers_RegistroYLogin(t *testing.T) {
	f := newAPI(t)
	companyID := f.company(t, "FoxRed")

	var created dto.UserCreatedResponse
	status := f.do(t, http.MethodPost, "/api/users/register", "", dto.CreateUserRequest{
		CompanyID: companyID, Name: "Ana Pérez", Password: "123456",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "ana.perez@foxred.com", created.Email)
	assert.Equal(t, "Usuario registrado exitosamente", created.Message)

	var login dto.LoginResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/users/login", "", dto.LoginRequest{Email: created.Email, Password: "123456"}, &login))
	assert.Equal(t, entity.RoleManager, login.RoleID)
	assert.Equal(t, "FoxRed", login.CompanyName)

	var me dto.MeResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/users/me", "Bearer "+login.Token, nil, &me))
	assert.True(t, me.IsAdmin)
	assert.Equal(t, created.ID, me.UserID)

	var errOut dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/api/users/login", "", dto.LoginRequest{Email: created.Email, Password: "mala"}, &errOut))
	assert.Equal(t, "Credenciales inválidas", errOut.Message)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/users/login", "", dto.LoginRequest{}, nil))
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/users/register", "", dto.CreateUserRequest{CompanyID: 99, Name: "X", Password: "x"}, nil))
}

func TestUsers_ReglasDeRolYEmpresa(t *testing.T) {
	f := newAPI(t)
	foxred := f.company(t, "FoxRed")
	other := f.company(t, "Otra")
	managerID := f.user(t, foxred, entity.RoleManager, "gerente@foxred.com")
	memberID := f.user(t, foxred, entity.RoleMember, "usuario@foxred.com")
	outsiderID := f.user(t, other, entity.RoleMember, "x@otra.com")

	manager := tokenFor(t, managerID, foxred, entity.RoleManager)
	member := tokenFor(t, memberID, foxred, entity.RoleMember)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/api/users/search", "", nil, nil))

	var list dto.UserListResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/users/search", member, dto.UserSearchRequest{}, &list))
	assert.Equal(t, 2, list.CountRow, "solo usuarios de su empresa")

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/users/"+itoa(outsiderID), manager, nil, nil))
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/users", member,
		dto.CreateUserRequest{RoleID: entity.RoleManager, Name: "Nuevo", Password: "x"}, nil))

	var created dto.UserCreatedResponse
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/users", member,
		dto.CreateUserRequest{RoleID: entity.RoleMember, Name: "Luis Gómez", Password: "x"}, &created))
	assert.Equal(t, "luis.gomez@foxred.com", created.Email)
	assert.Equal(t, foxred, created.CompanyID)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPut, "/api/users/"+itoa(managerID), member, dto.UpdateUserRequest{Name: "Hack"}, nil))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/users/"+itoa(memberID), member, dto.UpdateUserRequest{Name: "Yo"}, nil))

	var roleErr dto.RoleErrorResponse
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, "/api/users/"+itoa(created.ID), member, nil, &roleErr))
	assert.Equal(t, []int64{entity.RoleManager}, roleErr.RequiredRoles)

	var msg dto.MessageResponse
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/api/users/"+itoa(created.ID)+"/change-status", manager, dto.ChangeStatusRequest{Active: false}, &msg))
	assert.Equal(t, "Usuario desactivado exitosamente", msg.Message)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/users/"+itoa(created.ID), manager, nil, nil))
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/users/"+itoa(created.ID), manager, nil, nil))
}

func TestUsers_EditarConEmailAjeno(t *testing.T) {
	f := newAPI(t)
	foxred := f.company(t, "FoxRed")
	managerID := f.user(t, foxred, entity.RoleManager, "gerente@foxred.com")
	memberID := f.user(t, foxred, entity.RoleMember, "usuario@foxred.com")
	manager := tokenFor(t, managerID, foxred, entity.RoleManager)

	var errOut dto.ErrorResponse
	status := f.do(t, http.MethodPut, "/api/users/"+itoa(memberID), manager, dto.UpdateUserRequest{Email: "gerente@foxred.com"}, &errOut)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", errOut.Code)

	var got dto.UserResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/users/"+itoa(memberID), manager, nil, &got))
	assert.Equal(t, "usuario@foxred.com", got.Email, "el email no cambia")
}

func TestTasks_Flujo(t *testing.T) {
	f := newAPI(t)
	foxred := f.company(t, "FoxRed")
	other := f.company(t, "Otra")
	managerID := f.user(t, foxred, entity.RoleManager, "gerente@foxred.com")
	memberID := f.user(t, foxred, entity.RoleMember, "usuario@foxred.com")
	manager := tokenFor(t, managerID, foxred, entity.RoleManager)
	member := tokenFor(t, memberID, foxred, entity.RoleMember)
	outsider := tokenFor(t, 99, other, entity.RoleManager)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/tasks/mine", "", nil, nil))

	var created dto.MessageResponse
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/tasks", member, dto.TaskRequest{Name: "Inventario"}, &created))
	assert.Equal(t, "Tarea creada exitosamente", created.Message)
	path := "/api/tasks/" + itoa(created.ID)

	var task dto.TaskResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, path, member, nil, &task))
	assert.Equal(t, "FoxRed", task.CompanyName)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, path, outsider, nil, nil))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, path, member, dto.TaskRequest{Name: "Inventario anual"}, nil))

	var mine []dto.TaskResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/tasks/mine", member, nil, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Inventario anual", mine[0].Name)

	var list dto.TaskListResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/tasks/search", member, dto.TaskSearchRequest{Name: "anual"}, &list))
	assert.Equal(t, 1, list.CountRow)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, path, member, nil, nil))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, path, manager, nil, nil))
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, path, manager, nil, nil))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
