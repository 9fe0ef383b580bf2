package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain/access"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/session"
	"github.com/foxred/hillary/internal/interfaces/web/views"
)

// defaultRoles se usan si la API de roles no responde.
var defaultRoles = []dto.RoleResponse{
	{ID: entity.RoleManager, Name: "Gerente"},
	{ID: entity.RoleMember, Name: "Usuario"},
}

// UserHandler registro público y administración de usuarios.
type UserHandler struct {
	api *apiclient.Client
}

func NewUserHandler(api *apiclient.Client) *UserHandler {
	return &UserHandler{api: api}
}

// RegisterForm GET /users/register?company_id=
func (h *UserHandler) RegisterForm(c *fiber.Ctx) error {
	form := views.UserForm{CompanyID: queryInt64(c, "company_id"), RoleID: entity.RoleManager}
	h.fillRegister(c, &form)
	return render(c, views.UserRegister(page(c, "Registrar usuario"), form))
}

// Register POST /users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	form := userForm(c)
	form.CompanyID = formInt64(c, "company_id")
	out, err := h.api.Register(c.UserContext(), dto.CreateUserRequest{
		CompanyID: form.CompanyID,
		RoleID:    form.RoleID,
		Name:      form.Name,
		Email:     form.Email,
		Password:  c.FormValue("password"),
	})
	if err != nil {
		if isFormError(err) {
			h.fillRegister(c, &form)
			return render(c, views.UserRegister(withError(page(c, "Registrar usuario"), apiMessage(err)), form))
		}
		return fail(c, err, "/users/register?company_id="+strconv.FormatInt(form.CompanyID, 10))
	}
	currentSession(c).AddFlash(session.FlashSuccess, "Usuario registrado exitosamente. Su email de acceso es "+out.Email)
	return c.Redirect("/auth/login")
}

// fillRegister completa la empresa y los roles del formulario público.
func (h *UserHandler) fillRegister(c *fiber.Ctx, form *views.UserForm) {
	form.CompanyName = ""
	if form.CompanyID > 0 {
		if company, err := h.api.GetCompany(c.UserContext(), form.CompanyID); err == nil {
			form.CompanyName = company.Name
		}
	}
	form.Roles = h.roles(c, nil)
}

// roles lista de roles para el select; allow filtra los que puede asignar el usuario.
func (h *UserHandler) roles(c *fiber.Ctx, allow func(int64) bool) []dto.RoleResponse {
	list, err := h.api.SearchRoles(c.UserContext(), dto.RoleSearchRequest{PageQuery: dto.PageQuery{PageSize: dto.MaxPageSize}})
	all := defaultRoles
	if err == nil && len(list.Data) > 0 {
		all = list.Data
	}
	if allow == nil {
		return all
	}
	out := make([]dto.RoleResponse, 0, len(all))
	for _, r := range all {
		if allow(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func (h *UserHandler) assignableRoles(c *fiber.Ctx) []dto.RoleResponse {
	s := currentSession(c)
	actor := access.Actor{UserID: s.UserID, CompanyID: s.CompanyID, RoleID: s.RoleID}
	return h.roles(c, actor.CanAssignRole)
}

// Index GET /users
func (h *UserHandler) Index(c *fiber.Ctx) error {
	filter := views.UserFilter{Name: strings.TrimSpace(c.Query("name")), Email: strings.TrimSpace(c.Query("email"))}
	req := dto.UserSearchRequest{PageQuery: pageQuery(c), Name: filter.Name, Email: filter.Email}
	list, err := h.api.SearchUsers(c.UserContext(), currentSession(c).Token, req)
	if err != nil {
		return fail(c, err, "/")
	}
	q := url.Values{}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.Email != "" {
		q.Set("email", filter.Email)
	}
	return render(c, views.UserIndex(page(c, "Usuarios"), filter, list, newPager("/users", q, req.PageQuery, list.CountRow)))
}

// Details GET /users/:id
func (h *UserHandler) Details(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	user, err := h.api.GetUser(c.UserContext(), currentSession(c).Token, id)
	if err != nil {
		return loadFailed(c, err, "/users")
	}
	return render(c, views.UserDetails(page(c, user.Name), user))
}

// CreateForm GET /users/create
func (h *UserHandler) CreateForm(c *fiber.Ctx) error {
	form := views.UserForm{RoleID: entity.RoleMember, Roles: h.assignableRoles(c)}
	return render(c, views.UserCreate(page(c, "Nuevo usuario"), form))
}

// Create POST /users/create. La empresa la fija la API a partir del token.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	form := userForm(c)
	out, err := h.api.CreateUser(c.UserContext(), currentSession(c).Token, dto.CreateUserRequest{
		RoleID:   form.RoleID,
		Name:     form.Name,
		Email:    form.Email,
		Password: c.FormValue("password"),
	})
	if err != nil {
		if isFormError(err) {
			form.Roles = h.assignableRoles(c)
			return render(c, views.UserCreate(withError(page(c, "Nuevo usuario"), apiMessage(err)), form))
		}
		return fail(c, err, "/users")
	}
	currentSession(c).AddFlash(session.FlashSuccess, out.Message+": "+out.Email)
	return c.Redirect("/users/" + strconv.FormatInt(out.ID, 10))
}

func userForm(c *fiber.Ctx) views.UserForm {
	return views.UserForm{
		Name:   strings.TrimSpace(c.FormValue("name")),
		Email:  strings.TrimSpace(c.FormValue("email")),
		RoleID: formInt64(c, "role_id"),
	}
}
