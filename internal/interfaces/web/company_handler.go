package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/session"
	"github.com/foxred/hillary/internal/interfaces/web/views"
)

// CompanyHandler páginas de empresas.
type CompanyHandler struct {
	api *apiclient.Client
}

func NewCompanyHandler(api *apiclient.Client) *CompanyHandler {
	return &CompanyHandler{api: api}
}

// Index GET /companies
func (h *CompanyHandler) Index(c *fiber.Ctx) error {
	filter := views.CompanyFilter{
		Name:   strings.TrimSpace(c.Query("name")),
		TaxID:  strings.TrimSpace(c.Query("tax_id")),
		Active: c.Query("active"),
	}
	req := dto.CompanySearchRequest{PageQuery: pageQuery(c), Name: filter.Name, TaxID: filter.TaxID}
	if active, err := strconv.ParseBool(filter.Active); err == nil {
		req.Active = &active
	} else {
		filter.Active = ""
	}

	p := page(c, "Empresas")
	list, err := h.api.SearchCompanies(c.UserContext(), req)
	if err != nil {
		p = withError(p, apiMessage(err))
		list = &dto.CompanyListResponse{}
	}
	q := url.Values{}
	for k, v := range map[string]string{"name": filter.Name, "tax_id": filter.TaxID, "active": filter.Active} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return render(c, views.CompanyIndex(p, filter, list, newPager("/companies", q, req.PageQuery, list.CountRow)))
}

// Details GET /companies/:id
func (h *CompanyHandler) Details(c *fiber.Ctx) error {
	company, err := h.load(c)
	if company == nil {
		return err
	}
	return render(c, views.CompanyDetails(page(c, company.Name), company))
}

// CreateForm GET /companies/create
func (h *CompanyHandler) CreateForm(c *fiber.Ctx) error {
	return render(c, views.CompanyEdit(page(c, "Nueva empresa"), views.CompanyForm{}))
}

// Create POST /companies/create
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	form := companyForm(c)
	out, err := h.api.CreateCompany(c.UserContext(), dto.CreateCompanyRequest{
		Name: form.Name, TaxID: form.TaxID, Address: form.Address, Phone: form.Phone, Email: form.Email,
	})
	if err != nil {
		if isFormError(err) {
			return render(c, views.CompanyEdit(withError(page(c, "Nueva empresa"), apiMessage(err)), form))
		}
		return fail(c, err, "/companies")
	}
	currentSession(c).AddFlash(session.FlashSuccess, "Empresa creada exitosamente")
	return c.Redirect("/companies/" + strconv.FormatInt(out.ID, 10))
}

// EditForm GET /companies/:id/edit
func (h *CompanyHandler) EditForm(c *fiber.Ctx) error {
	company, err := h.load(c)
	if company == nil {
		return err
	}
	form := views.CompanyForm{
		ID: company.ID, Name: company.Name, TaxID: company.TaxID, Address: company.Address,
		Phone: company.Phone, Email: company.Email, Active: company.Active,
	}
	return render(c, views.CompanyEdit(page(c, "Editar empresa"), form))
}

// Edit POST /companies/:id/edit
func (h *CompanyHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	form := companyForm(c)
	form.ID = id
	form.Active = c.FormValue("active") == "true"
	_, err = h.api.UpdateCompany(c.UserContext(), id, dto.UpdateCompanyRequest{
		Name: form.Name, TaxID: form.TaxID, Address: form.Address, Phone: form.Phone, Email: form.Email,
		Active: &form.Active,
	})
	if err != nil {
		if isFormError(err) {
			return render(c, views.CompanyEdit(withError(page(c, "Editar empresa"), apiMessage(err)), form))
		}
		return fail(c, err, "/companies")
	}
	currentSession(c).AddFlash(session.FlashSuccess, "Empresa actualizada exitosamente")
	return c.Redirect("/companies/" + strconv.FormatInt(id, 10))
}

// DeleteConfirm GET /companies/:id/delete
func (h *CompanyHandler) DeleteConfirm(c *fiber.Ctx) error {
	company, err := h.load(c)
	if company == nil {
		return err
	}
	return render(c, views.CompanyDelete(page(c, "Eliminar empresa"), company))
}

// Delete POST /companies/:id/delete
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteCompany(c.UserContext(), id); err != nil {
		return fail(c, err, "/companies")
	}
	currentSession(c).AddFlash(session.FlashSuccess, "Empresa eliminada exitosamente")
	return c.Redirect("/companies")
}

// statusResponse respuesta JSON del cambio de estado.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChangeStatus POST /companies/:id/status
func (h *CompanyHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(statusResponse{Message: "Empresa no encontrada"})
	}
	active, err := strconv.ParseBool(c.FormValue("active"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(statusResponse{Message: "Estado inválido"})
	}
	out, err := h.api.ChangeCompanyStatus(c.UserContext(), id, active)
	if err != nil {
		status := apiclient.StatusOf(err)
		if status == 0 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(statusResponse{Message: apiMessage(err)})
	}
	return c.JSON(statusResponse{Success: true, Message: out.Message})
}

// load obtiene la empresa de la ruta. Con nil la respuesta ya quedó resuelta.
func (h *CompanyHandler) load(c *fiber.Ctx) (*dto.CompanyResponse, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}
	company, err := h.api.GetCompany(c.UserContext(), id)
	if err != nil {
		return nil, loadFailed(c, err, "/companies")
	}
	return company, nil
}

func companyForm(c *fiber.Ctx) views.CompanyForm {
	return views.CompanyForm{
		Name:    strings.TrimSpace(c.FormValue("name")),
		TaxID:   strings.TrimSpace(c.FormValue("tax_id")),
		Address: strings.TrimSpace(c.FormValue("address")),
		Phone:   strings.TrimSpace(c.FormValue("phone")),
		Email:   strings.TrimSpace(c.FormValue("email")),
	}
}
