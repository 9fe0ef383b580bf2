package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/foxred/hillary/internal/application/dto"
)

// CompanyFilter filtros del listado de empresas tal como vienen en la query.
type CompanyFilter struct {
	Name   string
	TaxID  string
	Active string // "", "true", "false"
}

// CompanyForm valores del formulario de alta/edición. ID 0 = alta.
type CompanyForm struct {
	ID      int64
	Name    string
	TaxID   string
	Address string
	Phone   string
	Email   string
	Active  bool
}

// CompanyIndex listado con filtros y paginación.
func CompanyIndex(p Page, f CompanyFilter, list *dto.CompanyListResponse, pg Pager) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.raw(`<h1>Empresas</h1><p><a href="/companies/create">Nueva empresa</a></p>`)
		b.raw(`<form method="get" action="/companies" class="filters">`)
		input(b, "Nombre", "name", "text", f.Name, false)
		input(b, "NIT", "tax_id", "text", f.TaxID, false)
		b.raw(`<label for="active">Estado</label><select id="active" name="active">`)
		option(b, "", "Todos", f.Active)
		option(b, "true", "Activas", f.Active)
		option(b, "false", "Inactivas", f.Active)
		b.raw(`</select><button type="submit">Buscar</button></form>`)

		if list == nil || len(list.Data) == 0 {
			b.raw(`<p>No se encontraron empresas.</p>`)
			return
		}
		b.raw(`<table><thead><tr><th>ID</th><th>Nombre</th><th>NIT</th><th>Email</th><th>Usuarios</th><th>Tareas</th><th>Estado</th><th></th></tr></thead><tbody>`)
		for _, c := range list.Data {
			b.rawf(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td>`,
				c.ID, e(c.Name), e(c.TaxID), e(c.Email), c.UserCount, c.TaskCount)
			b.rawf(`<td><button type="button" class="link" data-status="%d" data-active="%t">%s</button></td>`,
				c.ID, !c.Active, yesNo(c.Active))
			b.rawf(`<td class="actions"><a href="/companies/%[1]d">Ver</a><a href="/companies/%[1]d/edit">Editar</a><a href="/companies/%[1]d/delete">Eliminar</a><a href="/users/register?company_id=%[1]d">Registrar usuario</a></td></tr>`, c.ID)
		}
		b.raw(`</tbody></table>`)
		pager(b, pg)
		statusScript(b, p.CSRF)
	}))
}

func option(b *writer, value, label, selected string) {
	sel := ""
	if value == selected {
		sel = " selected"
	}
	b.rawf(`<option value="%s"%s>%s</option>`, e(value), sel, e(label))
}

// statusScript cambia el estado con POST /companies/:id/status y recarga.
func statusScript(b *writer, csrf string) {
	b.rawf(`<script>const csrfToken=%q;
document.querySelectorAll("[data-status]").forEach(btn=>btn.addEventListener("click",async()=>{
const body=new URLSearchParams({active:btn.dataset.active,%s:csrfToken});
const res=await fetch("/companies/"+btn.dataset.status+"/status",{method:"POST",body});
const data=await res.json();alert(data.message);if(data.success){location.reload();}}));</script>`, csrf, CSRFField)
}

// CompanyDetails ficha de la empresa.
func CompanyDetails(p Page, c *dto.CompanyResponse) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>%s</h1><dl>`, e(c.Name))
		b.rawf(`<dt>NIT</dt><dd>%s</dd><dt>Dirección</dt><dd>%s</dd><dt>Teléfono</dt><dd>%s</dd><dt>Email</dt><dd>%s</dd>`,
			e(c.TaxID), e(c.Address), e(c.Phone), e(c.Email))
		b.rawf(`<dt>Estado</dt><dd>%s</dd><dt>Usuarios</dt><dd>%d</dd><dt>Tareas</dt><dd>%d</dd>`, yesNo(c.Active), c.UserCount, c.TaskCount)
		b.rawf(`<dt>Creada</dt><dd>%s</dd><dt>Actualizada</dt><dd>%s</dd></dl>`,
			c.CreatedAt.Format("2006-01-02 15:04"), c.UpdatedAt.Format("2006-01-02 15:04"))
		b.rawf(`<p class="actions"><a href="/companies/%[1]d/edit">Editar</a><a href="/users/register?company_id=%[1]d">Registrar usuario</a><a href="/companies">Volver</a></p>`, c.ID)
	}))
}

// CompanyEdit formulario de alta o edición.
func CompanyEdit(p Page, f CompanyForm) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		action := "/companies/create"
		if f.ID != 0 {
			action = "/companies/" + id(f.ID) + "/edit"
		}
		b.rawf(`<h1>%s</h1><form method="post" action="%s">`, e(p.Title), action)
		csrfInput(b, p.CSRF)
		input(b, "Nombre", "name", "text", f.Name, true)
		input(b, "NIT", "tax_id", "text", f.TaxID, false)
		input(b, "Dirección", "address", "text", f.Address, false)
		input(b, "Teléfono", "phone", "text", f.Phone, false)
		input(b, "Email", "email", "email", f.Email, false)
		if f.ID != 0 {
			checked := ""
			if f.Active {
				checked = " checked"
			}
			b.rawf(`<label><input type="checkbox" name="active" value="true"%s> Activa</label>`, checked)
		}
		b.raw(`<p><button type="submit">Guardar</button> <a href="/companies">Cancelar</a></p></form>`)
	}))
}

// CompanyDelete confirmación de borrado.
func CompanyDelete(p Page, c *dto.CompanyResponse) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>Eliminar empresa</h1><p>¿Seguro que desea eliminar <strong>%s</strong>? Esta acción no se puede deshacer.</p>`, e(c.Name))
		if c.UserCount > 0 || c.TaskCount > 0 {
			b.rawf(`<div class="alert alert-warning">La empresa tiene %d usuarios y %d tareas asociadas.</div>`, c.UserCount, c.TaskCount)
		}
		b.rawf(`<form method="post" action="/companies/%d/delete">`, c.ID)
		csrfInput(b, p.CSRF)
		b.raw(`<button type="submit">Eliminar</button> <a href="/companies">Cancelar</a></form>`)
	}))
}
