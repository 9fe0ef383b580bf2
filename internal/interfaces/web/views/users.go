package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/foxred/hillary/internal/application/dto"
)

// UserForm formulario de registro público o de alta interna.
type UserForm struct {
	CompanyID   int64
	CompanyName string // vacío = la empresa no existe
	Name        string
	Email       string
	RoleID      int64
	Roles       []dto.RoleResponse
}

// UserFilter filtros del listado.
type UserFilter struct {
	Name  string
	Email string
}

// UserRegister alta pública de un usuario para una empresa.
func UserRegister(p Page, f UserForm) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.raw(`<h1>Registrar usuario</h1>`)
		if f.CompanyName == "" {
			b.raw(`<div class="alert alert-warning">La empresa indicada no existe. Seleccione una empresa desde el <a href="/companies">listado</a>.</div>`)
		} else {
			b.rawf(`<p>Empresa: <strong>%s</strong></p>`, e(f.CompanyName))
		}
		b.raw(`<form method="post" action="/users/register">`)
		csrfInput(b, p.CSRF)
		b.rawf(`<input type="hidden" name="company_id" value="%d">`, f.CompanyID)
		userFields(b, f)
		b.raw(`<p><button type="submit">Registrar</button></p></form>`)
	}))
}

// UserCreate alta de un usuario en la empresa de la sesión.
func UserCreate(p Page, f UserForm) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.raw(`<h1>Nuevo usuario</h1><form method="post" action="/users/create">`)
		csrfInput(b, p.CSRF)
		userFields(b, f)
		b.raw(`<p><button type="submit">Guardar</button> <a href="/users">Cancelar</a></p></form>`)
	}))
}

func userFields(b *writer, f UserForm) {
	input(b, "Nombre", "name", "text", f.Name, true)
	input(b, "Email (vacío = se genera automáticamente)", "email", "email", f.Email, false)
	input(b, "Contraseña", "password", "password", "", true)
	b.raw(`<label for="role_id">Rol</label><select id="role_id" name="role_id">`)
	for _, r := range f.Roles {
		option(b, id(r.ID), r.Name, id(f.RoleID))
	}
	b.raw(`</select>`)
}

// UserIndex listado de usuarios de la empresa.
func UserIndex(p Page, f UserFilter, list *dto.UserListResponse, pg Pager) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.raw(`<h1>Usuarios</h1><p><a href="/users/create">Nuevo usuario</a></p>`)
		b.raw(`<form method="get" action="/users" class="filters">`)
		input(b, "Nombre", "name", "text", f.Name, false)
		input(b, "Email", "email", "text", f.Email, false)
		b.raw(`<button type="submit">Buscar</button></form>`)
		if list == nil || len(list.Data) == 0 {
			b.raw(`<p>No se encontraron usuarios.</p>`)
			return
		}
		b.raw(`<table><thead><tr><th>ID</th><th>Nombre</th><th>Email</th><th>Rol</th><th>Estado</th><th></th></tr></thead><tbody>`)
		for _, u := range list.Data {
			b.rawf(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><a href="/users/%d">Ver</a></td></tr>`,
				u.ID, e(u.Name), e(u.Email), e(u.RoleName), yesNo(u.Active), u.ID)
		}
		b.raw(`</tbody></table>`)
		pager(b, pg)
	}))
}

// UserDetails ficha de un usuario.
func UserDetails(p Page, u *dto.UserResponse) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>%s</h1><dl><dt>Email</dt><dd>%s</dd><dt>Empresa</dt><dd>%s</dd><dt>Rol</dt><dd>%s</dd><dt>Estado</dt><dd>%s</dd></dl>`,
			e(u.Name), e(u.Email), e(u.CompanyName), e(u.RoleName), yesNo(u.Active))
		b.raw(`<p><a href="/users">Volver</a></p>`)
	}))
}
