package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/foxred/hillary/internal/application/dto"
)

// TaskList listado de tareas. Pager nil = sin paginación ni filtro (mis tareas).
type TaskList struct {
	Name  string
	Items []dto.TaskResponse
	Pager *Pager
}

// TaskForm valores del formulario. ID 0 = alta.
type TaskForm struct {
	ID          int64
	Name        string
	Description string
}

// TaskIndex listado de tareas de la empresa.
func TaskIndex(p Page, l TaskList) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>%s</h1><p><a href="/tasks/create">Nueva tarea</a></p>`, e(p.Title))
		if l.Pager != nil {
			b.raw(`<form method="get" action="/tasks" class="filters">`)
			input(b, "Nombre", "name", "text", l.Name, false)
			b.raw(`<button type="submit">Buscar</button></form>`)
		}
		if len(l.Items) == 0 {
			b.raw(`<p>No hay tareas.</p>`)
			return
		}
		b.raw(`<table><thead><tr><th>ID</th><th>Nombre</th><th>Descripción</th><th>Empresa</th><th></th></tr></thead><tbody>`)
		for _, t := range l.Items {
			b.rawf(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td>`, t.ID, e(t.Name), e(t.Description), e(t.CompanyName))
			b.rawf(`<td class="actions"><a href="/tasks/%[1]d">Ver</a><a href="/tasks/%[1]d/edit">Editar</a>`, t.ID)
			if p.User != nil && p.User.IsManager {
				b.rawf(`<a href="/tasks/%d/delete">Eliminar</a>`, t.ID)
			}
			b.raw(`</td></tr>`)
		}
		b.raw(`</tbody></table>`)
		if l.Pager != nil {
			pager(b, *l.Pager)
		}
	}))
}

// TaskDetails ficha de una tarea.
func TaskDetails(p Page, t *dto.TaskResponse) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>%s</h1><dl><dt>Descripción</dt><dd>%s</dd><dt>Empresa</dt><dd>%s</dd></dl>`,
			e(t.Name), e(t.Description), e(t.CompanyName))
		b.rawf(`<p class="actions"><a href="/tasks/%d/edit">Editar</a><a href="/tasks">Volver</a></p>`, t.ID)
	}))
}

// TaskEdit formulario de alta o edición.
func TaskEdit(p Page, f TaskForm) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		action := "/tasks/create"
		if f.ID != 0 {
			action = "/tasks/" + id(f.ID) + "/edit"
		}
		b.rawf(`<h1>%s</h1><form method="post" action="%s">`, e(p.Title), action)
		csrfInput(b, p.CSRF)
		input(b, "Nombre", "name", "text", f.Name, true)
		textarea(b, "Descripción", "description", f.Description)
		b.raw(`<p><button type="submit">Guardar</button> <a href="/tasks">Cancelar</a></p></form>`)
	}))
}

// TaskDelete confirmación de borrado.
func TaskDelete(p Page, t *dto.TaskResponse) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>Eliminar tarea</h1><p>¿Seguro que desea eliminar <strong>%s</strong>?</p>`, e(t.Name))
		b.rawf(`<form method="post" action="/tasks/%d/delete">`, t.ID)
		csrfInput(b, p.CSRF)
		b.raw(`<button type="submit">Eliminar</button> <a href="/tasks">Cancelar</a></form>`)
	}))
}
