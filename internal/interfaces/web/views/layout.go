// Package views contiene las páginas HTML del frontend como componentes templ.
package views

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/foxred/hillary/internal/infrastructure/session"
)

// CSRFField nombre del campo oculto de los formularios.
const CSRFField = "_csrf"

// User identidad mostrada en la cabecera.
type User struct {
	Name        string
	Email       string
	CompanyName string
	RoleName    string
	IsManager   bool
}

// Page datos comunes a todas las páginas.
type Page struct {
	Title   string
	User    *User // nil = anónimo
	Flashes []session.Flash
	CSRF    string
}

type writer struct {
	w   io.Writer
	err error
}

func (b *writer) raw(s string) {
	if b.err == nil {
		_, b.err = io.WriteString(b.w, s)
	}
}

func (b *writer) rawf(format string, args ...any) {
	if b.err == nil {
		_, b.err = fmt.Fprintf(b.w, format, args...)
	}
}

func (b *writer) text(s string) {
	b.raw(templ.EscapeString(s))
}

func (b *writer) component(ctx context.Context, c templ.Component) {
	if b.err == nil && c != nil {
		b.err = c.Render(ctx, b.w)
	}
}

func e(s string) string { return templ.EscapeString(s) }

func id(n int64) string { return strconv.FormatInt(n, 10) }

// component atajo para vistas que solo escriben con writer.
func component(fn func(ctx context.Context, b *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &writer{w: w}
		fn(ctx, b)
		return b.err
	})
}

// Layout envuelve el contenido con cabecera, menú y mensajes flash.
func Layout(p Page, content templ.Component) templ.Component {
	return component(func(ctx context.Context, b *writer) {
		b.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.rawf(`<title>%s - Hillary</title>`, e(p.Title))
		b.raw(`<style>` + styles + `</style></head><body>`)
		navbar(b, p)
		b.raw(`<main class="container">`)
		for _, f := range p.Flashes {
			b.rawf(`<div class="alert alert-%s" role="alert">%s</div>`, e(f.Kind), e(f.Message))
		}
		b.component(ctx, content)
		b.raw(`</main><footer class="container"><small>Hillary · Administración de empresas</small></footer></body></html>`)
	})
}

func navbar(b *writer, p Page) {
	b.raw(`<nav class="navbar"><a class="brand" href="/">Hillary</a><ul>`)
	b.raw(`<li><a href="/companies">Empresas</a></li>`)
	if p.User != nil {
		b.raw(`<li><a href="/tasks">Tareas</a></li><li><a href="/tasks/mine">Mis tareas</a></li>`)
		b.raw(`<li><a href="/users">Usuarios</a></li>`)
	}
	b.raw(`</ul><div class="session">`)
	if p.User != nil {
		b.rawf(`<span>%s (%s · %s)</span>`, e(p.User.Name), e(p.User.RoleName), e(p.User.CompanyName))
		b.raw(`<form method="post" action="/auth/logout" class="inline">`)
		csrfInput(b, p.CSRF)
		b.raw(`<button type="submit" class="link">Cerrar sesión</button></form>`)
	} else {
		b.raw(`<a href="/auth/login">Iniciar sesión</a>`)
	}
	b.raw(`</div></nav>`)
}

func csrfInput(b *writer, token string) {
	if token != "" {
		b.rawf(`<input type="hidden" name="%s" value="%s">`, CSRFField, e(token))
	}
}

func input(b *writer, label, name, typ, value string, required bool) {
	req := ""
	if required {
		req = " required"
	}
	b.rawf(`<label for="%[1]s">%[2]s</label><input id="%[1]s" name="%[1]s" type="%[3]s" value="%[4]s"%[5]s>`,
		name, e(label), typ, e(value), req)
}

func textarea(b *writer, label, name, value string) {
	b.rawf(`<label for="%[1]s">%[2]s</label><textarea id="%[1]s" name="%[1]s" rows="4">%[3]s</textarea>`, name, e(label), e(value))
}

func yesNo(v bool) string {
	if v {
		return "Activo"
	}
	return "Inactivo"
}

const styles = `body{font-family:system-ui,sans-serif;margin:0;color:#222}
.container{max-width:960px;margin:0 auto;padding:1rem}
.navbar{display:flex;gap:1rem;align-items:center;background:#8b1e1e;color:#fff;padding:.5rem 1rem}
.navbar a,.navbar .link{color:#fff}.navbar ul{display:flex;gap:1rem;list-style:none;margin:0;padding:0;flex:1}
.brand{font-weight:bold}.inline{display:inline}.link{background:none;border:0;cursor:pointer;text-decoration:underline}
.alert{padding:.75rem;margin-bottom:1rem;border-radius:4px}.alert-success{background:#d4edda}
.alert-info{background:#d1ecf1}.alert-warning{background:#fff3cd}.alert-error{background:#f8d7da}
table{width:100%;border-collapse:collapse}th,td{border-bottom:1px solid #ddd;padding:.4rem;text-align:left}
label{display:block;margin-top:.5rem}input,textarea,select{width:100%;padding:.3rem}
.actions a,.actions button{margin-right:.5rem}.pager a{margin-right:.3rem}`
