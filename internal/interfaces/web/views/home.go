package views

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Home página de bienvenida.
func Home(p Page) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.raw(`<h1>Bienvenido a Hillary</h1>`)
		if p.User == nil {
			b.raw(`<p>Administre empresas, usuarios y tareas. <a href="/auth/login">Inicie sesión</a> o registre una <a href="/companies/create">nueva empresa</a>.</p>`)
			return
		}
		b.rawf(`<p>Hola, <strong>%s</strong>. Ha iniciado sesión como %s en %s.</p>`,
			e(p.User.Name), e(p.User.RoleName), e(p.User.CompanyName))
		b.rawf(`<p>Email: %s</p>`, e(p.User.Email))
		b.raw(`<ul><li><a href="/tasks/mine">Ver las tareas de mi empresa</a></li><li><a href="/users">Ver usuarios</a></li></ul>`)
	}))
}

// LoginForm valores del formulario de acceso.
type LoginForm struct {
	Email     string
	ReturnURL string
}

// Login formulario de inicio de sesión.
func Login(p Page, f LoginForm) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.raw(`<h1>Iniciar sesión</h1><form method="post" action="/auth/login">`)
		csrfInput(b, p.CSRF)
		b.rawf(`<input type="hidden" name="return_url" value="%s">`, e(f.ReturnURL))
		input(b, "Email", "email", "email", f.Email, true)
		input(b, "Contraseña", "password", "password", "", true)
		b.raw(`<p><button type="submit">Entrar</button></p></form>`)
	}))
}

// Error página de error genérica.
func Error(p Page, status int, msg string) templ.Component {
	return Layout(p, component(func(_ context.Context, b *writer) {
		b.rawf(`<h1>%d · %s</h1><p>%s</p><p><a href="/">Volver al inicio</a></p>`,
			status, e(http.StatusText(status)), e(msg))
	}))
}
