package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/memory"
	"github.com/foxred/hillary/internal/infrastructure/session"
	"github.com/foxred/hillary/internal/infrastructure/storage"
	apphttp "github.com/foxred/hillary/internal/interfaces/http"
	"github.com/foxred/hillary/pkg/jwt"
	"github.com/foxred/hillary/pkg/logger"
	"github.com/foxred/hillary/pkg/password"
)

var testJWT = jwt.Options{Secret: "web-secret", Issuer: "hillary-api", Audience: "hillary-web", ExpMinutes: 30}

type webFixture struct {
	app      *fiber.App
	store    *memory.Store
	sessions *session.MemoryStore
	cookies  map[string]*http.Cookie
}

func newWeb(t *testing.T, withCSRF bool) *webFixture {
	t.Helper()
	store := memory.NewSeededStore()
	api := fiber.New()
	apphttp.Router(api, apphttp.NewRouterDeps("hillary-api", storage.Memory(store), testJWT, "full"))
	srv := httptest.NewServer(adaptor.FiberApp(api))
	t.Cleanup(srv.Close)

	sessions := session.NewMemoryStore()
	app := NewApp(Deps{
		AppName:    "hillary-web",
		API:        apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 5 * time.Second}),
		Sessions:   sessions,
		SessionTTL: time.Hour,
		CSRF:       withCSRF,
		Log:        logger.Nop(),
	})
	return &webFixture{app: app, store: store, sessions: sessions, cookies: map[string]*http.Cookie{}}
}

// do envía la petición con las cookies acumuladas y devuelve status, Location y cuerpo.
func (f *webFixture) do(t *testing.T, method, path string, form url.Values) (int, string, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range f.cookies {
		req.AddCookie(ck)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	for _, ck := range resp.Cookies() {
		f.cookies[ck.Name] = ck
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Location"), string(raw)
}

func (f *webFixture) get(t *testing.T, path string) (int, string, string) {
	return f.do(t, http.MethodGet, path, nil)
}

func (f *webFixture) post(t *testing.T, path string, form url.Values) (int, string, string) {
	return f.do(t, http.MethodPost, path, form)
}

func (f *webFixture) seedUser(t *testing.T, roleID int64) *entity.User {
	t.Helper()
	ctx := context.Background()
	c := &entity.Company{Name: "FoxRed", Active: true}
	require.NoError(t, f.store.Companies().Create(ctx, c))
	u := &entity.User{CompanyID: c.ID, RoleID: roleID, Name: "Ana Pérez", Email: "ana@foxred.com", PasswordHash: password.Hash("123456"), Active: true}
	require.NoError(t, f.store.Users().Create(ctx, u))
	return u
}

func (f *webFixture) login(t *testing.T) {
	t.Helper()
	status, loc, _ := f.post(t, "/auth/login", url.Values{"email": {"ana@foxred.com"}, "password": {"123456"}})
	require.Equal(t, http.StatusFound, status)
	require.Equal(t, "/", loc)
}

func TestHome_Anonimo(t *testing.T) {
	f := newWeb(t, false)
	status, _, body := f.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Bienvenido a Hillary")
	assert.NotContains(t, f.cookies, cookieName, "una visita anónima no abre sesión")
}

func TestSesion_VisitasAnonimasNoSeGuardan(t *testing.T) {
	f := newWeb(t, false)
	for i := 0; i < 50; i++ {
		f.cookies = map[string]*http.Cookie{}
		f.get(t, "/ruta-inexistente")
		f.get(t, "/")
	}
	assert.Zero(t, f.sessions.Len())

	f.get(t, "/tasks/mine")
	assert.Equal(t, 1, f.sessions.Len(), "el flash de login pendiente sí se guarda")
	require.Contains(t, f.cookies, cookieName)

	_, _, body := f.get(t, "/auth/login")
	assert.Contains(t, body, "Debe iniciar sesión para continuar.")
	assert.Zero(t, f.sessions.Len(), "consumido el flash la sesión vacía se borra")
	assert.Empty(t, f.cookies[cookieName].Value)
}

func TestTareas_RequierenSesion(t *testing.T) {
	f := newWeb(t, false)
	status, loc, _ := f.get(t, "/tasks/mine")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/auth/login?return_url=%2Ftasks%2Fmine", loc)

	_, _, body := f.get(t, "/auth/login?return_url=%2Ftasks%2Fmine")
	assert.Contains(t, body, "Debe iniciar sesión para continuar.")
	assert.Contains(t, body, `name="return_url" value="/tasks/mine"`)
}

func TestLogin_FlujoCompleto(t *testing.T) {
	f := newWeb(t, false)
	f.seedUser(t, entity.RoleManager)

	_, _, body := f.post(t, "/auth/login", url.Values{"email": {"ana@foxred.com"}, "password": {"mala"}})
	assert.Contains(t, body, "Credenciales inválidas")

	f.get(t, "/tasks/mine")
	require.Contains(t, f.cookies, cookieName)
	anonymousID := f.cookies[cookieName].Value
	require.NotEmpty(t, anonymousID)

	status, loc, _ := f.post(t, "/auth/login", url.Values{
		"email": {"ana@foxred.com"}, "password": {"123456"}, "return_url": {"/tasks/mine"},
	})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/tasks/mine", loc)
	assert.NotEqual(t, anonymousID, f.cookies[cookieName].Value, "el login rota la sesión")

	_, _, body = f.get(t, "/")
	assert.Contains(t, body, "Bienvenido, Ana Pérez")
	assert.Contains(t, body, "Gerente · FoxRed")

	status, loc, _ = f.get(t, "/auth/login")
	assert.Equal(t, http.StatusFound, status, "con sesión el login redirige")
	assert.Equal(t, "/", loc)

	status, loc, _ = f.post(t, "/auth/logout", url.Values{})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", loc)
	_, _, body = f.get(t, "/")
	assert.Contains(t, body, "Sesión cerrada correctamente.")
	assert.Contains(t, body, `href="/auth/login"`)
}

func TestLogin_ReturnURLExterna(t *testing.T) {
	f := newWeb(t, false)
	f.seedUser(t, entity.RoleManager)
	_, loc, _ := f.post(t, "/auth/login", url.Values{
		"email": {"ana@foxred.com"}, "password": {"123456"}, "return_url": {"//evil.example.com"},
	})
	assert.Equal(t, "/", loc)
}

func TestEmpresas_CRUD(t *testing.T) {
	f := newWeb(t, false)

	_, _, body := f.post(t, "/companies/create", url.Values{"name": {" "}})
	assert.Contains(t, body, "el nombre de la empresa es requerido")

	status, loc, _ := f.post(t, "/companies/create", url.Values{"name": {"FoxRed"}, "tax_id": {"900123"}})
	require.Equal(t, http.StatusFound, status)
	require.True(t, strings.HasPrefix(loc, "/companies/"))

	_, _, body = f.get(t, loc)
	assert.Contains(t, body, "Empresa creada exitosamente")
	assert.Contains(t, body, "900123")

	status, _, body = f.post(t, loc+"/status", url.Values{"active": {"false"}})
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"message":"Empresa desactivada exitosamente"}`, body)

	_, _, body = f.get(t, "/companies?active=false")
	assert.Contains(t, body, "FoxRed")
	_, _, body = f.get(t, "/companies?active=true")
	assert.Contains(t, body, "No se encontraron empresas.")

	status, loc2, _ := f.post(t, loc+"/edit", url.Values{"name": {"FoxRed SAS"}, "active": {"true"}})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, loc, loc2)

	status, loc2, _ = f.post(t, loc+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/companies", loc2)

	status, _, body = f.get(t, loc)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "no encontrada")
}

func TestEmpresas_EliminarConUsuarios(t *testing.T) {
	f := newWeb(t, false)
	u := f.seedUser(t, entity.RoleManager)
	path := "/companies/" + itoa(u.CompanyID)

	status, loc, _ := f.post(t, path+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/companies", loc)

	_, _, body := f.get(t, "/companies")
	assert.Contains(t, body, "alert-error")
}

func TestTareas_Flujo(t *testing.T) {
	f := newWeb(t, false)
	f.seedUser(t, entity.RoleManager)
	f.login(t)

	status, loc, _ := f.post(t, "/tasks/create", url.Values{"name": {"Inventario"}, "description": {"Contar bodega"}})
	require.Equal(t, http.StatusFound, status)

	_, _, body := f.get(t, loc)
	assert.Contains(t, body, "Tarea creada exitosamente")
	assert.Contains(t, body, "Contar bodega")

	_, _, body = f.get(t, "/tasks?name=inv")
	assert.Contains(t, body, "Inventario")
	assert.Contains(t, body, "/delete", "el Gerente ve la opción de eliminar")

	_, _, body = f.get(t, "/tasks/mine")
	assert.Contains(t, body, "Mis tareas")

	status, _, _ = f.post(t, loc+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, status)
	status, _, _ = f.get(t, loc)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUsuarios_Registro(t *testing.T) {
	f := newWeb(t, false)
	u := f.seedUser(t, entity.RoleManager)

	_, _, body := f.get(t, "/users/register?company_id=999")
	assert.Contains(t, body, "La empresa indicada no existe")

	_, _, body = f.get(t, "/users/register?company_id="+itoa(u.CompanyID))
	assert.Contains(t, body, "<strong>FoxRed</strong>")
	assert.Contains(t, body, `<option value="1" selected>Gerente</option>`)

	status, loc, _ := f.post(t, "/users/register", url.Values{
		"company_id": {itoa(u.CompanyID)}, "name": {"Luis Gómez"}, "password": {"secreto"}, "role_id": {"2"},
	})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/auth/login", loc)
	_, _, body = f.get(t, loc)
	assert.Contains(t, body, "luis.gomez@foxred.com")
}

func TestUsuarios_UsuarioNoPuedeAsignarGerente(t *testing.T) {
	f := newWeb(t, false)
	f.seedUser(t, entity.RoleMember)
	f.login(t)

	_, _, body := f.get(t, "/users/create")
	assert.NotContains(t, body, `<option value="1"`)
	assert.Contains(t, body, `<option value="2" selected>Usuario</option>`)

	_, _, body = f.post(t, "/users/create", url.Values{"name": {"Jefe"}, "password": {"x"}, "role_id": {"1"}})
	assert.Contains(t, body, "No tienes permisos para crear usuarios con rol Gerente")

	_, _, body = f.get(t, "/users")
	assert.Contains(t, body, "ana@foxred.com")
}

func TestCSRF_RechazaFormularioSinToken(t *testing.T) {
	f := newWeb(t, true)
	_, _, body := f.get(t, "/auth/login")
	assert.Contains(t, body, `name="_csrf"`)

	status, _, body := f.post(t, "/auth/login", url.Values{"email": {"a@b.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "El formulario expiró")
}

func TestIsLocalURL(t *testing.T) {
	assert.True(t, isLocalURL("/tasks?page_number=2"))
	assert.False(t, isLocalURL(""))
	assert.False(t, isLocalURL("https://evil.example.com"))
	assert.False(t, isLocalURL("//evil.example.com"))
	assert.False(t, isLocalURL(`/\evil.example.com`))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
