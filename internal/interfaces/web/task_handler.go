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

// TaskHandler páginas de tareas; todas requieren sesión.
type TaskHandler struct {
	api *apiclient.Client
}

func NewTaskHandler(api *apiclient.Client) *TaskHandler {
	return &TaskHandler{api: api}
}

// Index GET /tasks
func (h *TaskHandler) Index(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	req := dto.TaskSearchRequest{PageQuery: pageQuery(c), Name: name}
	list, err := h.api.SearchTasks(c.UserContext(), currentSession(c).Token, req)
	if err != nil {
		return fail(c, err, "/")
	}
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	pg := newPager("/tasks", q, req.PageQuery, list.CountRow)
	return render(c, views.TaskIndex(page(c, "Tareas"), views.TaskList{Name: name, Items: list.Data, Pager: &pg}))
}

// Mine GET /tasks/mine
func (h *TaskHandler) Mine(c *fiber.Ctx) error {
	items, err := h.api.MyTasks(c.UserContext(), currentSession(c).Token)
	if err != nil {
		return fail(c, err, "/")
	}
	return render(c, views.TaskIndex(page(c, "Mis tareas"), views.TaskList{Items: items}))
}

// Details GET /tasks/:id
func (h *TaskHandler) Details(c *fiber.Ctx) error {
	task, err := h.load(c)
	if task == nil {
		return err
	}
	return render(c, views.TaskDetails(page(c, task.Name), task))
}

// CreateForm GET /tasks/create
func (h *TaskHandler) CreateForm(c *fiber.Ctx) error {
	return render(c, views.TaskEdit(page(c, "Nueva tarea"), views.TaskForm{}))
}

// Create POST /tasks/create
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	form := taskForm(c)
	out, err := h.api.CreateTask(c.UserContext(), currentSession(c).Token, dto.TaskRequest{Name: form.Name, Description: form.Description})
	if err != nil {
		if isFormError(err) {
			return render(c, views.TaskEdit(withError(page(c, "Nueva tarea"), apiMessage(err)), form))
		}
		return fail(c, err, "/tasks")
	}
	currentSession(c).AddFlash(session.FlashSuccess, out.Message)
	return c.Redirect("/tasks/" + strconv.FormatInt(out.ID, 10))
}

// EditForm GET /tasks/:id/edit
func (h *TaskHandler) EditForm(c *fiber.Ctx) error {
	task, err := h.load(c)
	if task == nil {
		return err
	}
	return render(c, views.TaskEdit(page(c, "Editar tarea"), views.TaskForm{ID: task.ID, Name: task.Name, Description: task.Description}))
}

// Edit POST /tasks/:id/edit
func (h *TaskHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	form := taskForm(c)
	form.ID = id
	_, err = h.api.UpdateTask(c.UserContext(), currentSession(c).Token, id, dto.TaskRequest{Name: form.Name, Description: form.Description})
	if err != nil {
		if isFormError(err) {
			return render(c, views.TaskEdit(withError(page(c, "Editar tarea"), apiMessage(err)), form))
		}
		return fail(c, err, "/tasks")
	}
	currentSession(c).AddFlash(session.FlashSuccess, "Tarea actualizada exitosamente")
	return c.Redirect("/tasks/" + strconv.FormatInt(id, 10))
}

// DeleteConfirm GET /tasks/:id/delete
func (h *TaskHandler) DeleteConfirm(c *fiber.Ctx) error {
	task, err := h.load(c)
	if task == nil {
		return err
	}
	return render(c, views.TaskDelete(page(c, "Eliminar tarea"), task))
}

// Delete POST /tasks/:id/delete
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteTask(c.UserContext(), currentSession(c).Token, id); err != nil {
		return fail(c, err, "/tasks")
	}
	currentSession(c).AddFlash(session.FlashSuccess, "Tarea eliminada exitosamente")
	return c.Redirect("/tasks")
}

// load obtiene la tarea de la ruta. Con nil la respuesta ya quedó resuelta.
func (h *TaskHandler) load(c *fiber.Ctx) (*dto.TaskResponse, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}
	task, err := h.api.GetTask(c.UserContext(), currentSession(c).Token, id)
	if err != nil {
		return nil, loadFailed(c, err, "/tasks")
	}
	return task, nil
}

func taskForm(c *fiber.Ctx) views.TaskForm {
	return views.TaskForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
}
