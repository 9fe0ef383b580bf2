// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory para demos locales y como doble en los tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

var (
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.RoleRepository    = (*RoleRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.TaskRepository    = (*TaskRepo)(nil)
)

// Store guarda las cuatro tablas y aplica las mismas restricciones de clave foránea que PostgreSQL.
type Store struct {
	mu        sync.RWMutex
	seq       map[string]int64
	companies map[int64]entity.Company
	roles     map[int64]entity.Role
	users     map[int64]entity.User
	tasks     map[int64]entity.Task
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		seq:       map[string]int64{},
		companies: map[int64]entity.Company{},
		roles:     map[int64]entity.Role{},
		users:     map[int64]entity.User{},
		tasks:     map[int64]entity.Task{},
	}
}

// NewSeededStore crea un almacén con los roles fijos Gerente y Usuario.
func NewSeededStore() *Store {
	s := NewStore()
	s.roles[entity.RoleManager] = entity.Role{ID: entity.RoleManager, Name: "Gerente", Description: "Administra la empresa y sus usuarios"}
	s.roles[entity.RoleMember] = entity.Role{ID: entity.RoleMember, Name: "Usuario", Description: "Gestiona tareas de su empresa"}
	s.seq["roles"] = entity.RoleMember
	return s
}

// Companies, Roles, Users y Tasks devuelven los adaptadores de cada puerto.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }
func (s *Store) Roles() *RoleRepo       { return &RoleRepo{s: s} }
func (s *Store) Users() *UserRepo       { return &UserRepo{s: s} }
func (s *Store) Tasks() *TaskRepo       { return &TaskRepo{s: s} }

func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// page ordena por id descendente y recorta la ventana pedida.
func page[T any](items []T, id func(T) int64, p repository.Page) ([]T, int) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
	total := len(items)
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset >= total {
		return []T{}, total
	}
	end := total
	if p.Limit > 0 && p.Offset+p.Limit < total {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end], total
}

// ── Companies ────────────────────────────────────────────────────────────────

// CompanyRepo puerto CompanyRepository en memoria.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.next("companies")
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	r.s.withCounts(&c)
	return &c, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; ok {
		r.s.companies[c.ID] = *c
	}
	return nil
}

func (r *CompanyRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		c.Active = active
		c.UpdatedAt = time.Now().UTC()
		r.s.companies[id] = c
	}
	return nil
}

func (r *CompanyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.CompanyID == id {
			return domain.Errorf(domain.ErrInUse, "La empresa tiene usuarios o tareas asociadas")
		}
	}
	for _, t := range r.s.tasks {
		if t.CompanyID == id {
			return domain.Errorf(domain.ErrInUse, "La empresa tiene usuarios o tareas asociadas")
		}
	}
	delete(r.s.companies, id)
	return nil
}

func (r *CompanyRepo) Search(_ context.Context, f repository.CompanyFilter, p repository.Page) ([]*entity.Company, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var items []*entity.Company
	for _, c := range r.s.companies {
		if !contains(c.Name, f.Name) || !contains(c.TaxID, f.TaxID) || !contains(c.Email, f.Email) {
			continue
		}
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		c := c
		r.s.withCounts(&c)
		items = append(items, &c)
	}
	out, total := page(items, func(c *entity.Company) int64 { return c.ID }, p)
	return out, total, nil
}

func (s *Store) withCounts(c *entity.Company) {
	c.TaskCount, c.UserCount = 0, 0
	for _, t := range s.tasks {
		if t.CompanyID == c.ID {
			c.TaskCount++
		}
	}
	for _, u := range s.users {
		if u.CompanyID == c.ID {
			c.UserCount++
		}
	}
}

// ── Roles ────────────────────────────────────────────────────────────────────

// RoleRepo puerto RoleRepository en memoria.
type RoleRepo struct{ s *Store }

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkRoleName(role); err != nil {
		return err
	}
	role.ID = r.s.next("roles")
	r.s.roles[role.ID] = *role
	return nil
}

func (r *RoleRepo) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.roles[id]
	if !ok {
		return nil, nil
	}
	role.UserCount = r.s.usersWithRole(id)
	return &role, nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[role.ID]; !ok {
		return nil
	}
	if err := r.s.checkRoleName(role); err != nil {
		return err
	}
	r.s.roles[role.ID] = *role
	return nil
}

// checkRoleName replica la restricción UNIQUE de roles.name.
func (s *Store) checkRoleName(role *entity.Role) error {
	for id, other := range s.roles {
		if id != role.ID && other.Name == role.Name {
			return domain.Errorf(domain.ErrConflict, "Ya existe un rol llamado %s", role.Name)
		}
	}
	return nil
}

func (r *RoleRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersWithRole(id) > 0 {
		return domain.Errorf(domain.ErrInUse, "El rol está asignado a usuarios")
	}
	delete(r.s.roles, id)
	return nil
}

func (r *RoleRepo) Search(_ context.Context, f repository.RoleFilter, p repository.Page) ([]*entity.Role, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var items []*entity.Role
	for _, role := range r.s.roles {
		if !contains(role.Name, f.Name) {
			continue
		}
		role := role
		role.UserCount = r.s.usersWithRole(role.ID)
		items = append(items, &role)
	}
	out, total := page(items, func(r *entity.Role) int64 { return r.ID }, p)
	return out, total, nil
}

func (s *Store) usersWithRole(id int64) int {
	n := 0
	for _, u := range s.users {
		if u.RoleID == id {
			n++
		}
	}
	return n
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo puerto UserRepository en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUserRefs(u); err != nil {
		return err
	}
	u.ID = r.s.next("users")
	stored := *u
	stored.CompanyName, stored.RoleName = "", ""
	r.s.users[u.ID] = stored
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return r.s.joinUser(u), nil
}

func (r *UserRepo) GetActiveByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Active && u.Email == email {
			return r.s.joinUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return nil
	}
	if err := r.s.checkUserRefs(u); err != nil {
		return err
	}
	stored := *u
	stored.CompanyName, stored.RoleName = "", ""
	r.s.users[u.ID] = stored
	return nil
}

func (r *UserRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.Active = active
		r.s.users[id] = u
	}
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) Search(_ context.Context, f repository.UserFilter, p repository.Page) ([]*entity.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var items []*entity.User
	for _, u := range r.s.users {
		if f.CompanyID != 0 && u.CompanyID != f.CompanyID {
			continue
		}
		if !contains(u.Name, f.Name) || !contains(u.Email, f.Email) {
			continue
		}
		if f.RoleID != 0 && u.RoleID != f.RoleID {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		items = append(items, r.s.joinUser(u))
	}
	out, total := page(items, func(u *entity.User) int64 { return u.ID }, p)
	return out, total, nil
}

func (s *Store) checkUserRefs(u *entity.User) error {
	if _, ok := s.companies[u.CompanyID]; !ok {
		return domain.Errorf(domain.ErrInvalidInput, "La empresa %d no existe", u.CompanyID)
	}
	if _, ok := s.roles[u.RoleID]; !ok {
		return domain.Errorf(domain.ErrInvalidInput, "El rol %d no existe", u.RoleID)
	}
	return nil
}

func (s *Store) joinUser(u entity.User) *entity.User {
	u.CompanyName = s.companies[u.CompanyID].Name
	u.RoleName = s.roles[u.RoleID].Name
	return &u
}

// ── Tasks ────────────────────────────────────────────────────────────────────

// TaskRepo puerto TaskRepository en memoria.
type TaskRepo struct{ s *Store }

func (r *TaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[t.CompanyID]; !ok {
		return domain.Errorf(domain.ErrInvalidInput, "La empresa %d no existe", t.CompanyID)
	}
	t.ID = r.s.next("tasks")
	stored := *t
	stored.CompanyName = ""
	r.s.tasks[t.ID] = stored
	return nil
}

func (r *TaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	t.CompanyName = r.s.companies[t.CompanyID].Name
	return &t, nil
}

func (r *TaskRepo) Update(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[t.ID]; ok {
		stored := *t
		stored.CompanyName = ""
		r.s.tasks[t.ID] = stored
	}
	return nil
}

func (r *TaskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskRepo) Search(_ context.Context, f repository.TaskFilter, p repository.Page) ([]*entity.Task, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out, total := page(r.s.tasksOf(f.CompanyID, f.Name), func(t *entity.Task) int64 { return t.ID }, p)
	return out, total, nil
}

func (r *TaskRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out, _ := page(r.s.tasksOf(companyID, ""), func(t *entity.Task) int64 { return t.ID }, repository.Page{})
	return out, nil
}

func (s *Store) tasksOf(companyID int64, name string) []*entity.Task {
	var items []*entity.Task
	for _, t := range s.tasks {
		if companyID != 0 && t.CompanyID != companyID {
			continue
		}
		if !contains(t.Name, name) {
			continue
		}
		t := t
		t.CompanyName = s.companies[t.CompanyID].Name
		items = append(items, &t)
	}
	return items
}

// ── Transacciones ────────────────────────────────────────────────────────────

// Run ejecuta fn con los repos del almacén y, si fn falla, restaura el estado previo.
// No aísla de escrituras concurrentes de otras goroutines.
func (s *Store) Run(_ context.Context, fn func(
	companies repository.CompanyRepository,
	users repository.UserRepository,
) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(s.Companies(), s.Users()); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	seq       map[string]int64
	companies map[int64]entity.Company
	roles     map[int64]entity.Role
	users     map[int64]entity.User
	tasks     map[int64]entity.Task
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		seq:       maps.Clone(s.seq),
		companies: maps.Clone(s.companies),
		roles:     maps.Clone(s.roles),
		users:     maps.Clone(s.users),
		tasks:     maps.Clone(s.tasks),
	}
}

func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.companies = snap.companies
	s.roles = snap.roles
	s.users = snap.users
	s.tasks = snap.tasks
}
