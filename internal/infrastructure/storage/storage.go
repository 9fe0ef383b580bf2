// Package storage elige el adaptador de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/domain/repository"
	"github.com/foxred/hillary/internal/infrastructure/memory"
	"github.com/foxred/hillary/internal/infrastructure/postgres"
	"github.com/foxred/hillary/pkg/config"
)

// Drivers soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Repositories puertos de persistencia listos para inyectar en los casos de uso.
type Repositories struct {
	Companies repository.CompanyRepository
	Roles     repository.RoleRepository
	Users     repository.UserRepository
	Tasks     repository.TaskRepository
	Tx        usecase.TxRunner

	close func()
}

// Close libera el pool de conexiones, si lo hay.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta con el driver configurado. Con memory los datos se pierden al salir.
func Open(ctx context.Context, cfg config.DBConfig) (*Repositories, error) {
	switch cfg.Driver {
	case DriverMemory:
		return Memory(memory.NewSeededStore()), nil
	case DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Companies: postgres.NewCompanyRepository(pool),
			Roles:     postgres.NewRoleRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tasks:     postgres.NewTaskRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}

// Memory envuelve un almacén en memoria ya creado.
func Memory(store *memory.Store) *Repositories {
	return &Repositories{
		Companies: store.Companies(),
		Roles:     store.Roles(),
		Users:     store.Users(),
		Tasks:     store.Tasks(),
		Tx:        store,
	}
}
