package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/infrastructure/storage"
	"github.com/foxred/hillary/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	repos, err := storage.Open(context.Background(), config.DBConfig{Driver: storage.DriverMemory})
	require.NoError(t, err)
	defer repos.Close()

	role, err := repos.Roles.GetByID(context.Background(), entity.RoleManager)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "Gerente", role.Name)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
