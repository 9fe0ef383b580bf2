package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeed_CreaEmpresaYGerente(t *testing.T) {
	out, err := run(t, "seed", "--company", "FoxRed", "--manager", "Ana Pérez", "--password", "123456")
	require.NoError(t, err)
	assert.Contains(t, out, "ana.perez@foxred.com")
}

func TestMigrate_RequierePostgres(t *testing.T) {
	_, err := run(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER=postgres")
}

func TestImportCompanies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empresas.csv")
	require.NoError(t, os.WriteFile(path, []byte("nombre,nit\nFoxRed,900\nAcme,800\n"), 0o600))

	out, err := run(t, "import", "companies", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Empresas creadas: 2, con error: 0")

	require.NoError(t, os.WriteFile(path, []byte("FoxRed\n,sin nombre\n"), 0o600))
	out, err = run(t, "import", "companies", path)
	require.Error(t, err)
	assert.Contains(t, out, "Empresas creadas: 1, con error: 1")
}
