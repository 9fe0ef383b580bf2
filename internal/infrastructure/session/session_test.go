package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/internal/domain/entity"
)

func TestMemoryStore_GuardaYRecupera(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := &Session{Token: "tok", UserID: 7, RoleID: entity.RoleManager}
	s.AddFlash(FlashSuccess, "Bienvenido")
	require.NoError(t, store.Save(ctx, "abc", s, time.Minute))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.IsManager())
	assert.Equal(t, []Flash{{Kind: FlashSuccess, Message: "Bienvenido"}}, got.TakeFlashes())
	assert.Empty(t, got.Flashes)

	require.NoError(t, store.Delete(ctx, "abc"))
	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expira(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "abc", &Session{Token: "tok"}, time.Minute))
	now = now.Add(2 * time.Minute)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSession_LoggedInYLogout(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.LoggedIn())

	s := &Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
	assert.False(t, s.LoggedIn(), "token vencido")

	s.ExpiresAt = time.Now().Add(time.Hour)
	assert.True(t, s.LoggedIn())

	s.AddFlash(FlashInfo, "Sesión cerrada")
	s.Logout()
	assert.False(t, s.LoggedIn())
	assert.Len(t, s.Flashes, 1)
}

func TestOpen_SinURLUsaMemoria(t *testing.T) {
	store, err := Open("", 0)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL no definido")
	}
	ctx := context.Background()
	store, err := NewRedisStore(url, 0)
	require.NoError(t, err)
	defer store.Close()

	id := "test-" + time.Now().Format("150405.000000")
	require.NoError(t, store.Save(ctx, id, &Session{Token: "tok", Name: "Ana"}, time.Minute))
	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)

	require.NoError(t, store.Delete(ctx, id))
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_PurgaVencidasAlGuardar(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, id, &Session{Token: "tok"}, time.Minute))
	}
	require.Len(t, store.items, 3)

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, "d", &Session{Token: "tok"}, time.Hour))
	assert.Len(t, store.items, 1, "las vencidas se eliminan sin que nadie las lea")
	assert.Contains(t, store.items, "d")
}

func TestSession_Empty(t *testing.T) {
	var nilSession *Session
	assert.True(t, nilSession.Empty())
	assert.True(t, (&Session{}).Empty())

	s := &Session{}
	s.AddFlash(FlashWarning, "Debe iniciar sesión para continuar.")
	assert.False(t, s.Empty())
	assert.False(t, (&Session{Token: "tok"}).Empty())
}

func TestRedisOptions_BaseDeDatos(t *testing.T) {
	opts, err := redisOptions("redis://localhost:6379/4", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, opts.DB, "0 respeta la base de la URL")

	opts, err = redisOptions("redis://localhost:6379/4", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.DB)

	_, err = redisOptions("", 0)
	assert.Error(t, err)
}
