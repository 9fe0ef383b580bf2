package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%obra%`, containsPattern("obra"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, containsPattern(`c:\tmp`))
}

func TestWhere_PlaceholdersNumerados(t *testing.T) {
	var w where
	w.add("c.company_id = $%d", int64(3))
	w.contains("c.name", "")
	w.contains("c.name", "ana")
	active := true
	w.add("c.active = $%d", active)

	assert.Equal(t, ` WHERE c.company_id = $1 AND c.name ILIKE $2 ESCAPE '\' AND c.active = $3`, w.String())

	tail, args := w.limitOffset(10, 20)
	assert.Equal(t, " LIMIT $4 OFFSET $5", tail)
	assert.Equal(t, []any{int64(3), "%ana%", true, 10, 20}, args)
	assert.Len(t, w.args, 3, "limitOffset no modifica los args del conteo")
}

func TestWhere_Vacio(t *testing.T) {
	var w where
	assert.Empty(t, w.String())
	tail, args := w.limitOffset(5, 0)
	assert.Equal(t, " LIMIT $1 OFFSET $2", tail)
	assert.Equal(t, []any{5, 0}, args)
}

func TestViolaciones(t *testing.T) {
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})
	uq := &pgconn.PgError{Code: "23505"}

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isUniqueViolation(uq))
	assert.False(t, isForeignKeyViolation(errors.New("otro")))
}
