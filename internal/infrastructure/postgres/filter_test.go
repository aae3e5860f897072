package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere_SinCondiciones(t *testing.T) {
	var w where
	assert.Empty(t, w.clause())
	assert.Empty(t, w.args)
}

func TestWhere_EqIgnoraValoresVacios(t *testing.T) {
	var w where
	w.eq("department_id", "")
	w.eq("qty", int64(0))
	assert.Empty(t, w.clause())

	w.eq("department_id", "d1")
	assert.Equal(t, " WHERE department_id = $1", w.clause())
	assert.Equal(t, []any{"d1"}, w.args)
}

func TestWhere_NumeracionSecuencial(t *testing.T) {
	var w where
	w.eq("role", "SALESMAN")
	w.eq("department_id", "d1")
	active := true
	w.boolEq("is_active", &active)

	assert.Equal(t, " WHERE role = $1 AND department_id = $2 AND is_active = $3", w.clause())
	assert.Equal(t, []any{"SALESMAN", "d1", true}, w.args)
}

func TestWhere_BoolEqNilNoAgrega(t *testing.T) {
	var w where
	w.boolEq("is_active", nil)
	assert.Empty(t, w.clause())
}

func TestWhere_SearchComparteElPlaceholder(t *testing.T) {
	var w where
	w.eq("salesman_id", "s1")
	w.search("cemento", "p.name", "p.type")

	assert.Equal(t, " WHERE salesman_id = $1 AND (p.name ILIKE $2 OR p.type ILIKE $2)", w.clause())
	assert.Equal(t, []any{"s1", "%cemento%"}, w.args)
}

func TestWhere_RawConNext(t *testing.T) {
	var w where
	n := w.next(int64(5))
	w.raw("qty >= $" + string(rune('0'+n)))

	assert.Equal(t, " WHERE qty >= $1", w.clause())
	assert.Equal(t, []any{int64(5)}, w.args)
}

func TestWhere_Paginacion(t *testing.T) {
	var w where
	w.eq("status", "PENDING")
	sql := w.page(50, 100)

	assert.Equal(t, " LIMIT $2 OFFSET $3", sql)
	assert.Equal(t, []any{"PENDING", 50, 100}, w.args)
}

func TestWhere_PaginacionSinOffset(t *testing.T) {
	var w where
	sql := w.page(25, 0)

	assert.Equal(t, " LIMIT $1", sql)
	assert.Equal(t, []any{25}, w.args)
}
