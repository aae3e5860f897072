package postgres

import (
	"fmt"
	"strings"
)

// where acumula condiciones SQL con numeración $n automática. Evita repetir
// en cada repositorio la contabilidad de placeholders al combinar filtros
// opcionales.
type where struct {
	conds []string
	args  []any
}

// eq añade col = $n si v no es el valor cero del filtro.
func (w *where) eq(col string, v any) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return
		}
	case int64:
		if val == 0 {
			return
		}
	case nil:
		return
	}
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", col, len(w.args)))
}

// boolEq añade col = $n; para punteros *bool solo si no son nil.
func (w *where) boolEq(col string, v *bool) {
	if v == nil {
		return
	}
	w.args = append(w.args, *v)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", col, len(w.args)))
}

// search añade un OR de ILIKE sobre las columnas dadas con el término envuelto
// en comodines. Todas las columnas comparten el mismo placeholder.
func (w *where) search(term string, cols ...string) {
	if term == "" || len(cols) == 0 {
		return
	}
	w.args = append(w.args, "%"+term+"%")
	n := len(w.args)
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, n))
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

// raw añade una condición literal con sus argumentos ya numerados por next().
func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

// next registra un argumento y devuelve su número de placeholder. Para
// condiciones construidas con raw.
func (w *where) next(v any) int {
	w.args = append(w.args, v)
	return len(w.args)
}

// clause devuelve " WHERE ..." o cadena vacía si no hay condiciones.
func (w *where) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page añade LIMIT/OFFSET numerados y devuelve el fragmento SQL.
func (w *where) page(limit, offset int) string {
	w.args = append(w.args, limit)
	sql := fmt.Sprintf(" LIMIT $%d", len(w.args))
	if offset > 0 {
		w.args = append(w.args, offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(w.args))
	}
	return sql
}
