package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/usuarios-api/internal/domain"
)

// Column mapea una columna a un campo de T. Field devuelve un puntero al campo:
// sirve como destino de Scan y como argumento de INSERT/UPDATE.
type Column[T any] struct {
	Name      string
	Field     func(e *T) any
	Immutable bool // solo se escribe en INSERT
}

// Mapping describe una tabla con clave primaria "id" BIGINT generada por la base.
type Mapping[T any] struct {
	Table   string
	ID      func(e *T) *int64
	Columns []Column[T]
	// Constraints traduce el nombre de un constraint violado al error de dominio correspondiente.
	Constraints map[string]error
}

// Table implementa repository.Repository[T] sobre una tabla PostgreSQL.
type Table[T any] struct {
	q Querier
	m Mapping[T]
}

// NewTable construye el repositorio genérico. Pasar pool o tx (Querier).
func NewTable[T any](q Querier, m Mapping[T]) *Table[T] {
	return &Table[T]{q: q, m: m}
}

// Add inserta la fila y asigna el ID generado.
func (t *Table[T]) Add(ctx context.Context, e *T) error {
	names := make([]string, 0, len(t.m.Columns))
	holders := make([]string, 0, len(t.m.Columns))
	args := make([]any, 0, len(t.m.Columns))
	for i, c := range t.m.Columns {
		names = append(names, c.Name)
		holders = append(holders, fmt.Sprintf("$%d", i+1))
		args = append(args, c.Field(e))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.m.Table, strings.Join(names, ", "), strings.Join(holders, ", "))
	if err := t.q.QueryRow(ctx, query, args...).Scan(t.m.ID(e)); err != nil {
		return t.wrap("insert", err)
	}
	return nil
}

// GetByID obtiene una fila por ID; (nil, nil) si no existe.
func (t *Table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return t.findOne(ctx, "id = $1", id)
}

// Update reescribe las columnas mutables de la fila.
func (t *Table[T]) Update(ctx context.Context, e *T) error {
	query, args := t.updateStatement(e)
	tag, err := t.q.Exec(ctx, query, args...)
	if err != nil {
		return t.wrap("update", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s %d: %w", t.m.Table, *t.m.ID(e), domain.ErrNotFound)
	}
	return nil
}

// Delete elimina por ID; false si no existía.
func (t *Table[T]) Delete(ctx context.Context, id int64) (bool, error) {
	return t.deleteWhere(ctx, "id = $1", id)
}

// Exists indica si hay una fila con ese ID.
func (t *Table[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", t.m.Table)
	if err := t.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, t.wrap("exists", err)
	}
	return ok, nil
}

func (t *Table[T]) selectColumns(alias string) string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	cols := make([]string, 0, len(t.m.Columns)+1)
	cols = append(cols, prefix+"id")
	for _, c := range t.m.Columns {
		cols = append(cols, prefix+c.Name)
	}
	return strings.Join(cols, ", ")
}

func (t *Table[T]) updateStatement(e *T) (string, []any) {
	sets := make([]string, 0, len(t.m.Columns))
	args := []any{*t.m.ID(e)}
	for _, c := range t.m.Columns {
		if c.Immutable {
			continue
		}
		args = append(args, c.Field(e))
		sets = append(sets, fmt.Sprintf("%s = $%d", c.Name, len(args)))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", t.m.Table, strings.Join(sets, ", ")), args
}

// dest devuelve los destinos de Scan en el orden de selectColumns.
func (t *Table[T]) dest(e *T) []any {
	out := make([]any, 0, len(t.m.Columns)+1)
	out = append(out, t.m.ID(e))
	for _, c := range t.m.Columns {
		out = append(out, c.Field(e))
	}
	return out
}

func (t *Table[T]) findOne(ctx context.Context, where string, args ...any) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", t.selectColumns(""), t.m.Table, where)
	var e T
	if err := t.q.QueryRow(ctx, query, args...).Scan(t.dest(&e)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, t.wrap("get", err)
	}
	return &e, nil
}

func (t *Table[T]) deleteWhere(ctx context.Context, where string, args ...any) (bool, error) {
	tag, err := t.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", t.m.Table, where), args...)
	if err != nil {
		return false, t.wrap("delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (t *Table[T]) wrap(op string, err error) error {
	if mapped := constraintError(err, t.m.Constraints); mapped != nil {
		return mapped
	}
	return fmt.Errorf("%s %s: %w", op, t.m.Table, err)
}
