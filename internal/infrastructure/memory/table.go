// Package memory implementa los puertos de persistencia en memoria.
// Útil para tests y desarrollo local (STORAGE_DRIVER=memory).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/usuarios-api/internal/domain"
)

// UniqueKey emula un índice único: dos filas con la misma clave no vacía no pueden coexistir.
type UniqueKey[T any] struct {
	Key func(e *T) string
	Err error
}

// Mapping describe cómo guardar T en una Table.
type Mapping[T any] struct {
	Name   string
	ID     func(e *T) *int64
	Unique []UniqueKey[T]
	// Merge copia los campos mutables de src sobre la fila guardada.
	Merge func(stored *T, src *T)
	// Check se evalúa con el lock tomado antes de insertar (p. ej. clave foránea).
	Check func(e *T) error
}

// locker lo cumple *sync.RWMutex; dentro de una transacción se usa txLock.
type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

var _ locker = (*sync.RWMutex)(nil)

// txLock no bloquea: la transacción ya tiene el lock exclusivo del Store.
type txLock struct{}

func (txLock) Lock()    {}
func (txLock) Unlock()  {}
func (txLock) RLock()   {}
func (txLock) RUnlock() {}

type tableData[T any] struct {
	rows map[int64]T
	seq  int64
}

// Table implementa repository.Repository[T] sobre un mapa protegido por el lock del Store.
type Table[T any] struct {
	mu locker
	m  Mapping[T]
	*tableData[T]
}

func newTable[T any](mu locker, m Mapping[T]) *Table[T] {
	return &Table[T]{mu: mu, m: m, tableData: &tableData[T]{rows: make(map[int64]T)}}
}

// withLock devuelve una vista de la misma tabla con otro lock.
func (t *Table[T]) withLock(mu locker) *Table[T] {
	return &Table[T]{mu: mu, m: t.m, tableData: t.tableData}
}

// Add asigna el siguiente ID y guarda una copia de e.
func (t *Table[T]) Add(ctx context.Context, e *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m.Check != nil {
		if err := t.m.Check(e); err != nil {
			return err
		}
	}
	if err := t.checkUnique(e, 0); err != nil {
		return err
	}
	t.seq++
	*t.m.ID(e) = t.seq
	t.rows[t.seq] = *e
	return nil
}

// GetByID devuelve una copia de la fila; (nil, nil) si no existe.
func (t *Table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.get(id), nil
}

// Update aplica Merge sobre la fila guardada.
func (t *Table[T]) Update(ctx context.Context, e *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.m.ID(e)
	stored, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("update %s %d: %w", t.m.Name, id, domain.ErrNotFound)
	}
	t.m.Merge(&stored, e)
	if err := t.checkUnique(&stored, id); err != nil {
		return err
	}
	t.rows[id] = stored
	return nil
}

// Delete elimina por ID; false si no existía.
func (t *Table[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remove(id), nil
}

// Exists indica si hay una fila con ese ID.
func (t *Table[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok, nil
}

// Los métodos sin lock asumen que el llamador ya tomó t.mu.

func (t *Table[T]) get(id int64) *T {
	e, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &e
}

func (t *Table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter devuelve copias de las filas que cumplen match, ordenadas por ID.
func (t *Table[T]) filter(match func(e *T) bool) []*T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		e := t.rows[id]
		if match == nil || match(&e) {
			out = append(out, &e)
		}
	}
	return out
}

func (t *Table[T]) first(match func(e *T) bool) *T {
	if rows := t.filter(match); len(rows) > 0 {
		return rows[0]
	}
	return nil
}

func (t *Table[T]) checkUnique(e *T, selfID int64) error {
	for _, u := range t.m.Unique {
		key := u.Key(e)
		if key == "" {
			continue
		}
		for id, row := range t.rows {
			if id != selfID && u.Key(&row) == key {
				return u.Err
			}
		}
	}
	return nil
}

func (t *Table[T]) snapshot() (map[int64]T, int64) {
	cp := make(map[int64]T, len(t.rows))
	for k, v := range t.rows {
		cp[k] = v
	}
	return cp, t.seq
}

func (t *Table[T]) restore(rows map[int64]T, seq int64) {
	t.rows = rows
	t.seq = seq
}
