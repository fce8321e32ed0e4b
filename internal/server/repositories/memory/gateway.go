// Package memory provides an in-memory gateway.Gateway driven by the same
// table descriptors as the SQL implementation. It is used as a fake in
// service and transport tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/gateway"
)

type Gateway[E gateway.Entity] struct {
	mu    sync.Mutex
	table gateway.Table[E]
	rows  map[int64]E
	next  int64
}

func NewGateway[E gateway.Entity](t gateway.Table[E]) *Gateway[E] {
	return &Gateway[E]{table: t, rows: make(map[int64]E)}
}

func (g *Gateway[E]) Insert(ctx context.Context, e E) (E, error) {
	var zero E
	if e.ID() != nil {
		return zero, gateway.NonNewIdentityError(g.table.Name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.violatesUnique(e) {
		return zero, &gateway.BackendError{Op: "insert " + g.table.Name, Err: common.ErrDuplicate}
	}

	var key int64
	if g.table.Generated {
		g.next++
		key = g.next
	} else {
		key, _ = g.table.Values(e)[0].(int64)
		if _, taken := g.rows[key]; taken {
			return zero, &gateway.BackendError{Op: "insert " + g.table.Name, Err: common.ErrDuplicate}
		}
	}

	stored, err := g.table.Assign(e, key)
	if err != nil {
		return zero, err
	}
	g.rows[key] = stored
	return stored, nil
}

func (g *Gateway[E]) violatesUnique(e E) bool {
	for _, name := range g.table.Unique {
		want := map[string]any{name: g.table.Values(e)[g.index(name)]}
		for _, row := range g.rows {
			if g.table.Matches(row, want) {
				return true
			}
		}
	}
	return false
}

func (g *Gateway[E]) index(name string) int {
	for i, c := range g.table.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (g *Gateway[E]) Update(ctx context.Context, e E) error {
	key, ok := gateway.KeyOf(e)
	if !ok {
		return gateway.NewIdentityError(g.table.Name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, found := g.rows[key]; !found {
		return common.ErrorNotFound
	}
	g.rows[key] = e
	return nil
}

func (g *Gateway[E]) Delete(ctx context.Context, e E) error {
	key, ok := gateway.KeyOf(e)
	if !ok {
		return gateway.NewIdentityError(g.table.Name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, found := g.rows[key]; !found {
		return common.ErrorNotFound
	}
	delete(g.rows, key)
	return nil
}

func (g *Gateway[E]) FindBy(ctx context.Context, field, value string) ([]E, error) {
	return g.FindWhere(ctx, gateway.Eq(field, value))
}

func (g *Gateway[E]) FindWhere(ctx context.Context, criteria ...gateway.Criterion) ([]E, error) {
	where, err := g.table.Resolve(criteria)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	keys := make([]int64, 0, len(g.rows))
	for k, e := range g.rows {
		if g.table.Matches(e, where) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, common.ErrorNotFound
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]E, len(keys))
	for i, k := range keys {
		out[i] = g.rows[k]
	}
	return out, nil
}
