package gateway

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
)

// SQLGateway stores entities in a relational table. Every value reaches
// the database as a bound parameter.
type SQLGateway[E Entity] struct {
	db      dbx.DBTX
	builder squirrel.StatementBuilderType
	table   Table[E]
}

func NewSQLGateway[E Entity](db dbx.DBTX, d dbx.Dialect, t Table[E]) *SQLGateway[E] {
	return &SQLGateway[E]{db: db, builder: d.Builder(), table: t}
}

func (g *SQLGateway[E]) Insert(ctx context.Context, e E) (E, error) {
	var zero E
	if e.ID() != nil {
		return zero, NonNewIdentityError(g.table.Name)
	}

	cols := g.table.names()
	values := g.table.Values(e)
	if g.table.Generated {
		cols, values = cols[1:], values[1:]
	}

	q := g.builder.Insert(g.table.Name).Columns(cols...).Values(values...)

	if g.table.Generated {
		query, args, err := q.Suffix("RETURNING " + g.table.Key()).ToSql()
		if err != nil {
			return zero, backend("build insert", err)
		}
		var id int64
		if err := g.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return zero, backend("insert "+g.table.Name, err)
		}
		return g.table.Assign(e, id)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return zero, backend("build insert", err)
	}
	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		return zero, backend("insert "+g.table.Name, err)
	}
	key, _ := values[0].(int64)
	return g.table.Assign(e, key)
}

func (g *SQLGateway[E]) Update(ctx context.Context, e E) error {
	key, ok := KeyOf(e)
	if !ok {
		return NewIdentityError(g.table.Name)
	}

	values := g.table.Values(e)
	q := g.builder.Update(g.table.Name)
	for i, c := range g.table.Columns[1:] {
		q = q.Set(c.Name, values[i+1])
	}
	query, args, err := q.Where(squirrel.Eq{g.table.Key(): key}).ToSql()
	if err != nil {
		return backend("build update", err)
	}
	return g.execOne(ctx, "update "+g.table.Name, query, args)
}

func (g *SQLGateway[E]) Delete(ctx context.Context, e E) error {
	key, ok := KeyOf(e)
	if !ok {
		return NewIdentityError(g.table.Name)
	}

	query, args, err := g.builder.Delete(g.table.Name).Where(squirrel.Eq{g.table.Key(): key}).ToSql()
	if err != nil {
		return backend("build delete", err)
	}
	return g.execOne(ctx, "delete "+g.table.Name, query, args)
}

func (g *SQLGateway[E]) execOne(ctx context.Context, op, query string, args []any) error {
	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return backend(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return backend(op, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (g *SQLGateway[E]) FindBy(ctx context.Context, field, value string) ([]E, error) {
	return g.FindWhere(ctx, Eq(field, value))
}

func (g *SQLGateway[E]) FindWhere(ctx context.Context, criteria ...Criterion) ([]E, error) {
	where, err := g.table.Resolve(criteria)
	if err != nil {
		return nil, err
	}

	q := g.builder.Select(g.table.names()...).From(g.table.Name).OrderBy(g.table.Key())
	if len(where) > 0 {
		q = q.Where(squirrel.Eq(where))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, backend("build select", err)
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, backend("select "+g.table.Name, err)
	}
	defer rows.Close()

	var out []E
	for rows.Next() {
		raw := make([]any, len(g.table.Columns))
		ptrs := make([]any, len(raw))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, backend("scan "+g.table.Name, err)
		}

		text := make([]string, len(raw))
		for i, v := range raw {
			if text[i], err = asText(v, g.table.Columns[i].Layout); err != nil {
				return nil, backend("scan "+g.table.Name, err)
			}
		}

		e, err := g.table.Build(text)
		if err != nil {
			return nil, fmt.Errorf("stored %s row is invalid: %w", g.table.Name, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, backend("select "+g.table.Name, err)
	}

	if len(out) == 0 {
		return nil, common.ErrorNotFound
	}
	return out, nil
}
