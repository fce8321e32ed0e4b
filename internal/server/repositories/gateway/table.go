package gateway

import (
	"fmt"
	"strconv"
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

// Column describes one stored field.
type Column struct {
	Name string
	// Rule validates lookup values for this column.
	Rule validate.Rule
	// Layout renders time values read back from the store.
	Layout string
}

// Table maps an entity kind onto rows. Columns[0] is the key column.
type Table[E Entity] struct {
	Name    string
	Columns []Column
	// Generated means the store assigns the key on insert.
	Generated bool
	// Unique lists non-key columns the schema declares unique.
	Unique []string
	// Values returns bindable values for Columns, in order. A generated
	// key is nil until the entity is stored.
	Values func(e E) []any
	// Build reconstructs an entity from a row rendered as text, validating
	// it exactly like external input.
	Build func(row []string) (E, error)
	// Assign returns a copy of e stored under key.
	Assign func(e E, key int64) (E, error)
}

// Key is the name of the key column.
func (t Table[E]) Key() string {
	return t.Columns[0].Name
}

func (t Table[E]) names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

func (t Table[E]) column(name string) (int, Column, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, c, true
		}
	}
	return -1, Column{}, false
}

// Resolve validates criteria against the column whitelist and rules and
// returns the bound values keyed by column.
func (t Table[E]) Resolve(criteria []Criterion) (map[string]any, error) {
	out := make(map[string]any, len(criteria))
	for _, c := range criteria {
		_, col, ok := t.column(c.Field)
		if !ok {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, c.Field, ErrUnknownField)
		}
		v, err := col.Rule(col.Name, c.Value)
		if err != nil {
			return nil, err
		}
		out[col.Name] = v
	}
	return out, nil
}

// Matches reports whether e satisfies every resolved criterion.
func (t Table[E]) Matches(e E, where map[string]any) bool {
	values := t.Values(e)
	for name, want := range where {
		i, _, _ := t.column(name)
		if values[i] != want {
			return false
		}
	}
	return true
}

// KeyOf returns the key value of a stored entity.
func KeyOf[E Entity](e E) (int64, bool) {
	id := e.ID()
	if id == nil {
		return 0, false
	}
	return *id, true
}

// asText renders a scanned column value the way Build expects it.
func asText(v any, layout string) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int:
		return strconv.Itoa(x), nil
	case time.Time:
		if layout == "" {
			layout = validate.DateTimeLayout
		}
		return x.UTC().Format(layout), nil
	}
	return "", fmt.Errorf("unsupported column type %T", v)
}
