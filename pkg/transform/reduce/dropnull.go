package reduce

import (
	"context"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

// DropAllNull drops every row whose cells are null across all target
// columns. An empty Columns list is a no-op. Target columns the frame
// does not have are ignored; if none remain, nothing is dropped.
type DropAllNull struct {
	Columns []string
}

func (t *DropAllNull) Name() string { return "drop_all_null" }

func (t *DropAllNull) Apply(ctx context.Context, f *e.Frame) (*e.Frame, error) {
	var cols []*e.Column
	for _, name := range t.Columns {
		if col, ok := f.ColumnByName(name); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return f, nil
	}
	return f.FilterRows(func(row int) bool {
		for _, col := range cols {
			if !col.IsNull(row) {
				return true
			}
		}
		return false
	}), nil
}
