package backfill

import (
	"context"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

// Singleton broadcasts a column's single boundary value to every row.
// Session-level metadata (subject id, session date, group) is logged once
// per file, usually in the first or last frame, but applies to every
// trial row.
type Singleton struct {
	Columns []string // empty = all columns
}

func (s *Singleton) Name() string { return "backfill_singleton" }

func (s *Singleton) Apply(ctx context.Context, f *e.Frame) (*e.Frame, error) {
	names := s.Columns
	if len(names) == 0 {
		names = f.Columns()
	}
	n := f.Rows()
	for _, name := range names {
		col, ok := f.ColumnByName(name)
		if !ok {
			continue
		}
		idx := -1
		count := 0
		for i := 0; i < n; i++ {
			if !col.IsNull(i) {
				idx = i
				count++
			}
		}
		// Broadcast only when the single value sits at the first row, the
		// last row, or the row before the last.
		if count != 1 || (idx != 0 && idx != n-1 && idx != n-2) {
			continue
		}
		v, _ := col.Get(idx)
		for i := 0; i < n; i++ {
			col.Set(i, v)
		}
	}
	return f, nil
}
