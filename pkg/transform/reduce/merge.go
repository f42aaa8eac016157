package reduce

import (
	"context"
	"strings"

	e "github.com/wdm0006/eprime/pkg/eprime"
)

// Merge concatenates the source columns row-wise into the destination
// column, treating null as the empty string. The destination is created
// at the end of the frame if absent, overwritten in place if present, and
// its cells are never null. A missing source column is fatal.
type Merge struct {
	Dest    string
	Sources []string
}

func (t *Merge) Name() string { return "merge" }

func (t *Merge) Apply(ctx context.Context, f *e.Frame) (*e.Frame, error) {
	srcs := make([]*e.Column, len(t.Sources))
	for i, name := range t.Sources {
		col, ok := f.ColumnByName(name)
		if !ok {
			return nil, &e.MissingColumnError{Column: name}
		}
		srcs[i] = col
	}
	n := f.Rows()
	merged := make([]string, n)
	for r := 0; r < n; r++ {
		var b strings.Builder
		for _, col := range srcs {
			if v, ok := col.Get(r); ok {
				b.WriteString(v)
			}
		}
		merged[r] = b.String()
	}
	dst := f.AddColumn(t.Dest)
	for r := 0; r < n; r++ {
		dst.Set(r, merged[r])
	}
	return f, nil
}
